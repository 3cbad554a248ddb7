package models

type Restaurant struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"` // free text, e.g. "30-40 min"
	Image        string  `json:"image"`
}
