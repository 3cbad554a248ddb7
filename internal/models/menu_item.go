package models

// MenuItem is one orderable dish. RestaurantID is the join key; Restaurant is
// the display name resolved from it when the catalog is built.
type MenuItem struct {
	ID           int     `json:"id"`
	RestaurantID int     `json:"restaurantId"`
	Restaurant   string  `json:"restaurant"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	Rating       float64 `json:"rating"`
}
