package models

// DeliveryDetails is what the checkout form collects.
type DeliveryDetails struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zipCode"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"` // "card" or "cash"
}
