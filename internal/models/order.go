package models

import "time"

// PriceSummary holds unrounded amounts; rounding happens only when a value is
// rendered.
type PriceSummary struct {
	ItemCount            int     `json:"itemCount"`
	Subtotal             float64 `json:"subtotal"`
	DeliveryFee          float64 `json:"deliveryFee"`
	Tax                  float64 `json:"tax"`
	Total                float64 `json:"total"`
	FreeDeliveryEligible bool    `json:"freeDeliveryEligible"`
}

// Receipt is the read-only record shown once an order is placed. Lines and
// Summary are captured when the checkout form is submitted.
type Receipt struct {
	OrderID     string          `json:"orderId"`
	Lines       []CartLine      `json:"lines"`
	Summary     PriceSummary    `json:"summary"`
	Delivery    DeliveryDetails `json:"delivery"`
	SubmittedAt time.Time       `json:"submittedAt"`
	PlacedAt    time.Time       `json:"placedAt"`
}
