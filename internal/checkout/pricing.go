package checkout

import (
	"math"

	"github.com/chrisdamba/foodstore/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Pricing turns a cart into the amounts shown at checkout.
type Pricing struct {
	TaxRate               float64
	DeliveryFee           float64
	FreeDeliveryThreshold float64
}

func PricingFromConfig(cfg models.PricingConfig) Pricing {
	return Pricing{
		TaxRate:               cfg.TaxRate,
		DeliveryFee:           cfg.DeliveryFee,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
	}
}

// DefaultPricing is 8% tax and a flat 3.99 delivery fee.
func DefaultPricing() Pricing {
	return Pricing{TaxRate: 0.08, DeliveryFee: 3.99, FreeDeliveryThreshold: 50}
}

// Summarize computes unrounded totals. The delivery fee is always charged;
// FreeDeliveryEligible only drives the storefront notice.
func (p Pricing) Summarize(lines []models.CartLine) models.PriceSummary {
	var s models.PriceSummary
	for _, line := range lines {
		s.ItemCount += line.Quantity
		s.Subtotal += line.LineTotal()
	}
	s.DeliveryFee = p.DeliveryFee
	s.Tax = s.Subtotal * p.TaxRate
	s.Total = s.Subtotal + s.DeliveryFee + s.Tax
	s.FreeDeliveryEligible = s.Subtotal > p.FreeDeliveryThreshold
	return s
}

// Round2 rounds to cents for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders v as dollars with two decimals and digit grouping.
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", Round2(v))
}
