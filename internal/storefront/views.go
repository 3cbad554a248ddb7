package storefront

import (
	"github.com/chrisdamba/foodstore/internal/checkout"
	"github.com/chrisdamba/foodstore/internal/models"
)

type Header struct {
	LoggedIn  bool         `json:"loggedIn"`
	User      *models.User `json:"user"`
	CartCount int          `json:"cartCount"`
}

type Home struct {
	Header      Header              `json:"header"`
	Restaurants []models.Restaurant `json:"restaurants"`
	Featured    []models.MenuItem   `json:"featured"`
}

type RestaurantPage struct {
	Header     Header            `json:"header"`
	Restaurant models.Restaurant `json:"restaurant"`
	Items      []models.MenuItem `json:"items"`
}

type Menu struct {
	Header     Header            `json:"header"`
	Query      string            `json:"query"`
	Category   string            `json:"category"`
	Categories []string          `json:"categories"`
	Items      []models.MenuItem `json:"items"`
	Empty      bool              `json:"empty"`
}

// Amounts are the display strings of a PriceSummary.
type Amounts struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

func amountsOf(s models.PriceSummary) Amounts {
	return Amounts{
		Subtotal:    checkout.FormatMoney(s.Subtotal),
		DeliveryFee: checkout.FormatMoney(s.DeliveryFee),
		Tax:         checkout.FormatMoney(s.Tax),
		Total:       checkout.FormatMoney(s.Total),
	}
}

type CartLine struct {
	models.CartLine
	Amount        float64 `json:"lineTotal"`
	AmountDisplay string  `json:"lineTotalDisplay"`
}

func cartLines(lines []models.CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	for i, line := range lines {
		out[i] = CartLine{
			CartLine:      line,
			Amount:        line.LineTotal(),
			AmountDisplay: checkout.FormatMoney(line.LineTotal()),
		}
	}
	return out
}

type Cart struct {
	Header       Header              `json:"header"`
	Lines        []CartLine          `json:"lines"`
	Empty        bool                `json:"empty"`
	Summary      models.PriceSummary `json:"summary"`
	Amounts      Amounts             `json:"amounts"`
	CheckoutPath string              `json:"checkoutPath"`
	CheckoutText string              `json:"checkoutText"`
	CanClear     bool                `json:"canClear"`
	Notice       string              `json:"notice,omitempty"`
	MaxQuantity  int                 `json:"maxQuantity"`
}

// QuantityOutcome reports what a quantity change did. At most one of the
// fields other than Applied is set.
type QuantityOutcome struct {
	Applied        bool   `json:"applied"`
	Notice         string `json:"notice,omitempty"`
	ConfirmRemoval bool   `json:"confirmRemoval,omitempty"`
}

// Form is the render state of any form.
type Form struct {
	Values           map[string]string `json:"values"`
	Errors           map[string]string `json:"errors"`
	PasswordStrength string            `json:"passwordStrength,omitempty"`
	Submitting       bool              `json:"submitting"`
	Redirect         string            `json:"redirect,omitempty"`
}

type Checkout struct {
	Header   Header              `json:"header"`
	Redirect string              `json:"redirect,omitempty"`
	State    string              `json:"state"`
	Form     Form                `json:"form"`
	Lines    []CartLine          `json:"lines"`
	Summary  models.PriceSummary `json:"summary"`
	Amounts  Amounts             `json:"amounts"`
	Receipt  *models.Receipt     `json:"receipt,omitempty"`
}
