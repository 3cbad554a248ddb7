package models

const (
	CategoryAll = "All"

	PaymentCard = "card"
	PaymentCash = "cash"

	CheckoutIdle       = "idle"
	CheckoutSubmitting = "submitting"
	CheckoutPlaced     = "placed"

	RouteHome     = "/"
	RouteMenu     = "/menu"
	RouteCart     = "/cart"
	RouteCheckout = "/checkout"
	RouteLogin    = "/login"
	RouteRegister = "/register"

	CatalogStatic    = "static"
	CatalogSynthetic = "synthetic"
	CatalogPostgres  = "postgres"
)
