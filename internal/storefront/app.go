// Package storefront is the presentation layer: it renders store state into
// per-route view models and turns user intents into store commands.
package storefront

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/checkout"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/scheduler"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/chrisdamba/foodstore/internal/validation"
)

var (
	ErrUnknownItem       = errors.New("unknown menu item")
	ErrUnknownRestaurant = errors.New("unknown restaurant")
	ErrNotInCart         = errors.New("item is not in the cart")
)

type Options struct {
	FeaturedCount int
	MaxQuantity   int
	Pricing       checkout.Pricing
	CheckoutDelay time.Duration
	LoginDelay    time.Duration
	RegisterDelay time.Duration
}

// DefaultOptions mirrors the built-in configuration defaults.
func DefaultOptions() Options {
	return Options{
		FeaturedCount: 4,
		MaxQuantity:   99,
		Pricing:       checkout.DefaultPricing(),
		CheckoutDelay: 1500 * time.Millisecond,
		LoginDelay:    500 * time.Millisecond,
		RegisterDelay: 800 * time.Millisecond,
	}
}

func OptionsFromConfig(cfg *models.Config) Options {
	return Options{
		FeaturedCount: cfg.Catalog.FeaturedCount,
		MaxQuantity:   cfg.Cart.MaxQuantity,
		Pricing:       checkout.PricingFromConfig(cfg.Pricing),
		CheckoutDelay: cfg.Delays.Checkout,
		LoginDelay:    cfg.Delays.Login,
		RegisterDelay: cfg.Delays.Register,
	}
}

// App wires the catalog, the store and the flows behind every route. It is
// not safe for concurrent use.
type App struct {
	catalog  *catalog.Catalog
	store    *session.Store
	sched    *scheduler.Scheduler
	opts     Options
	checkout *checkout.Flow
	login    *AuthFlow
	register *AuthFlow
}

func New(cat *catalog.Catalog, store *session.Store, sched *scheduler.Scheduler, opts Options) *App {
	return &App{
		catalog:  cat,
		store:    store,
		sched:    sched,
		opts:     opts,
		checkout: checkout.NewFlow(store, sched, opts.Pricing, opts.CheckoutDelay),
		login: newAuthFlow(store, sched, models.EventCompleteLogin, opts.LoginDelay,
			validation.NewLoginForm, loginUser),
		register: newAuthFlow(store, sched, models.EventCompleteSignup, opts.RegisterDelay,
			validation.NewRegisterForm, registerUser),
	}
}

func (a *App) Store() *session.Store           { return a.store }
func (a *App) Catalog() *catalog.Catalog       { return a.catalog }
func (a *App) Scheduler() *scheduler.Scheduler { return a.sched }
func (a *App) CheckoutFlow() *checkout.Flow    { return a.checkout }
func (a *App) LoginFlow() *AuthFlow            { return a.login }
func (a *App) RegisterFlow() *AuthFlow         { return a.register }

// Tick runs every scheduled task that has come due.
func (a *App) Tick() int {
	return a.sched.RunDue()
}

func (a *App) Header() Header {
	h := Header{CartCount: a.store.CartCount()}
	if user, ok := a.store.User(); ok {
		h.LoggedIn = true
		h.User = &user
	}
	return h
}

func (a *App) Home() Home {
	return Home{
		Header:      a.Header(),
		Restaurants: a.catalog.Restaurants(),
		Featured:    a.catalog.Featured(a.opts.FeaturedCount),
	}
}

func (a *App) Menu() Menu {
	items := a.catalog.Filter(a.store.SearchQuery(), a.store.SelectedCategory())
	return Menu{
		Header:     a.Header(),
		Query:      a.store.SearchQuery(),
		Category:   a.store.SelectedCategory(),
		Categories: a.catalog.Categories(),
		Items:      items,
		Empty:      len(items) == 0,
	}
}

// Restaurant renders one restaurant with its menu.
func (a *App) Restaurant(id int) (RestaurantPage, error) {
	restaurant, ok := a.catalog.Restaurant(id)
	if !ok {
		return RestaurantPage{}, fmt.Errorf("%w: %d", ErrUnknownRestaurant, id)
	}
	return RestaurantPage{
		Header:     a.Header(),
		Restaurant: restaurant,
		Items:      a.catalog.ItemsByRestaurant(id),
	}, nil
}

func (a *App) SetSearch(query string) {
	a.store.SetSearchQuery(query)
}

func (a *App) SetCategory(category string) {
	if category == "" {
		category = models.CategoryAll
	}
	a.store.SetSelectedCategory(category)
}

func (a *App) Cart() Cart {
	lines := a.store.Cart()
	summary := a.opts.Pricing.Summarize(lines)
	view := Cart{
		Header:       a.Header(),
		Lines:        cartLines(lines),
		Empty:        len(lines) == 0,
		Summary:      summary,
		Amounts:      amountsOf(summary),
		CheckoutPath: models.RouteLogin,
		CheckoutText: "Login to Checkout",
		CanClear:     len(lines) > 1,
		MaxQuantity:  a.opts.MaxQuantity,
	}
	if a.store.IsLoggedIn() {
		view.CheckoutPath = models.RouteCheckout
		view.CheckoutText = "Proceed to Checkout"
	}
	if summary.FreeDeliveryEligible {
		view.Notice = fmt.Sprintf("You're eligible for free delivery on orders over $%g!", a.opts.Pricing.FreeDeliveryThreshold)
	}
	return view
}

// AddToCart looks the item up in the catalog and adds one of it.
func (a *App) AddToCart(id int) error {
	item, ok := a.catalog.Item(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	a.store.AddToCart(item)
	return nil
}

// SetQuantity applies the per-item ceiling before touching the store. A
// quantity below one asks for confirmation instead of removing. Lines are
// looked up in the cart, so items dropped from the catalog stay editable.
func (a *App) SetQuantity(id, quantity int) (QuantityOutcome, error) {
	if _, ok := a.store.Line(id); !ok {
		return QuantityOutcome{}, fmt.Errorf("%w: %d", ErrNotInCart, id)
	}
	switch {
	case quantity > a.opts.MaxQuantity:
		return QuantityOutcome{Notice: fmt.Sprintf("Maximum quantity per item is %d", a.opts.MaxQuantity)}, nil
	case quantity < 1:
		return QuantityOutcome{ConfirmRemoval: true}, nil
	}
	a.store.UpdateQuantity(id, quantity)
	return QuantityOutcome{Applied: true}, nil
}

func (a *App) RemoveItem(id int) {
	a.store.RemoveFromCart(id)
}

func (a *App) ClearCart() {
	a.store.ClearCart()
}

// Logout signs out and returns the route to go to.
func (a *App) Logout() string {
	a.store.Logout()
	return models.RouteHome
}

func (a *App) Checkout() Checkout {
	flow := a.checkout
	lines := a.store.Cart()
	summary := flow.Summary()
	view := Checkout{
		Header:   a.Header(),
		Redirect: flow.Guard(),
		State:    flow.State(),
		Form:     formView(flow.Form(), flow.State() == models.CheckoutSubmitting),
		Lines:    cartLines(lines),
		Summary:  summary,
		Amounts:  amountsOf(summary),
	}
	if receipt, ok := flow.Receipt(); ok {
		view.Receipt = &receipt
		if flow.State() == models.CheckoutPlaced {
			view.Lines = cartLines(receipt.Lines)
			view.Summary = receipt.Summary
			view.Amounts = amountsOf(receipt.Summary)
		}
	}
	return view
}

func (a *App) CheckoutChange(field, value string) error {
	return a.checkout.Form().Change(field, value)
}

func (a *App) CheckoutBlur(field string) error {
	return a.checkout.Form().Blur(field)
}

func (a *App) SubmitCheckout() (time.Time, error) {
	return a.checkout.Submit()
}

func (a *App) ResetCheckout() error {
	return a.checkout.Reset()
}

func (a *App) LoginForm() Form {
	return authView(a.login, false)
}

func (a *App) RegisterForm() Form {
	return authView(a.register, true)
}

func authView(flow *AuthFlow, strength bool) Form {
	view := formView(flow.Form(), flow.Submitting())
	view.Redirect = flow.Redirect()
	if strength {
		view.PasswordStrength = validation.PasswordStrength(flow.Form().Value(validation.FieldPassword))
	}
	return view
}

func formView(form *validation.Form, submitting bool) Form {
	return Form{
		Values:     form.Values(),
		Errors:     form.VisibleErrors(),
		Submitting: submitting,
	}
}
