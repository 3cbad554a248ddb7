// Package checkout prices the cart and runs the simulated order placement.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/scheduler"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/chrisdamba/foodstore/internal/validation"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

// Topics published on the store's bus with a models.Receipt.
const (
	TopicSubmitted = "checkout:submitted"
	TopicPlaced    = "checkout:placed"
)

var (
	ErrLoginRequired = errors.New("login required to check out")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNotIdle       = errors.New("an order is already in progress")
	ErrOrderPlaced   = errors.New("order already placed, start a new checkout")
	ErrInvalidForm   = errors.New("checkout form is invalid")
)

// Flow moves one checkout through idle, submitting and placed. Once
// submitted, placement always succeeds after the configured delay. A placed
// checkout starts over as soon as the cart has items again.
type Flow struct {
	store   *session.Store
	sched   *scheduler.Scheduler
	pricing Pricing
	delay   time.Duration
	newID   func() string

	form    *validation.Form
	state   string
	pending *models.Receipt
	receipt *models.Receipt
}

func NewFlow(store *session.Store, sched *scheduler.Scheduler, pricing Pricing, delay time.Duration) *Flow {
	f := &Flow{
		store:   store,
		sched:   sched,
		pricing: pricing,
		delay:   delay,
		newID:   cuid.New,
		form:    validation.NewCheckoutForm(),
		state:   models.CheckoutIdle,
	}
	sched.Handle(models.EventConfirmOrder, f.confirm)
	if err := store.Subscribe(f.cartChanged); err != nil {
		zap.S().Errorw("failed to watch cart for checkout", "error", err)
	}
	return f
}

func (f *Flow) cartChanged(change session.Change) {
	if f.state == models.CheckoutPlaced && change.CartCount > 0 {
		f.startOver()
	}
}

func (f *Flow) State() string {
	return f.state
}

func (f *Flow) Form() *validation.Form {
	return f.form
}

// Summary prices the live cart.
func (f *Flow) Summary() models.PriceSummary {
	return f.pricing.Summarize(f.store.Cart())
}

// Receipt returns the placed order, or while submitting the pending one.
func (f *Flow) Receipt() (models.Receipt, bool) {
	switch {
	case f.receipt != nil:
		return *f.receipt, true
	case f.pending != nil:
		return *f.pending, true
	}
	return models.Receipt{}, false
}

// Guard returns where the checkout view must redirect to, or "" to stay.
func (f *Flow) Guard() string {
	if !f.store.IsLoggedIn() {
		return models.RouteLogin
	}
	if f.store.CartCount() == 0 && f.state != models.CheckoutPlaced {
		return models.RouteMenu
	}
	return ""
}

// Submit validates the form and schedules order placement. It returns when
// the order will be placed. An invalid form leaves the flow idle with every
// field touched.
func (f *Flow) Submit() (time.Time, error) {
	if !f.store.IsLoggedIn() {
		return time.Time{}, ErrLoginRequired
	}
	switch f.state {
	case models.CheckoutSubmitting:
		return time.Time{}, ErrNotIdle
	case models.CheckoutPlaced:
		return time.Time{}, ErrOrderPlaced
	}
	lines := f.store.Cart()
	if len(lines) == 0 {
		return time.Time{}, ErrEmptyCart
	}
	if err := f.form.Submit(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	orderID := f.newID()
	due, err := f.sched.After(f.delay, models.EventConfirmOrder, orderID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to schedule order confirmation: %w", err)
	}
	f.pending = &models.Receipt{
		OrderID:     orderID,
		Lines:       lines,
		Summary:     f.pricing.Summarize(lines),
		Delivery:    validation.DeliveryDetails(f.form),
		SubmittedAt: f.sched.Now(),
	}
	f.state = models.CheckoutSubmitting
	f.store.Bus().Publish(TopicSubmitted, *f.pending)
	return due, nil
}

func (f *Flow) confirm(event *models.Event) {
	orderID, _ := event.Data.(string)
	if f.pending == nil || f.pending.OrderID != orderID {
		zap.S().Warnw("ignoring confirmation for unknown order", "order_id", orderID)
		return
	}
	receipt := *f.pending
	receipt.PlacedAt = f.sched.Now()
	f.pending = nil
	f.receipt = &receipt

	f.store.ClearCart()
	f.state = models.CheckoutPlaced
	zap.S().Infow("order placed", "order_id", receipt.OrderID, "total", Round2(receipt.Summary.Total))
	f.store.Bus().Publish(TopicPlaced, receipt)
}

// Reset starts a new checkout after an order was placed.
func (f *Flow) Reset() error {
	if f.state == models.CheckoutSubmitting {
		return ErrNotIdle
	}
	f.startOver()
	return nil
}

func (f *Flow) startOver() {
	f.state = models.CheckoutIdle
	f.receipt = nil
	f.form = validation.NewCheckoutForm()
}
