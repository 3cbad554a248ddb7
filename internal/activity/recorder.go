package activity

import (
	"encoding/json"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/chrisdamba/foodstore/internal/checkout"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/session"
)

// Recorder turns bus events into journal records. Filter changes are not
// journaled.
type Recorder struct {
	bus  EventBus.Bus
	dest Destination
	now  func() time.Time

	userEmail string

	onChange    func(session.Change)
	onSubmitted func(models.Receipt)
	onPlaced    func(models.Receipt)
}

// NewRecorder subscribes to the session and checkout topics on bus.
func NewRecorder(bus EventBus.Bus, dest Destination) (*Recorder, error) {
	r := &Recorder{bus: bus, dest: dest, now: time.Now}
	r.onChange = r.recordChange
	r.onSubmitted = func(receipt models.Receipt) { r.recordOrder("order_submitted", receipt, receipt.SubmittedAt) }
	r.onPlaced = func(receipt models.Receipt) { r.recordOrder("order_placed", receipt, receipt.PlacedAt) }

	subscriptions := []struct {
		topic string
		fn    interface{}
	}{
		{session.TopicChanged, r.onChange},
		{checkout.TopicSubmitted, r.onSubmitted},
		{checkout.TopicPlaced, r.onPlaced},
	}
	for i, sub := range subscriptions {
		if err := bus.Subscribe(sub.topic, sub.fn); err != nil {
			for _, done := range subscriptions[:i] {
				bus.Unsubscribe(done.topic, done.fn)
			}
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) recordChange(change session.Change) {
	if change.Kind == session.ChangeFilter {
		return
	}
	if change.LoggedIn {
		r.userEmail = change.User.Email
	}

	topic := TopicCart
	if change.Kind == session.ChangeLogin || change.Kind == session.ChangeLogout {
		topic = TopicSession
	}
	r.write(topic, Record{
		Timestamp: r.now().Unix(),
		EventType: change.Kind,
		UserEmail: r.userEmail,
		ItemID:    int64(change.ItemID),
		Quantity:  int64(change.Quantity),
		CartCount: int64(change.CartCount),
		CartTotal: change.CartTotal,
	})
	if change.Kind == session.ChangeLogout {
		r.userEmail = ""
	}
}

func (r *Recorder) recordOrder(eventType string, receipt models.Receipt, at time.Time) {
	if at.IsZero() {
		at = r.now()
	}
	r.write(TopicOrder, Record{
		Timestamp:     at.Unix(),
		EventType:     eventType,
		UserEmail:     r.userEmail,
		CartCount:     int64(receipt.Summary.ItemCount),
		CartTotal:     receipt.Summary.Subtotal,
		OrderID:       receipt.OrderID,
		OrderTotal:    receipt.Summary.Total,
		PaymentMethod: receipt.Delivery.PaymentMethod,
	})
}

func (r *Recorder) write(topic string, record Record) {
	msg, err := json.Marshal(record)
	if err != nil {
		zap.S().Errorw("failed to encode activity record", "topic", topic, "error", err)
		return
	}
	if err := r.dest.WriteMessage(topic, msg); err != nil {
		zap.S().Errorw("failed to write activity record", "topic", topic, "error", err)
	}
}

// Close unsubscribes and closes the destination.
func (r *Recorder) Close() error {
	r.bus.Unsubscribe(session.TopicChanged, r.onChange)
	r.bus.Unsubscribe(checkout.TopicSubmitted, r.onSubmitted)
	r.bus.Unsubscribe(checkout.TopicPlaced, r.onPlaced)
	return r.dest.Close()
}
