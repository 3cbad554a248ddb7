// Package scheduler runs deferred work on the caller's goroutine. Work is
// queued with a due time and dispatched by type once the clock reaches it.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"go.uber.org/zap"
)

// Clock abstracts time so tests can step it by hand.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// HandlerFunc processes one due event.
type HandlerFunc func(event *models.Event)

// Scheduler is not safe for concurrent use; the caller serializes RunDue with
// whatever else touches the state its handlers mutate. Scheduled events cannot
// be cancelled.
type Scheduler struct {
	clock    Clock
	queue    *models.EventQueue
	handlers map[string]HandlerFunc
}

func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{
		clock:    clock,
		queue:    models.NewEventQueue(),
		handlers: make(map[string]HandlerFunc),
	}
}

func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Handle registers fn for eventType, replacing any earlier handler.
func (s *Scheduler) Handle(eventType string, fn HandlerFunc) {
	s.handlers[eventType] = fn
}

// After queues an event due delay from now and returns its due time.
func (s *Scheduler) After(delay time.Duration, eventType string, data interface{}) (time.Time, error) {
	if _, ok := s.handlers[eventType]; !ok {
		return time.Time{}, fmt.Errorf("no handler registered for %s", eventType)
	}
	due := s.clock.Now().Add(delay)
	s.queue.Enqueue(&models.Event{
		Time: due,
		Type: eventType,
		Data: data,
	})
	return due, nil
}

// RunDue dispatches every event due by now in time order, including events
// scheduled by handlers that are themselves already due. It returns how many
// ran.
func (s *Scheduler) RunDue() int {
	ran := 0
	for {
		event := s.queue.DequeueDue(s.clock.Now())
		if event == nil {
			return ran
		}
		s.dispatch(event)
		ran++
	}
}

func (s *Scheduler) dispatch(event *models.Event) {
	handler, ok := s.handlers[event.Type]
	if !ok {
		zap.S().Warnw("dropping event without handler", "type", event.Type)
		return
	}
	handler(event)
}

func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// NextDue reports when the earliest pending event is due.
func (s *Scheduler) NextDue() (time.Time, bool) {
	next := s.queue.Peek()
	if next == nil {
		return time.Time{}, false
	}
	return next.Time, true
}

// Drain waits for and runs every pending event until the queue is empty.
// Events already started always finish; ctx only stops the waiting.
func (s *Scheduler) Drain(ctx context.Context) error {
	for {
		s.RunDue()
		due, ok := s.NextDue()
		if !ok {
			return nil
		}
		wait := due.Sub(s.clock.Now())
		if wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(wait):
		}
	}
}
