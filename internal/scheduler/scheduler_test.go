package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRunDueRespectsDueTime(t *testing.T) {
	clock := newManualClock()
	s := New(clock)
	var ran []string
	s.Handle("note", func(e *models.Event) { ran = append(ran, e.Data.(string)) })

	if _, err := s.After(1500*time.Millisecond, "note", "late"); err != nil {
		t.Fatalf("after: %v", err)
	}
	if _, err := s.After(500*time.Millisecond, "note", "early"); err != nil {
		t.Fatalf("after: %v", err)
	}

	if n := s.RunDue(); n != 0 {
		t.Fatalf("expected nothing due, ran %d", n)
	}
	clock.Advance(time.Second)
	if n := s.RunDue(); n != 1 || ran[0] != "early" {
		t.Fatalf("expected early event only, got %v", ran)
	}
	if s.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", s.Pending())
	}
	clock.Advance(time.Second)
	s.RunDue()
	if len(ran) != 2 || ran[1] != "late" {
		t.Fatalf("expected late event second, got %v", ran)
	}
}

func TestSameDueTimeKeepsInsertionOrder(t *testing.T) {
	clock := newManualClock()
	s := New(clock)
	var ran []int
	s.Handle("n", func(e *models.Event) { ran = append(ran, e.Data.(int)) })
	for i := 0; i < 5; i++ {
		_, _ = s.After(time.Second, "n", i)
	}
	clock.Advance(time.Second)
	s.RunDue()
	for i, v := range ran {
		if v != i {
			t.Fatalf("expected insertion order, got %v", ran)
		}
	}
}

func TestAfterRequiresHandler(t *testing.T) {
	s := New(newManualClock())
	if _, err := s.After(time.Second, "missing", nil); err == nil {
		t.Fatal("expected error for unregistered event type")
	}
}

func TestNextDue(t *testing.T) {
	clock := newManualClock()
	s := New(clock)
	s.Handle("n", func(*models.Event) {})
	if _, ok := s.NextDue(); ok {
		t.Fatal("expected empty queue")
	}
	due, _ := s.After(800*time.Millisecond, "n", nil)
	got, ok := s.NextDue()
	if !ok || !got.Equal(due) {
		t.Fatalf("expected next due %v, got %v", due, got)
	}
}

func TestDrainRunsEverything(t *testing.T) {
	clock := newManualClock()
	s := New(clock)
	count := 0
	s.Handle("chain", func(e *models.Event) {
		count++
		if count < 3 {
			_, _ = s.After(time.Second, "chain", nil)
		}
	})
	_, _ = s.After(time.Second, "chain", nil)

	if err := s.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if count != 3 || s.Pending() != 0 {
		t.Fatalf("expected 3 runs and empty queue, got %d runs and %d pending", count, s.Pending())
	}
}

func TestDrainStopsOnCancelledContext(t *testing.T) {
	s := New(SystemClock)
	s.Handle("n", func(*models.Event) {})
	_, _ = s.After(time.Hour, "n", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Drain(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
