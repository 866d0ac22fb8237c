// Package simulation drifts bin fill levels upward on a fixed period, standing in
// for real sensors, and reports the moment a bin becomes full.
//
// Full events are computed inside the tick but notifications are raised only after the
// new snapshot is swapped in, so observers never see a notification for a fill level
// the store does not hold yet.
package simulation

import (
	"context"
	"log"
	"math/rand"
	"time"

	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/store"
)

// DefaultInterval is the sensor update period
const DefaultInterval = 15 * time.Second

// Increment returns how much a bin fills during one tick: 0 or 1
type Increment func() int

// RandomIncrement draws 0 or 1 uniformly
func RandomIncrement() int {
	return rand.Intn(2)
}

// FullEvent is raised once when a bin moves from below 100% to 100%
type FullEvent struct {
	Bin models.Bin
}

func (e FullEvent) Message() string {
	return e.Bin.FullMessage()
}

// Tick computes the next fill level of every bin. The input is not modified.
// Events come out in collection order and carry the bin as it is after the tick.
func Tick(bins []models.Bin, inc Increment) ([]models.Bin, []FullEvent) {
	next := make([]models.Bin, len(bins))
	var events []FullEvent

	for i, bin := range bins {
		fill := min(models.MaxFillPercentage, bin.FillPercentage+inc())
		updated := bin
		updated.FillPercentage = fill
		if updated.IsFull() && !bin.IsFull() {
			events = append(events, FullEvent{Bin: updated})
		}
		next[i] = updated
	}

	return next, events
}

// Notifier receives every full-bin event
type Notifier interface {
	Notify(bin models.Bin) models.Notification
}

// Dispatcher forwards raised notifications to external channels
type Dispatcher interface {
	Dispatch(n models.Notification)
}

type Simulator struct {
	store      *store.Store
	notifier   Notifier
	dispatcher Dispatcher
	interval   time.Duration
	inc        Increment
}

// NewSimulator wires a simulator. dispatcher may be nil.
func NewSimulator(st *store.Store, notifier Notifier, dispatcher Dispatcher, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		store:      st,
		notifier:   notifier,
		dispatcher: dispatcher,
		interval:   interval,
		inc:        RandomIncrement,
	}
}

// WithIncrement replaces the random increment source
func (s *Simulator) WithIncrement(inc Increment) *Simulator {
	s.inc = inc
	return s
}

// Step runs a single tick against the store and raises its notifications
func (s *Simulator) Step() []FullEvent {
	var events []FullEvent
	s.store.Update(func(current []models.Bin) []models.Bin {
		next, raised := Tick(current, s.inc)
		events = raised
		return next
	})

	for _, ev := range events {
		n := s.notifier.Notify(ev.Bin)
		if s.dispatcher != nil {
			s.dispatcher.Dispatch(n)
		}
	}
	return events
}

// Run ticks every interval until ctx is cancelled
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("🎲 Simulation started (interval: %s)", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Simulation stopped")
			return
		case <-ticker.C:
			events := s.Step()
			if len(events) > 0 {
				log.Printf("🚨 %d bin(s) became full this tick", len(events))
			}
		}
	}
}
