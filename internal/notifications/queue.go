package notifications

import (
	"log"
	"slices"
	"sync"
	"time"

	"dustbin-dashboard/internal/models"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible unless dismissed earlier
const DefaultTTL = 5 * time.Second

// Change kinds reported to the observer
const (
	ChangeAdded     = "added"
	ChangeExpired   = "expired"
	ChangeDismissed = "dismissed"
)

// Timer is the part of *time.Timer the queue needs
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc in production.
type Scheduler func(d time.Duration, f func()) Timer

// Observer is told about every change to the visible set
type Observer func(kind string, n models.Notification)

// Queue keeps the permanent notification history and the subset currently visible.
// Every notification schedules its own expiry; dismissal only hides it.
type Queue struct {
	mu       sync.Mutex
	history  []models.Notification
	visible  []models.Notification
	timers   map[string]Timer
	ttl      time.Duration
	schedule Scheduler
	now      func() time.Time
	observer Observer
	closed   bool
}

type Option func(*Queue)

// WithScheduler replaces time.AfterFunc, mainly for tests on simulated time
func WithScheduler(s Scheduler) Option {
	return func(q *Queue) { q.schedule = s }
}

// WithClock replaces time.Now for notification timestamps
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithObserver registers the visibility change hook
func WithObserver(o Observer) Option {
	return func(q *Queue) { q.observer = o }
}

// NewQueue creates an empty queue. A non-positive ttl falls back to DefaultTTL.
func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &Queue{
		timers: make(map[string]Timer),
		ttl:    ttl,
		schedule: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Notify appends a full-bin alert for bin to the history and shows it
func (q *Queue) Notify(bin models.Bin) models.Notification {
	n := models.Notification{
		ID:           uuid.New().String(),
		Message:      bin.FullMessage(),
		BinID:        bin.ID,
		SerialNumber: bin.SerialNumber,
		CreatedAt:    q.now(),
	}

	q.mu.Lock()
	q.history = append(q.history, n)
	if q.closed {
		q.mu.Unlock()
		return n
	}
	q.visible = append(q.visible, n)
	q.timers[n.ID] = q.schedule(q.ttl, func() { q.expire(n.ID) })
	q.mu.Unlock()

	log.Printf("🔔 Notification queued: %s", n.Message)
	q.emit(ChangeAdded, n)
	return n
}

// Dismiss hides a visible notification now. Its expiry timer is left to fire on nothing.
func (q *Queue) Dismiss(id string) bool {
	n, ok := q.hide(id)
	if !ok {
		return false
	}
	log.Printf("👋 Notification dismissed: %s", n.Message)
	q.emit(ChangeDismissed, n)
	return true
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	delete(q.timers, id)
	q.mu.Unlock()

	n, ok := q.hide(id)
	if !ok {
		return
	}
	q.emit(ChangeExpired, n)
}

func (q *Queue) hide(id string) (models.Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := slices.IndexFunc(q.visible, func(n models.Notification) bool { return n.ID == id })
	if idx < 0 {
		return models.Notification{}, false
	}
	n := q.visible[idx]
	q.visible = slices.Delete(slices.Clone(q.visible), idx, idx+1)
	return n, true
}

func (q *Queue) emit(kind string, n models.Notification) {
	if q.observer != nil {
		q.observer(kind, n)
	}
}

// Visible returns the notifications currently on screen, oldest first
func (q *Queue) Visible() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.visible)
}

// History returns every notification raised since startup
func (q *Queue) History() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.history)
}

// Close stops all pending expiry timers. The history stays readable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.closed = true
	log.Println("🔕 Notification queue closed")
}
