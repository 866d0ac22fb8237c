package notifications

import (
	"sort"
	"testing"
	"time"

	"dustbin-dashboard/internal/models"
)

// fakeClock schedules callbacks on simulated time
type fakeClock struct {
	now     time.Time
	pending []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Schedule(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

func (c *fakeClock) Now() time.Time { return c.now }

// Advance moves time forward and fires every due timer in order
func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	sort.SliceStable(c.pending, func(i, j int) bool { return c.pending[i].at.Before(c.pending[j].at) })
	for _, t := range c.pending {
		if t.fired || t.stopped || t.at.After(c.now) {
			continue
		}
		t.fired = true
		t.f()
	}
}

func newTestQueue(c *fakeClock, observer Observer) *Queue {
	opts := []Option{WithScheduler(c.Schedule), WithClock(c.Now)}
	if observer != nil {
		opts = append(opts, WithObserver(observer))
	}
	return NewQueue(DefaultTTL, opts...)
}

var srm003 = models.Bin{ID: 3, SerialNumber: "SRM003", FillPercentage: 100}

func TestQueue_NotifyAndExpire(t *testing.T) {
	clock := newFakeClock()
	q := newTestQueue(clock, nil)

	n := q.Notify(srm003)
	if n.Message != "Dustbin SRM003 is full!" {
		t.Errorf("Unexpected message %q", n.Message)
	}
	if n.ID == "" {
		t.Error("Notification has no id")
	}
	if !n.CreatedAt.Equal(clock.Now()) {
		t.Errorf("CreatedAt = %v, want %v", n.CreatedAt, clock.Now())
	}

	if got := len(q.Visible()); got != 1 {
		t.Fatalf("Expected 1 visible notification, got %d", got)
	}

	clock.Advance(4999 * time.Millisecond)
	if got := len(q.Visible()); got != 1 {
		t.Errorf("Notification expired early, visible = %d", got)
	}

	clock.Advance(time.Millisecond)
	if got := len(q.Visible()); got != 0 {
		t.Errorf("Expected notification to expire after 5000ms, visible = %d", got)
	}
	if got := len(q.History()); got != 1 {
		t.Errorf("History must keep expired notifications, got %d", got)
	}
}

func TestQueue_IndependentExpiry(t *testing.T) {
	clock := newFakeClock()
	q := newTestQueue(clock, nil)

	first := q.Notify(srm003)
	clock.Advance(3 * time.Second)
	second := q.Notify(models.Bin{ID: 1, SerialNumber: "SRM001"})

	visible := q.Visible()
	if len(visible) != 2 {
		t.Fatalf("Expected both notifications visible, got %d", len(visible))
	}

	clock.Advance(2 * time.Second)
	visible = q.Visible()
	if len(visible) != 1 || visible[0].ID != second.ID {
		t.Errorf("Expected only the second notification visible, got %+v", visible)
	}

	clock.Advance(3 * time.Second)
	if got := len(q.Visible()); got != 0 {
		t.Errorf("Expected all expired, visible = %d", got)
	}

	history := q.History()
	if len(history) != 2 || history[0].ID != first.ID || history[1].ID != second.ID {
		t.Errorf("History out of order: %+v", history)
	}
}

func TestQueue_DismissThenTimerFires(t *testing.T) {
	clock := newFakeClock()

	var changes []string
	q := newTestQueue(clock, func(kind string, n models.Notification) {
		changes = append(changes, kind)
	})

	n := q.Notify(srm003)
	if !q.Dismiss(n.ID) {
		t.Fatal("Dismiss() = false for a visible notification")
	}
	if got := len(q.Visible()); got != 0 {
		t.Errorf("Dismissed notification still visible")
	}
	if q.Dismiss(n.ID) {
		t.Error("Second Dismiss() = true, want false")
	}

	clock.Advance(DefaultTTL)

	want := []string{ChangeAdded, ChangeDismissed}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %s, want %s", i, changes[i], want[i])
		}
	}
	if got := len(q.History()); got != 1 {
		t.Errorf("Dismissal must not touch history, got %d", got)
	}
}

func TestQueue_SameMessageTwice(t *testing.T) {
	clock := newFakeClock()
	q := newTestQueue(clock, nil)

	a := q.Notify(srm003)
	b := q.Notify(srm003)
	if a.ID == b.ID {
		t.Fatal("Notifications share an id")
	}

	q.Dismiss(a.ID)
	visible := q.Visible()
	if len(visible) != 1 || visible[0].ID != b.ID {
		t.Errorf("Dismissing one copy removed the other: %+v", visible)
	}
}

func TestQueue_HistoryOrder(t *testing.T) {
	q := newTestQueue(newFakeClock(), nil)

	if len(q.History()) != 0 {
		t.Error("History() of a new queue is not empty")
	}

	first := q.Notify(srm003)
	last := q.Notify(models.Bin{ID: 5, SerialNumber: "SRM005"})

	history := q.History()
	if len(history) != 2 || history[0].ID != first.ID || history[1].ID != last.ID {
		t.Errorf("History() = %+v, want [%s %s]", history, first.ID, last.ID)
	}
}

func TestQueue_Close(t *testing.T) {
	clock := newFakeClock()
	q := newTestQueue(clock, nil)

	q.Notify(srm003)
	q.Close()

	for _, timer := range clock.pending {
		if !timer.stopped {
			t.Error("Close() left a timer running")
		}
	}

	q.Notify(srm003)
	if got := len(q.History()); got != 2 {
		t.Errorf("History = %d after close, want 2", got)
	}
	if got := len(clock.pending); got != 1 {
		t.Errorf("Closed queue scheduled a new timer")
	}
}
