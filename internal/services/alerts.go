package services

import (
	"fmt"
	"log"
	"sync"

	"dustbin-dashboard/internal/models"

	"github.com/gammazero/workerpool"
)

// Alerter delivers a full-bin alert outside the dashboard
type Alerter interface {
	Send(n models.Notification) error
}

// LogAlerter stands in for email and SMS delivery. It only writes a log line.
type LogAlerter struct {
	Email string
	Phone string
}

// NewLogAlerter creates the log-only alerter for the given recipients
func NewLogAlerter(email, phone string) *LogAlerter {
	return &LogAlerter{Email: email, Phone: phone}
}

// Describe returns the line Send writes
func (a *LogAlerter) Describe(n models.Notification) string {
	return fmt.Sprintf("Sending notification to %s and %s: %s", a.Email, a.Phone, n.Message)
}

// Send logs the intended delivery
func (a *LogAlerter) Send(n models.Notification) error {
	log.Printf("📧 %s", a.Describe(n))
	return nil
}

// Dispatcher hands alerts to an Alerter off the caller's goroutine.
// Delivery errors are logged and dropped.
type Dispatcher struct {
	alerter Alerter
	pool    *workerpool.WorkerPool

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a dispatcher backed by workers goroutines
func NewDispatcher(alerter Alerter, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		alerter: alerter,
		pool:    workerpool.New(workers),
	}
}

// Dispatch queues n for delivery and returns immediately
func (d *Dispatcher) Dispatch(n models.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Printf("⚠️  Alert dispatcher stopped, dropping alert: %s", n.Message)
		return
	}
	d.pool.Submit(func() {
		if err := d.alerter.Send(n); err != nil {
			log.Printf("❌ Failed to deliver alert %s: %v", n.ID, err)
		}
	})
}

// Close waits for queued alerts to be delivered and stops the workers
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.pool.StopWait()
	log.Println("📪 Alert dispatcher stopped")
}
