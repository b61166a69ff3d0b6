// Package activity is the shared activity log: status changes, exports,
// downloads and failures recorded for display in the activity window.
package activity

import (
	"sync"
	"time"
)

// Status indicates the outcome of a logged action.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// DefaultCapacity bounds a Log created with capacity <= 0.
const DefaultCapacity = 200

// Event is one entry in the activity log.
type Event struct {
	Message   string
	Status    Status
	Timestamp time.Time
	Metadata  map[string]string // optional: application id, status, path
}

// Log is a bounded, concurrency-safe event log. The oldest events are
// dropped once capacity is reached.
type Log struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	now      func() time.Time
}

// NewLog returns an empty log holding at most capacity events.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity, now: time.Now}
}

// Emit appends ev, stamping it with the current time if unset.
func (l *Log) Emit(ev Event) Event {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = l.now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	if over := len(l.events) - l.capacity; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
	return ev
}

// Events returns a copy of the log, oldest first.
func (l *Log) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Event(nil), l.events...)
}

// Len returns the number of events held.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
