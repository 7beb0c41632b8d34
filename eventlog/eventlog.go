// Package eventlog keeps an append-only audit trail of portfolio activity.
// A Log is constructed once at the composition root and handed to whoever
// needs it; there is no package-level instance.
package eventlog

import "time"

// Event is a single timestamped audit entry.
type Event struct {
	Time        time.Time
	Description string
}

func (e Event) String() string {
	return e.Time.Format(time.RFC3339) + " - " + e.Description
}

// Log is an in-memory append-only event sequence. It is not safe for
// concurrent use; callers serialize access the same way they serialize
// access to the portfolio itself.
type Log struct {
	events []Event
	now    func() time.Time
}

func New() *Log {
	return &Log{now: time.Now}
}

// NewWithClock builds a log with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Append records a new event stamped with the current time.
func (l *Log) Append(description string) {
	l.events = append(l.events, Event{Time: l.now(), Description: description})
}

// Events returns a copy of all events in insertion order.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int { return len(l.events) }

// Clear drops every event and records the clearing itself as a fresh event.
func (l *Log) Clear() {
	l.events = l.events[:0]
	l.Append("Cleared events log")
}
