// Package events carries core-to-UI notifications across goroutines.
//
// Publish never blocks: the reminder goroutine posts and forgets, and the
// UI side drains its subscription at its own pace. A subscriber whose buffer
// is full loses the event (counted in DroppedEventCount).
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/twenty20twenty/twenty20twenty/internal/constants"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	EventReminder   EventType = "reminder"    // The scheduler fired
	EventAbout      EventType = "about"       // The About dialog was requested
	EventSilentMode EventType = "silent_mode" // Silent mode was toggled
	EventShutdown   EventType = "shutdown"    // The core finished teardown; the UI should quit
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// ReminderEvent asks the UI to display a reminder notification.
type ReminderEvent struct {
	BaseEvent
	Title    string
	Body     string
	Sequence uint64 // 1 for the first firing since launch
}

// AboutEvent asks the UI to show the About dialog.
type AboutEvent struct {
	BaseEvent
	Title string
	Body  string
}

// SilentModeEvent reports the silent mode after a toggle so the UI can
// update its check mark and tooltip.
type SilentModeEvent struct {
	BaseEvent
	Enabled bool
	State   string // scheduler state after the toggle
}

// ShutdownEvent tells the UI that the lock is released and the scheduler
// cancelled.
type ShutdownEvent struct {
	BaseEvent
	Reason string
}

// EventBus fans events out to its subscribers. Every subscriber receives
// every event; consumers switch on the concrete type.
type EventBus struct {
	subscribers   []chan Event
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		bufferSize: bufferSize,
	}
}

// SubscribeAll creates a subscription to all events
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers = append(eb.subscribers, ch)
	return ch
}

// Publish sends an event to all subscribers without blocking.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true
	for _, ch := range eb.subscribers {
		close(ch)
	}
}

// PublishReminder is a convenience method for publishing reminder events
func (eb *EventBus) PublishReminder(title, body string, sequence uint64) {
	eb.Publish(&ReminderEvent{
		BaseEvent: BaseEvent{
			EventType: EventReminder,
			Time:      time.Now(),
		},
		Title:    title,
		Body:     body,
		Sequence: sequence,
	})
}

// PublishAbout is a convenience method for publishing about events
func (eb *EventBus) PublishAbout(title, body string) {
	eb.Publish(&AboutEvent{
		BaseEvent: BaseEvent{
			EventType: EventAbout,
			Time:      time.Now(),
		},
		Title: title,
		Body:  body,
	})
}

// PublishSilentMode is a convenience method for publishing silent mode events
func (eb *EventBus) PublishSilentMode(enabled bool, state string) {
	eb.Publish(&SilentModeEvent{
		BaseEvent: BaseEvent{
			EventType: EventSilentMode,
			Time:      time.Now(),
		},
		Enabled: enabled,
		State:   state,
	})
}

// PublishShutdown is a convenience method for publishing shutdown events
func (eb *EventBus) PublishShutdown(reason string) {
	eb.Publish(&ShutdownEvent{
		BaseEvent: BaseEvent{
			EventType: EventShutdown,
			Time:      time.Now(),
		},
		Reason: reason,
	})
}

// DroppedEventCount returns the total number of events dropped due to full buffers
func (eb *EventBus) DroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}
