// Package events provides a synchronous, in-process event bus for task
// mutations and rejected commands.
package events

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event.
type EventType string

const (
	// Task mutations
	EventTaskAdded   EventType = "task.added"
	EventTaskDone    EventType = "task.done"
	EventTaskUndone  EventType = "task.undone"
	EventTaskDeleted EventType = "task.deleted"

	// Input that could not be parsed or executed
	EventCommandRejected EventType = "command.rejected"

	// Session lifecycle
	EventSessionStarted EventType = "session.started"
	EventSessionEnded   EventType = "session.ended"
)

// Event represents an event in the system.
type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id,omitempty"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}

// eventIDCounter is used to generate sequential event IDs.
var eventIDCounter uint64

func generateEventID() string {
	seq := atomic.AddUint64(&eventIDCounter, 1)
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq)
}

// NewSessionID creates a unique session identifier.
func NewSessionID() string {
	u := uuid.New().String()
	return "sess_" + strings.ReplaceAll(u[:8], "-", "")
}

// Subscriber is a function that receives events.
type Subscriber func(Event)

type subscription struct {
	eventTypes []EventType
	handler    Subscriber
}

// Bus delivers events to subscribers synchronously, in the publisher's
// goroutine, so a handler has finished by the time Publish returns.
// Every published event is stamped with the bus session ID.
type Bus struct {
	mu          sync.RWMutex
	sessionID   string
	subscribers map[int]*subscription
	nextID      int
	closed      bool
}

// NewBus creates a bus for one session.
func NewBus(sessionID string) *Bus {
	return &Bus{
		sessionID:   sessionID,
		subscribers: make(map[int]*subscription),
	}
}

// SessionID returns the session the bus stamps on events.
func (b *Bus) SessionID() string {
	return b.sessionID
}

// Publish stamps and delivers an event to matching subscribers. Publishing
// on a closed bus is a no-op.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	if event.ID == "" {
		event.ID = generateEventID()
	}
	if event.SessionID == "" {
		event.SessionID = b.sessionID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	var handlers []Subscriber
	for _, id := range b.subscriberIDs() {
		sub := b.subscribers[id]
		if sub.matches(event) {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// subscriberIDs returns ids in registration order. Caller holds mu.
func (b *Bus) subscriberIDs() []int {
	ids := make([]int, 0, len(b.subscribers))
	for id := 0; id < b.nextID; id++ {
		if _, ok := b.subscribers[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *subscription) matches(event Event) bool {
	if len(s.eventTypes) == 0 {
		return true
	}
	for _, t := range s.eventTypes {
		if t == event.Type {
			return true
		}
	}
	return false
}

// Subscribe registers a handler for specific event types, or all events
// when none are given. Returns an unsubscribe function.
func (b *Bus) Subscribe(handler Subscriber, eventTypes ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	b.subscribers[id] = &subscription{
		eventTypes: eventTypes,
		handler:    handler,
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Close stops delivery of further events.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
