package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventRequestCreated = "request_created"
	EventRequestDecided = "request_decided"
	EventAttendanceMark = "attendance_marked"
	EventUserRegistered = "user_registered"
	EventUserVerified   = "user_verified"
)

// RequestEventPayload describes the minimal request snapshot for event consumers.
type RequestEventPayload struct {
	RequestID  int64      `json:"request_id"`
	WorkerID   int64      `json:"worker_id"`
	WorkerName string     `json:"worker_name,omitempty"`
	Type       string     `json:"type"`
	HourlyKind string     `json:"hourly_kind,omitempty"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	LeaveDate  string     `json:"leave_date,omitempty"`
	ReturnDate string     `json:"return_date,omitempty"`
	TargetTime *time.Time `json:"target_time,omitempty"`
	DeciderID  int64      `json:"decider_id,omitempty"`
	Comment    string     `json:"comment,omitempty"`
}

// AttendanceEventPayload is published on check-in/check-out marks.
type AttendanceEventPayload struct {
	WorkerID   int64      `json:"worker_id"`
	WorkerName string     `json:"worker_name,omitempty"`
	Day        string     `json:"day"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Comment    string     `json:"comment,omitempty"`
}

// UserEventPayload is published on registration and verification.
type UserEventPayload struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Language string `json:"language,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
	Processed bool
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
