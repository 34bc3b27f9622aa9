package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "studyhub-service"
	EventVersion = "1.0"
)

// Event types
const (
	StudentCreated = "student.created"
	StudentUpdated = "student.updated"
	StudentDeleted = "student.deleted"

	TutorCreated = "tutor.created"
	TutorUpdated = "tutor.updated"
	TutorDeleted = "tutor.deleted"

	SessionCreated = "session.created"
	SessionUpdated = "session.updated"
	SessionDeleted = "session.deleted"

	MemberSyncFailed = "member.sync_failed"
	MemberReconciled = "member.reconciled"
)

// Event is the envelope published for every domain change
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps data with a fresh id and the current time
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EntityEvent is the payload of create/update/delete events
type EntityEvent struct {
	EntityID uint   `json:"entityId"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
}

// SyncFailedEvent is the payload of member.sync_failed
type SyncFailedEvent struct {
	Operation string `json:"operation"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	EntityID  uint   `json:"entityId"`
	Reason    string `json:"reason"`
}

// ReconciledEvent is the payload of member.reconciled
type ReconciledEvent struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
