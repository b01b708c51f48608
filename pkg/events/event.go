package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionCreated announces that a chat session was created with its
// documents fully ingested.
func NewSessionCreated(sessionId uuid.UUID, role string, fileCount int) Event {
	return BaseEvent{
		Type: "SESSION_CREATED",
		Data: map[string]interface{}{
			"chat_session_id": sessionId,
			"role":            role,
			"file_count":      fileCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewMessageAnswered announces a completed question and answer turn pair.
func NewMessageAnswered(sessionId uuid.UUID, rejected bool) Event {
	return BaseEvent{
		Type: "MESSAGE_ANSWERED",
		Data: map[string]interface{}{
			"chat_session_id": sessionId,
			"rejected":        rejected,
		},
		OccurredAt: time.Now(),
	}
}
