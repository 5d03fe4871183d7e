package events

import (
	"context"
	"time"
)

// Domain event types. Subscribers key on these strings, so treat them as wire values.
const (
	DocumentIngested   = "DOCUMENT_INGESTED"
	QuizFinalized      = "QUIZ_FINALIZED"
	QuestionMarkedPoor = "QUESTION_MARKED_POOR"
)

type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Publisher delivers events best effort. Callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }
