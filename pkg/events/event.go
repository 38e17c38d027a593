package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_ANALYZED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// Event type codes published by the document pipeline.
const (
	TypeDocumentAnalyzed     = "DOCUMENT_ANALYZED"
	TypeDocumentActionLogged = "DOCUMENT_ACTION_LOGGED"
)

// NewDocumentAnalyzed builds the event emitted after a successful
// analyze + persist cycle.
func NewDocumentAnalyzed(assetId, userId, filename string, fieldCount int) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentAnalyzed,
		Data: map[string]interface{}{
			"asset_id":    assetId,
			"user_id":     userId,
			"filename":    filename,
			"field_count": fieldCount,
		},
		OccurredAt: time.Now(),
	}
}
