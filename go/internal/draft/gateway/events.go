package gateway

import (
	"encoding/json"
	"time"

	"github.com/mcdev12/draftroom/go/internal/draft/events"
)

// RoomEvent is the envelope delivered to WebSocket clients.
type RoomEvent struct {
	ID        string          `json:"id"`        // Event UUID
	RoomID    string          `json:"room_id"`   // Room UUID
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of room event.
type EventType string

const (
	EventTypeLedgerChanged  EventType = EventType(events.TypeLedgerChanged)
	EventTypePickMade       EventType = EventType(events.TypePickMade)
	EventTypePickUndone     EventType = EventType(events.TypePickUndone)
	EventTypeDraftCompleted EventType = EventType(events.TypeDraftCompleted)
)

// ParseEventPayload parses event data into the appropriate payload struct.
// Unknown event types yield a nil payload, not an error; clients treat any
// event as a hint to re-fetch state.
func ParseEventPayload(event *RoomEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeLedgerChanged:
		var payload events.LedgerChangedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePickMade:
		var payload events.PickMadePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePickUndone:
		var payload events.PickUndonePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftCompleted:
		var payload events.DraftCompletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil
	}
}
