package events

import (
	"encoding/json"
	"time"

	"dompet/internal/core"
)

// ActivityMessage notifies external consumers that the transaction
// collection mutated, so detached renderers can re-derive their views.
// It mirrors one activity log entry.
type ActivityMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActivityMessage builds a message from an activity log entry.
func NewActivityMessage(entry core.ActivityEntry) *ActivityMessage {
	return &ActivityMessage{
		ID:        entry.ID,
		Action:    string(entry.Action),
		Details:   entry.Details,
		Timestamp: entry.Timestamp,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON creates a message from JSON bytes.
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
