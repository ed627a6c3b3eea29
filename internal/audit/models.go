// Package audit records who changed the swift directory and when. Mutations
// are rare for reference data, so every add and delete is worth an event.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names a mutation on the directory.
type Action string

const (
	ActionAdd    Action = "swift_code_added"
	ActionDelete Action = "swift_code_deleted"
	ActionIngest Action = "dataset_ingested"
)

// Event is one audit record.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	SwiftCode string    `json:"swiftCode,omitempty"`
	Count     int       `json:"count,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(action Action) Event {
	return Event{
		ID:        uuid.New(),
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}
