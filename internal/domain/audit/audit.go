package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action represents the mutation that occurred.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event represents a single entry in the activity log.
type Event struct {
	ID          string
	Timestamp   time.Time
	Action      Action
	MemberID    int64
	Description string
	Metadata    string
}

// NewEvent creates a new audit event for a member mutation.
// PRE: action is non-empty, memberID > 0
// POST: Returns an Event with a fresh ID and the given timestamp
func NewEvent(action Action, memberID int64, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: at,
		Action:    action,
		MemberID:  memberID,
	}
}

// WithDescription sets the event description.
// PRE: description is non-empty
// POST: Event description is set
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}

// WithMetadata sets free-form detail, such as the updated field name.
func (e Event) WithMetadata(metadata string) Event {
	e.Metadata = metadata
	return e
}
