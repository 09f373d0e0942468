package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of lifecycle step a ledger entry records.
type Action string

const (
	ActionDispatch      Action = "dispatch"
	ActionReceiveEmpty  Action = "receive_empty"
	ActionReceiveFilled Action = "receive_filled"
	ActionRefill        Action = "refill"
)

func (a Action) Valid() bool {
	switch a {
	case ActionDispatch, ActionReceiveEmpty, ActionReceiveFilled, ActionRefill:
		return true
	}

	return false
}

// Entry is one immutable ledger row. ID and Timestamp are assigned on append.
type Entry struct {
	ID         int64
	UserID     uuid.UUID
	CylinderID string
	Action     Action
	CompanyID  *int64
	Timestamp  time.Time

	// Loaded via JOIN on query.
	Username    string
	CompanyName string
}
