package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

type entryResponse struct {
	ID          int64         `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	Username    string        `json:"username,omitempty"`
	CylinderID  string        `json:"cylinderId"`
	Action      ledger.Action `json:"action"`
	CompanyID   *int64        `json:"companyId,omitempty"`
	CompanyName string        `json:"companyName,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

func toResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Username:    e.Username,
		CylinderID:  e.CylinderID,
		Action:      e.Action,
		CompanyID:   e.CompanyID,
		CompanyName: e.CompanyName,
		Timestamp:   e.Timestamp,
	}
}

func toResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
