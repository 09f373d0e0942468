package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("company not found")

// Company is an active customer cylinders can be dispatched to.
type Company struct {
	ID        int64
	Name      string
	Address   string
	Contact   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ArchivedCompany keeps the original id so historical transactions still
// resolve to a name.
type ArchivedCompany struct {
	ID        int64
	Name      string
	Address   string
	Contact   string
	CreatedAt time.Time
	DeletedBy uuid.UUID
	DeletedAt time.Time
}
