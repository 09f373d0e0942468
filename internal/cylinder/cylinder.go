package cylinder

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("cylinder not found")
	ErrDuplicateSerial = errors.New("serial number already exists")
)

// Status is the lifecycle state of a cylinder.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusDispatched Status = "dispatched"
	StatusEmpty      Status = "empty"
	StatusRefilling  Status = "refilling"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusDispatched, StatusEmpty, StatusRefilling:
		return true
	}

	return false
}

// AllowedSizes are the cylinder capacities the inventory accepts.
var AllowedSizes = []int{10, 20, 30, 50, 100}

func ValidSize(size int) bool {
	return slices.Contains(AllowedSizes, size)
}

// Cylinder is an active inventory record. CompanyID is set exactly when
// Status is StatusDispatched.
type Cylinder struct {
	SerialNumber string
	GasType      string
	Size         int
	Status       Status
	CompanyID    *int64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// DeletedCylinder is the archived snapshot of a cylinder taken when it left
// the active inventory.
type DeletedCylinder struct {
	SerialNumber string
	GasType      string
	Size         int
	Status       Status
	DeletedBy    uuid.UUID
	DeletedAt    time.Time
}

type ListFilter struct {
	Status    *Status
	GasType   string
	CompanyID *int64
}
