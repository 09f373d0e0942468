package cylinder

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
)

type cylinderResponse struct {
	SerialNumber string          `json:"serialNumber"`
	GasType      string          `json:"gasType"`
	Size         int             `json:"size"`
	Status       cylinder.Status `json:"status"`
	CompanyID    *int64          `json:"companyId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

func toResponse(c *cylinder.Cylinder) cylinderResponse {
	return cylinderResponse{
		SerialNumber: c.SerialNumber,
		GasType:      c.GasType,
		Size:         c.Size,
		Status:       c.Status,
		CompanyID:    c.CompanyID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toResponseList(cs []*cylinder.Cylinder) []cylinderResponse {
	resp := make([]cylinderResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}

type archivedResponse struct {
	SerialNumber string          `json:"serialNumber"`
	GasType      string          `json:"gasType"`
	Size         int             `json:"size"`
	Status       cylinder.Status `json:"status"`
	DeletedBy    uuid.UUID       `json:"deletedBy"`
	DeletedAt    time.Time       `json:"deletedAt"`
}

func toArchivedResponse(d *cylinder.DeletedCylinder) archivedResponse {
	return archivedResponse{
		SerialNumber: d.SerialNumber,
		GasType:      d.GasType,
		Size:         d.Size,
		Status:       d.Status,
		DeletedBy:    d.DeletedBy,
		DeletedAt:    d.DeletedAt,
	}
}
