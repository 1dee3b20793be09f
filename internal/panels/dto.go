package panels

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
)

// PanelDTO exposes panel data in API responses.
type PanelDTO struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	TotalCapacity     int               `json:"total_capacity"`
	UsedCapacity      int               `json:"used_capacity"`
	AvailableCapacity int               `json:"available_capacity"`
	MonthlyCost       decimal.Decimal   `json:"monthly_cost"`
	Status            enums.PanelStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// FromModel maps the persisted panel into a DTO.
func FromModel(m *models.Panel) *PanelDTO {
	if m == nil {
		return nil
	}
	return &PanelDTO{
		ID:                m.ID,
		Name:              m.Name,
		TotalCapacity:     m.TotalCapacity,
		UsedCapacity:      m.UsedCapacity,
		AvailableCapacity: m.AvailableCapacity(),
		MonthlyCost:       m.MonthlyCost,
		Status:            m.Status,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromModels maps a slice of panels into DTOs.
func FromModels(ms []models.Panel) []PanelDTO {
	dtos := make([]PanelDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
