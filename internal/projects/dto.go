package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
)

// ProjectDTO exposes project data in API responses.
type ProjectDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Owner         string          `json:"owner"`
	Country       *string         `json:"country,omitempty"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FromModel maps the persisted project into a DTO.
func FromModel(m *models.Project) *ProjectDTO {
	if m == nil {
		return nil
	}
	return &ProjectDTO{
		ID:            m.ID,
		Name:          m.Name,
		Owner:         m.Owner,
		Country:       m.Country,
		CommissionPct: m.CommissionPct,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromModels maps a slice of projects into DTOs.
func FromModels(ms []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
