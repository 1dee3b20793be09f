package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
)

// ClientDTO exposes client data in API responses.
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	WhatsApp  string    `json:"whatsapp"`
	Country   *string   `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps the persisted client into a DTO.
func FromModel(m *models.Client) *ClientDTO {
	if m == nil {
		return nil
	}
	return &ClientDTO{
		ID:        m.ID,
		Name:      m.Name,
		WhatsApp:  m.WhatsApp,
		Country:   m.Country,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of clients into DTOs.
func FromModels(ms []models.Client) []ClientDTO {
	dtos := make([]ClientDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
