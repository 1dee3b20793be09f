package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// SubscriptionDTO exposes subscription data in API responses. Status is
// derived from the expiration date at render time, never stored.
type SubscriptionDTO struct {
	ID             uuid.UUID       `json:"id"`
	ClientID       uuid.UUID       `json:"client_id"`
	PanelID        uuid.UUID       `json:"panel_id"`
	Service        string          `json:"service"`
	StartDate      string          `json:"start_date"`
	ExpirationDate string          `json:"expiration_date"`
	Price          decimal.Decimal `json:"price"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FromModel maps the persisted subscription into a DTO, deriving status
// against today.
func FromModel(m *models.Subscription, today time.Time) *SubscriptionDTO {
	if m == nil {
		return nil
	}
	status := "expired"
	if m.IsActive(today) {
		status = "active"
	}
	return &SubscriptionDTO{
		ID:             m.ID,
		ClientID:       m.ClientID,
		PanelID:        m.PanelID,
		Service:        m.Service,
		StartDate:      m.StartDate.Format(dateLayout),
		ExpirationDate: m.ExpirationDate.Format(dateLayout),
		Price:          m.Price,
		Status:         status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromModels maps a slice of subscriptions into DTOs.
func FromModels(ms []models.Subscription, today time.Time) []SubscriptionDTO {
	dtos := make([]SubscriptionDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i], today))
	}
	return dtos
}
