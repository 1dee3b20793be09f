package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
)

const dateLayout = "2006-01-02"

// PaymentDTO exposes payment data in API responses. The original amount and
// currency appear only for payments received in a foreign denomination.
type PaymentDTO struct {
	ID               uuid.UUID           `json:"id"`
	ClientID         uuid.UUID           `json:"client_id"`
	ProjectID        *uuid.UUID          `json:"project_id,omitempty"`
	Date             string              `json:"date"`
	Amount           decimal.Decimal     `json:"amount"`
	OriginalAmount   *decimal.Decimal    `json:"original_amount,omitempty"`
	OriginalCurrency *enums.Currency     `json:"original_currency,omitempty"`
	Method           enums.PaymentMethod `json:"method"`
	CreatedAt        time.Time           `json:"created_at"`
}

// FromModel maps the persisted payment into a DTO.
func FromModel(m *models.Payment) *PaymentDTO {
	if m == nil {
		return nil
	}
	return &PaymentDTO{
		ID:               m.ID,
		ClientID:         m.ClientID,
		ProjectID:        m.ProjectID,
		Date:             m.Date.Format(dateLayout),
		Amount:           m.Amount,
		OriginalAmount:   m.OriginalAmount,
		OriginalCurrency: m.OriginalCurrency,
		Method:           m.Method,
		CreatedAt:        m.CreatedAt,
	}
}

// FromModels maps a slice of payments into DTOs.
func FromModels(ms []models.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
