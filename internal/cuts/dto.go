package cuts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// CutDTO exposes a saved weekly cut in API responses, with the stored
// breakdown decoded.
type CutDTO struct {
	ID              uuid.UUID          `json:"id"`
	WindowStart     string             `json:"window_start"`
	WindowEnd       string             `json:"window_end"`
	TotalIncome     decimal.Decimal    `json:"total_income"`
	TotalCommission decimal.Decimal    `json:"total_commission"`
	TotalPayable    decimal.Decimal    `json:"total_payable"`
	TotalExpenses   decimal.Decimal    `json:"total_expenses"`
	NetProfit       decimal.Decimal    `json:"net_profit"`
	Details         []models.CutDetail `json:"details"`
	Notes           *string            `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// PreviewDTO exposes an unsaved computation.
type PreviewDTO struct {
	WindowStart     string             `json:"window_start"`
	WindowEnd       string             `json:"window_end"`
	TotalIncome     decimal.Decimal    `json:"total_income"`
	TotalCommission decimal.Decimal    `json:"total_commission"`
	TotalPayable    decimal.Decimal    `json:"total_payable"`
	TotalExpenses   decimal.Decimal    `json:"total_expenses"`
	NetProfit       decimal.Decimal    `json:"net_profit"`
	Details         []models.CutDetail `json:"details"`
}

// FromModel maps the persisted cut into a DTO.
func FromModel(m *models.WeeklyCut) (*CutDTO, error) {
	if m == nil {
		return nil, nil
	}
	details, err := m.DecodeDetails()
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []models.CutDetail{}
	}
	return &CutDTO{
		ID:              m.ID,
		WindowStart:     m.WindowStart.Format(dateLayout),
		WindowEnd:       m.WindowEnd.Format(dateLayout),
		TotalIncome:     m.TotalIncome,
		TotalCommission: m.TotalCommission,
		TotalPayable:    m.TotalPayable,
		TotalExpenses:   m.TotalExpenses,
		NetProfit:       m.NetProfit,
		Details:         details,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
	}, nil
}

// FromModels maps a slice of cuts into DTOs.
func FromModels(ms []models.WeeklyCut) ([]CutDTO, error) {
	dtos := make([]CutDTO, 0, len(ms))
	for i := range ms {
		dto, err := FromModel(&ms[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// FromComputation maps an unsaved computation into a preview DTO.
func FromComputation(c *Computation) *PreviewDTO {
	if c == nil {
		return nil
	}
	details := c.Details
	if details == nil {
		details = []models.CutDetail{}
	}
	return &PreviewDTO{
		WindowStart:     c.WindowStart.Format(dateLayout),
		WindowEnd:       c.WindowEnd.Format(dateLayout),
		TotalIncome:     c.TotalIncome,
		TotalCommission: c.TotalCommission,
		TotalPayable:    c.TotalPayable,
		TotalExpenses:   c.TotalExpenses,
		NetProfit:       c.NetProfit,
		Details:         details,
	}
}
