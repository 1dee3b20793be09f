package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"
)

// WeeklyCut is an immutable snapshot of one Friday-to-Thursday
// reconciliation window. Totals are frozen at save time and never
// recomputed; the only mutation allowed afterwards is deletion.
type WeeklyCut struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	WindowStart     time.Time       `gorm:"column:window_start;type:date;not null;index"`
	WindowEnd       time.Time       `gorm:"column:window_end;type:date;not null"`
	TotalIncome     decimal.Decimal `gorm:"column:total_income;type:numeric(12,2);not null"`
	TotalCommission decimal.Decimal `gorm:"column:total_commission;type:numeric(12,2);not null"`
	TotalPayable    decimal.Decimal `gorm:"column:total_payable;type:numeric(12,2);not null"`
	TotalExpenses   decimal.Decimal `gorm:"column:total_expenses;type:numeric(12,2);not null"`
	NetProfit       decimal.Decimal `gorm:"column:net_profit;type:numeric(12,2);not null"`
	Details         json.RawMessage `gorm:"column:details;type:jsonb;not null"`
	Notes           *string         `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// CutDetail is one per-project line of a weekly cut's breakdown.
// A nil ProjectID marks the unassigned bucket (payments with no project),
// which the operator keeps in full.
type CutDetail struct {
	ProjectID     *uuid.UUID      `json:"project_id"`
	Name          string          `json:"name"`
	Owner         string          `json:"owner"`
	Country       *string         `json:"country,omitempty"`
	PaymentCount  int             `json:"payment_count"`
	Total         decimal.Decimal `json:"total"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	Commission    decimal.Decimal `json:"commission"`
	Payable       decimal.Decimal `json:"payable"`
}

// DecodeDetails parses the stored breakdown.
func (c WeeklyCut) DecodeDetails() ([]CutDetail, error) {
	if len(c.Details) == 0 {
		return nil, nil
	}
	var details []CutDetail
	if err := json.Unmarshal(c.Details, &details); err != nil {
		return nil, err
	}
	return details, nil
}
