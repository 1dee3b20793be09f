package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"
)

// CycleDays is the fixed billing cycle length. Expirations are always
// start/renewal anchored plus this many days, never calendar months.
const CycleDays = 30

// Subscription is a client's time-boxed access to a service through a panel.
type Subscription struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ClientID       uuid.UUID       `gorm:"column:client_id;type:uuid;not null;index"`
	PanelID        uuid.UUID       `gorm:"column:panel_id;type:uuid;not null;index"`
	Service        string          `gorm:"column:service;not null"`
	StartDate      time.Time       `gorm:"column:start_date;type:date;not null"`
	ExpirationDate time.Time       `gorm:"column:expiration_date;type:date;not null"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IsActive derives the subscription status from its expiration date. Status
// is observed, not stored: a subscription is active until the day after it
// expires (the expiration date itself still counts as active).
func (s Subscription) IsActive(today time.Time) bool {
	return !s.ExpirationDate.Before(DateOnly(today))
}

// DateOnly strips the clock from a timestamp, keeping the UTC calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
