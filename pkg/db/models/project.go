package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"
)

// Project is an upstream account whose payments are shared with its owner.
// CommissionPct (0-100) is the share the operator keeps.
type Project struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	Owner         string          `gorm:"column:owner;not null"`
	Country       *string         `gorm:"column:country"`
	CommissionPct decimal.Decimal `gorm:"column:commission_pct;type:numeric(5,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
