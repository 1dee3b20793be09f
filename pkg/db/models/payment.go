package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// Payment records money received from a client. Amount is normalized to USD;
// OriginalAmount/OriginalCurrency keep the as-received pair when the payment
// was foreign-denominated. Payments are immutable once recorded, deletion
// excepted.
type Payment struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	ClientID         uuid.UUID           `gorm:"column:client_id;type:uuid;not null;index"`
	ProjectID        *uuid.UUID          `gorm:"column:project_id;type:uuid;index"`
	Date             time.Time           `gorm:"column:date;type:date;not null;index"`
	Amount           decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	OriginalAmount   *decimal.Decimal    `gorm:"column:original_amount;type:numeric(14,2)"`
	OriginalCurrency *enums.Currency     `gorm:"column:original_currency"`
	Method           enums.PaymentMethod `gorm:"column:method;not null;default:'other'"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
}
