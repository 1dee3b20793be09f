package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is the person paying for one or more subscriptions.
// LegacyPanelID/LegacyStartDate only carry data for installations that
// predate explicit subscription rows; the startup migration drains them.
type Client struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	WhatsApp string    `gorm:"column:whatsapp;not null"`
	Country  *string   `gorm:"column:country"`

	LegacyPanelID        *uuid.UUID `gorm:"column:panel_id;type:uuid"`
	LegacyStartDate      *time.Time `gorm:"column:start_date;type:date"`
	LegacyExpirationDate *time.Time `gorm:"column:expiration_date;type:date"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
