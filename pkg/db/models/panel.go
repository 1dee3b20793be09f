package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// Panel is a capacity-limited resource pool subscriptions are assigned to.
// UsedCapacity is a maintained counter kept in range [0, TotalCapacity] by
// the panels service; it is not recomputed from subscriptions on read.
type Panel struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name          string            `gorm:"column:name;not null"`
	TotalCapacity int               `gorm:"column:total_capacity;not null"`
	UsedCapacity  int               `gorm:"column:used_capacity;not null;default:0"`
	MonthlyCost   decimal.Decimal   `gorm:"column:monthly_cost;type:numeric(12,2);not null"`
	Status        enums.PanelStatus `gorm:"column:status;not null;default:'active'"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// AvailableCapacity never reports a negative slot count.
func (p Panel) AvailableCapacity() int {
	free := p.TotalCapacity - p.UsedCapacity
	if free < 0 {
		return 0
	}
	return free
}
