package models

import (
	"time"

	"github.com/dineflow/dineflow-backend/pkg/enums"
)

// DiningTable tracks occupancy for dine-in service. Takeaway and delivery
// flows use sentinel table ids and never occupy a row here.
type DiningTable struct {
	ID         string            `gorm:"column:id;primaryKey"`
	TenantCode string            `gorm:"column:tenant_code;not null;index"`
	Label      string            `gorm:"column:label;not null"`
	Status     enums.TableStatus `gorm:"column:status;not null;default:'available'"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
