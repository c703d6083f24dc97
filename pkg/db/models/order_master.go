package models

import (
	"time"

	"github.com/dineflow/dineflow-backend/pkg/enums"
)

// OrderMaster is the running order for a table (or a takeaway/delivery
// flow). At most one running order may exist per dine-in table; the partial
// unique index in the schema enforces it.
type OrderMaster struct {
	ID         string            `gorm:"column:id;primaryKey"`
	TenantCode string            `gorm:"column:tenant_code;not null;index"`
	TableID    string            `gorm:"column:table_id;not null;index"`
	Mode       enums.TableMode   `gorm:"column:mode;not null"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'running'"`
	KOTNumber  int               `gorm:"column:kot_number;not null"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
