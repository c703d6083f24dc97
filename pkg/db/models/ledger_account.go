package models

import (
	"time"

	"github.com/dineflow/dineflow-backend/pkg/enums"
)

// LedgerAccount is a posting target: either a fixed house account (cash,
// card, upi, sales) seeded by migration, or a per-customer receivable
// ledger created the first time that customer takes a due.
type LedgerAccount struct {
	ID         string                  `gorm:"column:id;primaryKey"`
	TenantCode string                  `gorm:"column:tenant_code;not null;index"`
	Kind       enums.LedgerAccountKind `gorm:"column:kind;not null"`
	Name       string                  `gorm:"column:name;not null"`
	Contact    string                  `gorm:"column:contact;index"`
	CustomerID string                  `gorm:"column:customer_id;index"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
