package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is the price profile an order line snapshots at placement time.
// The three rate variants map to table modes; the cess fields only apply
// when the item is inventory-tracked.
type MenuItem struct {
	ID             string          `gorm:"column:id;primaryKey"`
	TenantCode     string          `gorm:"column:tenant_code;not null;index"`
	Name           string          `gorm:"column:name;not null"`
	DineInRate     decimal.Decimal `gorm:"column:dine_in_rate;type:numeric(12,4);not null"`
	ACRate         decimal.Decimal `gorm:"column:ac_rate;type:numeric(12,4);not null"`
	ParcelRate     decimal.Decimal `gorm:"column:parcel_rate;type:numeric(12,4);not null"`
	TaxID          string          `gorm:"column:tax_id;not null"`
	TaxPercentage  decimal.Decimal `gorm:"column:tax_percentage;type:numeric(6,3);not null"`
	CessPercentage decimal.Decimal `gorm:"column:cess_percentage;type:numeric(6,3);not null;default:0"`
	CessSpecific   decimal.Decimal `gorm:"column:cess_specific;type:numeric(12,4);not null;default:0"`
	IsInventory    bool            `gorm:"column:is_inventory;not null;default:false"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
