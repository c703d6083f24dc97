package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSplit records how a tax rate divides into its CGST and SGST halves for
// intra-state sales. The shares must sum to the rate; ingestion validates
// this instead of trusting master data.
type TaxSplit struct {
	TaxID         string          `gorm:"column:tax_id;primaryKey"`
	TenantCode    string          `gorm:"column:tenant_code;not null;index"`
	TaxPercentage decimal.Decimal `gorm:"column:tax_percentage;type:numeric(6,3);not null"`
	CGSTShare     decimal.Decimal `gorm:"column:cgst_share;type:numeric(6,3);not null"`
	SGSTShare     decimal.Decimal `gorm:"column:sgst_share;type:numeric(6,3);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
