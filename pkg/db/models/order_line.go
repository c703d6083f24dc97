package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine snapshots one cart line with its full tax decomposition.
// ActualRate is the price variant selected by table mode; Rate is the base
// unit price after inclusive-tax reversal. All amount fields are line
// totals (unit component scaled by quantity). Lines are append-only until
// the order is billed.
type OrderLine struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderMasterID     string          `gorm:"column:order_master_id;not null;index"`
	MenuItemID        string          `gorm:"column:menu_item_id;not null"`
	Qty               int             `gorm:"column:qty;not null"`
	ActualRate        decimal.Decimal `gorm:"column:actual_rate;type:numeric(12,4);not null"`
	Rate              decimal.Decimal `gorm:"column:rate;type:numeric(12,4);not null"`
	TaxAmount         decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,4);not null"`
	SGST              decimal.Decimal `gorm:"column:sgst;type:numeric(12,4);not null"`
	CGST              decimal.Decimal `gorm:"column:cgst;type:numeric(12,4);not null"`
	IGST              decimal.Decimal `gorm:"column:igst;type:numeric(12,4);not null"`
	CessAmount        decimal.Decimal `gorm:"column:cess_amount;type:numeric(12,4);not null"`
	CessSpecificTotal decimal.Decimal `gorm:"column:cess_specific_total;type:numeric(12,4);not null"`
	GrandTotal        decimal.Decimal `gorm:"column:grand_total;type:numeric(12,4);not null"`
	KOTNumber         int             `gorm:"column:kot_number;not null"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
}
