package models

import (
	"time"

	"github.com/dineflow/dineflow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Bill is the settlement record for one OrderMaster. Created exactly once;
// corrections run through a re-bill flow that reuses the bill number.
type Bill struct {
	BillNo        string           `gorm:"column:bill_no;primaryKey"`
	TenantCode    string           `gorm:"column:tenant_code;not null;index"`
	Series        enums.BillSeries `gorm:"column:series;not null"`
	OrderMasterID string           `gorm:"column:order_master_id;not null;uniqueIndex"`
	CustomerID    string           `gorm:"column:customer_id;not null"`
	OrderAmt      decimal.Decimal  `gorm:"column:order_amt;type:numeric(12,4);not null"`
	TaxAmt        decimal.Decimal  `gorm:"column:tax_amt;type:numeric(12,4);not null"`
	Cess          decimal.Decimal  `gorm:"column:cess;type:numeric(12,4);not null"`
	CessSpecific  decimal.Decimal  `gorm:"column:cess_specific;type:numeric(12,4);not null"`
	GrandTotal    decimal.Decimal  `gorm:"column:grand_total;type:numeric(12,4);not null"`
	Cash          decimal.Decimal  `gorm:"column:cash;type:numeric(12,4);not null"`
	Card          decimal.Decimal  `gorm:"column:card;type:numeric(12,4);not null"`
	UPI           decimal.Decimal  `gorm:"column:upi;type:numeric(12,4);not null"`
	Due           decimal.Decimal  `gorm:"column:due;type:numeric(12,4);not null"`
	ReceivedAmt   decimal.Decimal  `gorm:"column:received_amt;type:numeric(12,4);not null"`
	ChangeAmt     decimal.Decimal  `gorm:"column:change_amt;type:numeric(12,4);not null"`
	PendingAmt    decimal.Decimal  `gorm:"column:pending_amt;type:numeric(12,4);not null"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
