package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerPosting is one leg of a settlement's double-entry batch. AmountIn
// is value flowing into the account, AmountOut value flowing out; each
// batch persisted for a bill balances to zero.
type LedgerPosting struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantCode      string          `gorm:"column:tenant_code;not null;index"`
	LedgerAccountID string          `gorm:"column:ledger_account_id;not null;index"`
	BillNo          string          `gorm:"column:bill_no;not null;index"`
	Purpose         string          `gorm:"column:purpose;not null"`
	AmountIn        decimal.Decimal `gorm:"column:amount_in;type:numeric(12,4);not null"`
	AmountOut       decimal.Decimal `gorm:"column:amount_out;type:numeric(12,4);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
