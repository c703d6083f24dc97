package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TenantContext carries the tenant-level state every core operation needs.
// It replaces an implicit session singleton: tenant code, billing counter
// and rounding precision travel explicitly with each call.
type TenantContext struct {
	TenantCode       string
	CounterID        string
	Precision        int32
	WalkInCustomerID string
}

// Validate rejects a context that would silently misnumber or misround.
func (t TenantContext) Validate() error {
	if t.TenantCode == "" {
		return fmt.Errorf("tenant code is required")
	}
	if t.CounterID == "" {
		return fmt.Errorf("counter id is required")
	}
	switch t.Precision {
	case 2, 3, 4:
	default:
		return fmt.Errorf("rounding precision must be 2, 3 or 4 (got %d)", t.Precision)
	}
	if t.WalkInCustomerID == "" {
		return fmt.Errorf("walk-in customer id is required")
	}
	return nil
}

// Round applies the tenant's half-up monetary rounding.
func (t TenantContext) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(t.Precision)
}
