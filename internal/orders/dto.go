package orders

import (
	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// LineInput is one requested cart line. Pricing and tax are resolved from
// the menu item at placement time, never taken from the caller.
type LineInput struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Qty        int    `json:"qty" validate:"required,gt=0"`
}

// PlaceOrderInput captures one placement request. For dine-in and AC the
// table id names a dining table row; takeaway and delivery pass a caller
// chosen sentinel id that is never occupied. OrderMasterID names an
// already open order to append the lines to, regardless of mode.
type PlaceOrderInput struct {
	TableID       string          `json:"table_id" validate:"required"`
	Mode          enums.TableMode `json:"mode" validate:"required"`
	OrderMasterID string          `json:"order_master_id"`
	Lines         []LineInput     `json:"lines"`
}

// PlacedOrder is the placement result. Reused is set when the lines were
// appended to an already running order instead of opening a new one.
type PlacedOrder struct {
	Order     *models.OrderMaster `json:"order"`
	Lines     []models.OrderLine  `json:"lines"`
	KOTNumber int                 `json:"kot_number"`
	Reused    bool                `json:"reused"`
}

// Totals is the aggregate of an order's line decompositions. Settlement
// consumes it directly; nothing is ever recomputed from rates at bill time.
type Totals struct {
	OrderAmt     decimal.Decimal `json:"order_amt"`
	TaxAmt       decimal.Decimal `json:"tax_amt"`
	SGST         decimal.Decimal `json:"sgst"`
	CGST         decimal.Decimal `json:"cgst"`
	IGST         decimal.Decimal `json:"igst"`
	Cess         decimal.Decimal `json:"cess"`
	CessSpecific decimal.Decimal `json:"cess_specific"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// OrderView is the read model for a running order.
type OrderView struct {
	Order  *models.OrderMaster `json:"order"`
	Lines  []models.OrderLine  `json:"lines"`
	Totals Totals              `json:"totals"`
}

// AggregateLines sums the stored decompositions of a line set.
func AggregateLines(lines []models.OrderLine) Totals {
	t := Totals{
		OrderAmt:     decimal.Zero,
		TaxAmt:       decimal.Zero,
		SGST:         decimal.Zero,
		CGST:         decimal.Zero,
		IGST:         decimal.Zero,
		Cess:         decimal.Zero,
		CessSpecific: decimal.Zero,
		GrandTotal:   decimal.Zero,
	}
	for _, line := range lines {
		t.OrderAmt = t.OrderAmt.Add(line.Rate.Mul(decimal.NewFromInt(int64(line.Qty))))
		t.TaxAmt = t.TaxAmt.Add(line.TaxAmount)
		t.SGST = t.SGST.Add(line.SGST)
		t.CGST = t.CGST.Add(line.CGST)
		t.IGST = t.IGST.Add(line.IGST)
		t.Cess = t.Cess.Add(line.CessAmount)
		t.CessSpecific = t.CessSpecific.Add(line.CessSpecificTotal)
		t.GrandTotal = t.GrandTotal.Add(line.GrandTotal)
	}
	return t
}
