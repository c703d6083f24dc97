package tax

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// GSTInput carries one price through the GST decomposition. When Inclusive
// is set, Amount is the tax-inclusive selling price and the base is
// recovered by reversal; otherwise Amount is already the base price.
type GSTInput struct {
	Amount    decimal.Decimal
	GSTRate   decimal.Decimal
	CGSTRate  decimal.Decimal
	SGSTRate  decimal.Decimal
	Inclusive bool
	Precision int32
}

// GSTCessInput extends GSTInput with the cess levies of inventory items.
// CessSpecific is a fixed per-unit surcharge that sits outside the
// percentage base; CessRate is charged on the same base as GST.
type GSTCessInput struct {
	GSTInput
	CessRate     decimal.Decimal
	CessSpecific decimal.Decimal
}

// Breakdown is the decomposed price. IGST always carries the full GST
// amount so inter-state finalization never recomputes; TotalPrice is the
// sum of the rounded components, keeping the reassembly identity exact.
type Breakdown struct {
	BasePrice    decimal.Decimal
	GSTAmount    decimal.Decimal
	CessAmount   decimal.Decimal
	CessSpecific decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
	TotalPrice   decimal.Decimal
}

// Round applies half-up monetary rounding at the given precision.
func Round(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}

// ComputeGST decomposes a price into base and GST components.
func ComputeGST(in GSTInput) Breakdown {
	base := in.Amount
	if in.Inclusive {
		base = in.Amount.Div(one.Add(in.GSTRate.Div(hundred)))
	}

	gst := Round(base.Mul(in.GSTRate).Div(hundred), in.Precision)
	cgst := Round(base.Mul(in.CGSTRate).Div(hundred), in.Precision)
	sgst := Round(base.Mul(in.SGSTRate).Div(hundred), in.Precision)
	base = Round(base, in.Precision)

	return Breakdown{
		BasePrice:    base,
		GSTAmount:    gst,
		CessAmount:   decimal.Zero,
		CessSpecific: decimal.Zero,
		CGST:         cgst,
		SGST:         sgst,
		IGST:         gst,
		TotalPrice:   base.Add(gst),
	}
}

// ComputeGSTWithCess decomposes a price that carries cess on top of GST.
// The specific cess is peeled off first, then the combined GST+cess rate
// is reversed to recover the base.
func ComputeGSTWithCess(in GSTCessInput) Breakdown {
	base := in.Amount
	if in.Inclusive {
		combined := in.GSTRate.Add(in.CessRate)
		base = in.Amount.Sub(in.CessSpecific).Div(one.Add(combined.Div(hundred)))
	}

	gst := Round(base.Mul(in.GSTRate).Div(hundred), in.Precision)
	cess := Round(base.Mul(in.CessRate).Div(hundred), in.Precision)
	cgst := Round(base.Mul(in.CGSTRate).Div(hundred), in.Precision)
	sgst := Round(base.Mul(in.SGSTRate).Div(hundred), in.Precision)
	specific := Round(in.CessSpecific, in.Precision)
	base = Round(base, in.Precision)

	return Breakdown{
		BasePrice:    base,
		GSTAmount:    gst,
		CessAmount:   cess,
		CessSpecific: specific,
		CGST:         cgst,
		SGST:         sgst,
		IGST:         gst,
		TotalPrice:   base.Add(gst).Add(cess).Add(specific),
	}
}

// ZeroIntraState clears the CGST/SGST halves, leaving IGST to represent
// the full tax. Used for delivery lines and inter-state sales.
func (b Breakdown) ZeroIntraState() Breakdown {
	b.CGST = decimal.Zero
	b.SGST = decimal.Zero
	return b
}
