package enums

// BillSeries selects the numbering series a settled bill draws from.
// Underpaid or due-tendered settlements number in the DUE series.
type BillSeries string

const (
	BillSeriesBill BillSeries = "BILL"
	BillSeriesDue  BillSeries = "DUE"
)

// String implements fmt.Stringer.
func (s BillSeries) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BillSeries.
func (s BillSeries) IsValid() bool {
	return s == BillSeriesBill || s == BillSeriesDue
}
