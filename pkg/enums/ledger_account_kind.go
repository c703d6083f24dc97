package enums

// LedgerAccountKind separates fixed house accounts (cash, card, upi, sales)
// from per-customer receivable ledgers created for due sales.
type LedgerAccountKind string

const (
	LedgerAccountKindHouse    LedgerAccountKind = "house"
	LedgerAccountKindCustomer LedgerAccountKind = "customer"
)

// String implements fmt.Stringer.
func (k LedgerAccountKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known LedgerAccountKind.
func (k LedgerAccountKind) IsValid() bool {
	return k == LedgerAccountKindHouse || k == LedgerAccountKindCustomer
}
