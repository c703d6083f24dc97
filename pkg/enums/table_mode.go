package enums

import "fmt"

// TableMode selects which price variant and tax treatment an order line gets.
type TableMode string

const (
	TableModeDineIn   TableMode = "dine_in"
	TableModeAC       TableMode = "ac"
	TableModeTakeaway TableMode = "takeaway"
	TableModeDelivery TableMode = "delivery"
)

var validTableModes = []TableMode{
	TableModeDineIn,
	TableModeAC,
	TableModeTakeaway,
	TableModeDelivery,
}

// String implements fmt.Stringer.
func (m TableMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known TableMode.
func (m TableMode) IsValid() bool {
	for _, candidate := range validTableModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// UsesParcelRate reports whether the mode charges the parcel price variant.
func (m TableMode) UsesParcelRate() bool {
	return m == TableModeTakeaway || m == TableModeDelivery
}

// OccupiesTable reports whether the mode ties up a physical dining table.
func (m TableMode) OccupiesTable() bool {
	return m == TableModeDineIn || m == TableModeAC
}

// ParseTableMode converts raw input into a TableMode.
func ParseTableMode(value string) (TableMode, error) {
	for _, candidate := range validTableModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid table mode %q", value)
}
