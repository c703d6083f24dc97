package enums

import "fmt"

// VoucherType distinguishes a plain sale from a due-ledger voucher. A DUE
// voucher on a paying tender means an earlier due is being cleared.
type VoucherType string

const (
	VoucherTypeBill VoucherType = "bill"
	VoucherTypeDue  VoucherType = "due"
)

var validVoucherTypes = []VoucherType{
	VoucherTypeBill,
	VoucherTypeDue,
}

// String implements fmt.Stringer.
func (v VoucherType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VoucherType.
func (v VoucherType) IsValid() bool {
	for _, candidate := range validVoucherTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVoucherType converts raw input into a VoucherType.
func ParseVoucherType(value string) (VoucherType, error) {
	for _, candidate := range validVoucherTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid voucher type %q", value)
}
