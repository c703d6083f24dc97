package enums

import "fmt"

// TenderMethod describes the payment instrument used to settle a bill.
type TenderMethod string

const (
	TenderMethodCash TenderMethod = "cash"
	TenderMethodCard TenderMethod = "card"
	TenderMethodUPI  TenderMethod = "upi"
	TenderMethodDue  TenderMethod = "due"
	// TenderMethodOthers covers a mixed split across cash/card/upi/due.
	TenderMethodOthers TenderMethod = "others"
)

var validTenderMethods = []TenderMethod{
	TenderMethodCash,
	TenderMethodCard,
	TenderMethodUPI,
	TenderMethodDue,
	TenderMethodOthers,
}

// String implements fmt.Stringer.
func (m TenderMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known TenderMethod.
func (m TenderMethod) IsValid() bool {
	for _, candidate := range validTenderMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsSingleTender reports whether the method settles through exactly one
// house account.
func (m TenderMethod) IsSingleTender() bool {
	switch m {
	case TenderMethodCash, TenderMethodCard, TenderMethodUPI:
		return true
	default:
		return false
	}
}

// ParseTenderMethod converts raw input into a TenderMethod.
func ParseTenderMethod(value string) (TenderMethod, error) {
	for _, candidate := range validTenderMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tender method %q", value)
}
