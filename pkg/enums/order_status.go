package enums

// OrderStatus tracks the single allowed transition running -> completed.
type OrderStatus string

const (
	OrderStatusRunning   OrderStatus = "running"
	OrderStatusCompleted OrderStatus = "completed"
)

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusRunning || s == OrderStatusCompleted
}
