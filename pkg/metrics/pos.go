package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records the volume side of the order/billing pipeline.
type POSMetrics struct {
	ordersPlaced  *prometheus.CounterVec
	kotsIssued    prometheus.Counter
	billsSettled  *prometheus.CounterVec
	postingLegs   prometheus.Histogram
	placementErrs *prometheus.CounterVec
}

// NewPOSMetrics registers the POS metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed or amended, labeled by table mode.",
	}, []string{"mode"})
	kotsIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kots_issued_total",
		Help: "Kitchen order tickets issued.",
	})
	billsSettled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bills_settled_total",
		Help: "Bills settled, labeled by numbering series.",
	}, []string{"series"})
	postingLegs := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_posting_legs",
		Help:    "Number of posting legs generated per settled bill.",
		Buckets: []float64{1, 2, 3, 4, 5, 6},
	})
	placementErrs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_placement_failures_total",
		Help: "Failed order placements, labeled by error code.",
	}, []string{"code"})
	reg.MustRegister(ordersPlaced, kotsIssued, billsSettled, postingLegs, placementErrs)
	return &POSMetrics{
		ordersPlaced:  ordersPlaced,
		kotsIssued:    kotsIssued,
		billsSettled:  billsSettled,
		postingLegs:   postingLegs,
		placementErrs: placementErrs,
	}
}

// IncOrderPlaced counts a successful placement for the given table mode.
func (m *POSMetrics) IncOrderPlaced(mode string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncKOTIssued counts an issued kitchen ticket.
func (m *POSMetrics) IncKOTIssued() {
	if m == nil || m.kotsIssued == nil {
		return
	}
	m.kotsIssued.Inc()
}

// IncBillSettled counts a settled bill for the given numbering series.
func (m *POSMetrics) IncBillSettled(series string) {
	if m == nil || m.billsSettled == nil {
		return
	}
	m.billsSettled.WithLabelValues(normalizeLabel(series)).Inc()
}

// ObservePostingLegs records the size of a posting batch.
func (m *POSMetrics) ObservePostingLegs(count int) {
	if m == nil || m.postingLegs == nil {
		return
	}
	m.postingLegs.Observe(float64(count))
}

// IncPlacementFailure counts a failed placement by error code.
func (m *POSMetrics) IncPlacementFailure(code string) {
	if m == nil || m.placementErrs == nil {
		return
	}
	m.placementErrs.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
