package metrics

import "github.com/prometheus/client_golang/prometheus"

// SalesMetrics expone contadores del flujo de checkout
type SalesMetrics struct {
	CheckoutsCommitted prometheus.Counter
	StockRejections    prometheus.Counter
	Compensations      prometheus.Counter
}

// NewSalesMetrics crea y registra los contadores en el registry dado
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	m := &SalesMetrics{
		CheckoutsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_checkouts_committed_total",
			Help: "Checkouts que terminaron en venta comprometida",
		}),
		StockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_checkouts_insufficient_stock_total",
			Help: "Checkouts rechazados por stock insuficiente",
		}),
		Compensations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_checkout_compensations_total",
			Help: "Descuentos de stock revertidos por falla al registrar la venta",
		}),
	}
	reg.MustRegister(m.CheckoutsCommitted, m.StockRejections, m.Compensations)
	return m
}
