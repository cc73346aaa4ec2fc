package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

const metricsNamespace = "quickprint"

// Status change triggers
const (
	TriggerExplicit = "explicit"
	TriggerFanIn    = "fan_in"
)

// Metrics holds the order domain collectors
type Metrics struct {
	OrdersCreated        prometheus.Counter
	OrderAmount          prometheus.Counter
	OrderStatusChanges   *prometheus.CounterVec
	ItemStatusChanges    *prometheus.CounterVec
	PageCountFallbacks   prometheus.Counter
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDurations *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "orders_created_total",
			Help:      "Number of print orders created.",
		}),
		OrderAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "order_amount_total",
			Help:      "Sum of the total amount of created orders.",
		}),
		OrderStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "order_status_changes_total",
			Help:      "Order status transitions by target status and trigger.",
		}, []string{"status", "trigger"}),
		ItemStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "item_status_changes_total",
			Help:      "Order item status updates by target status.",
		}, []string{"status"}),
		PageCountFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "page_count_fallbacks_total",
			Help:      "Uploads whose page count could not be read and defaulted to 1.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.OrdersCreated,
			m.OrderAmount,
			m.OrderStatusChanges,
			m.ItemStatusChanges,
			m.PageCountFallbacks,
			m.HTTPRequests,
			m.HTTPRequestDurations,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

func (m *Metrics) orderCreated(total decimal.Decimal) {
	m.OrdersCreated.Inc()
	m.OrderAmount.Add(total.InexactFloat64())
}

func (m *Metrics) orderStatusChanged(status, trigger string) {
	m.OrderStatusChanges.WithLabelValues(status, trigger).Inc()
}

var metricsInstance = NewMetrics(nil)

// GetMetrics returns the shared metrics instance
func GetMetrics() *Metrics {
	return metricsInstance
}

// SetMetrics replaces the shared metrics instance
func SetMetrics(m *Metrics) {
	metricsInstance = m
}
