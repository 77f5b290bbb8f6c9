package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voltmart"

// Storefront records delivery pricing, checkout and HTTP activity. A nil or
// zero-value Storefront silently drops observations.
type Storefront struct {
	deliveryQuotes *prometheus.CounterVec
	deliveryFee    *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
	orderTotal     prometheus.Histogram
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	deliveryQuotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_store_fees_total",
		Help:      "Per-store delivery fees computed, by distance source.",
	}, []string{"source"})
	deliveryFee := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "delivery_store_fee",
		Help:      "Per-store delivery fee in currency units.",
		Buckets:   []float64{50, 75, 100, 150, 200, 300, 500, 1000},
	}, []string{"source"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Orders successfully placed at checkout.",
	})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_grand_total",
		Help:      "Grand total of placed orders in currency units.",
		Buckets:   prometheus.ExponentialBuckets(500, 2, 10),
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(deliveryQuotes, deliveryFee, ordersPlaced, orderTotal, requests, requestLatency)
	return &Storefront{
		deliveryQuotes: deliveryQuotes,
		deliveryFee:    deliveryFee,
		ordersPlaced:   ordersPlaced,
		orderTotal:     orderTotal,
		requests:       requests,
		requestLatency: requestLatency,
	}
}

// ObserveStoreFee records one per-store delivery fee.
func (s *Storefront) ObserveStoreFee(source string, fee float64) {
	if s == nil || s.deliveryQuotes == nil {
		return
	}
	label := normalizeLabel(source)
	s.deliveryQuotes.WithLabelValues(label).Inc()
	s.deliveryFee.WithLabelValues(label).Observe(fee)
}

// ObserveOrderPlaced records a completed checkout.
func (s *Storefront) ObserveOrderPlaced(grandTotal float64) {
	if s == nil || s.ordersPlaced == nil {
		return
	}
	s.ordersPlaced.Inc()
	s.orderTotal.Observe(grandTotal)
}

// ObserveRequest records one served HTTP request.
func (s *Storefront) ObserveRequest(method, route string, status int, duration time.Duration) {
	if s == nil || s.requests == nil {
		return
	}
	route = normalizeLabel(route)
	s.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
