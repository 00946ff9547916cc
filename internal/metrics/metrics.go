package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teeslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teeslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teeslot_bookings_total",
			Help: "Total number of fitting bookings",
		},
		[]string{"status", "service_type"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teeslot_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	AvailabilityRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teeslot_availability_requests_total",
			Help: "Total number of day-availability lookups",
		},
	)

	AutoAdvanceHops = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "teeslot_auto_advance_hops",
			Help:    "Number of dates skipped before an open date was found",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 15},
		},
	)

	SlotHoldsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teeslot_slot_holds_total",
			Help: "Total number of slot holds placed",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teeslot_notifications_total",
			Help: "Total number of notifications processed",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "teeslot_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	CustomerLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teeslot_customer_lookups_total",
			Help: "Total number of customer lookups by phone",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status, serviceType string) {
	BookingsTotal.WithLabelValues(status, serviceType).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordAutoAdvance(hops int) {
	AvailabilityRequestsTotal.Inc()
	AutoAdvanceHops.Observe(float64(hops))
}

func RecordNotification(notifType, status string) {
	NotificationsTotal.WithLabelValues(notifType, status).Inc()
}

func RecordCustomerLookup(found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	CustomerLookupsTotal.WithLabelValues(result).Inc()
}
