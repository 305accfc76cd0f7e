package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Order placement attempts by result",
		},
		[]string{"result"},
	)

	ticketsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_reserved_total",
			Help: "Ticket units taken from inventory by committed orders",
		},
	)

	jobsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_submitted_total",
			Help: "Background jobs submitted after order commit",
		},
		[]string{"job", "status"},
	)

	notificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_attempts_total",
			Help: "Mail transport attempts by result",
		},
		[]string{"result"},
	)

	notificationDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_deliveries_total",
			Help: "Order confirmation jobs by final outcome",
		},
		[]string{"outcome"},
	)
)

// Order placement results.
const (
	ResultSuccess      = "success"
	ResultInsufficient = "insufficient_inventory"
	ResultAborted      = "aborted"
	ResultRejected     = "rejected"
	ResultError        = "error"
)

func TrackOrder(result string, quantity int) {
	ordersPlaced.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		ticketsReserved.Add(float64(quantity))
	}
}

func TrackJobSubmitted(job string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	jobsSubmitted.WithLabelValues(job, status).Inc()
}

func TrackNotificationAttempt(result string) {
	notificationAttempts.WithLabelValues(result).Inc()
}

func TrackNotificationOutcome(outcome string) {
	notificationDeliveries.WithLabelValues(outcome).Inc()
}
