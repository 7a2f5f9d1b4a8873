package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tessera_tickets_issued_total",
			Help: "Tickets issued through successful reservations",
		},
	)

	ticketsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tessera_tickets_released_total",
			Help: "Tickets released (cancelled/deleted) with inventory returned",
		},
	)

	reservationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tessera_reservations_rejected_total",
			Help: "Reservations rejected before issuing, by reason",
		},
		[]string{"reason"},
	)
)

func TicketIssued()   { ticketsIssued.Inc() }
func TicketReleased() { ticketsReleased.Inc() }

func ReservationRejected(reason string) {
	reservationsRejected.WithLabelValues(reason).Inc()
}
