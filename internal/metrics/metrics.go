package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smart_parking",
			Name:      "bookings_total",
			Help:      "Count of booking attempts by result.",
		},
		[]string{"result"},
	)

	releasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smart_parking",
			Name:      "releases_total",
			Help:      "Count of release attempts by result.",
		},
		[]string{"result"},
	)

	bookedHours = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smart_parking",
			Name:      "booked_hours_total",
			Help:      "Hours booked, by slot type.",
		},
		[]string{"slot_type"},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smart_parking",
			Name:      "slot_events_published_total",
			Help:      "Slot events handed to subscribers, by sink and outcome.",
		},
		[]string{"sink", "outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsTotal, releasesTotal, bookedHours, eventsPublished)
	})
}

func IncBooking(result string) {
	bookingsTotal.WithLabelValues(result).Inc()
}

func IncRelease(result string) {
	releasesTotal.WithLabelValues(result).Inc()
}

func AddBookedHours(slotType string, hours int) {
	bookedHours.WithLabelValues(slotType).Add(float64(hours))
}

func IncEventPublished(sink, outcome string) {
	eventsPublished.WithLabelValues(sink, outcome).Inc()
}
