package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingsTotal.WithLabelValues("success"))
	IncBooking("success")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingsTotal.WithLabelValues("success")))

	before = testutil.ToFloat64(bookedHours.WithLabelValues("ev"))
	AddBookedHours("ev", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(bookedHours.WithLabelValues("ev")))

	before = testutil.ToFloat64(releasesTotal.WithLabelValues("not_found"))
	IncRelease("not_found")
	assert.Equal(t, before+1, testutil.ToFloat64(releasesTotal.WithLabelValues("not_found")))
}
