package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { MustRegister(reg) })

	// a second registration of the same collectors must fail
	assert.Panics(t, func() { MustRegister(reg) })
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(TranslationsTotal.WithLabelValues("ok"))
	TranslationsTotal.WithLabelValues("ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(TranslationsTotal.WithLabelValues("ok")))

	reg := prometheus.NewRegistry()
	reg.MustRegister(RateLimitDroppedTotal)
	RateLimitDroppedTotal.Add(0)

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP transkeeper_rate_limit_dropped_total Signup and login attempts rejected by the per-user rate limiter.
# TYPE transkeeper_rate_limit_dropped_total counter
transkeeper_rate_limit_dropped_total 0
`), "transkeeper_rate_limit_dropped_total")
	assert.NoError(t, err)
}
