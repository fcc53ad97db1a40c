package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Renders.WithLabelValues(OutcomeOK).Inc()
	m.Renders.WithLabelValues(OutcomeFetchFailure).Add(2)
	m.ResourceUsage.WithLabelValues("Coal Power Plant", "false").Set(90)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues(OutcomeOK)), 0.0001)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.Renders.WithLabelValues(OutcomeFetchFailure)), 0.0001)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["dashboard_renders_total"])
	assert.True(t, names["resource_usage_percent"])
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
