package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Render outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeFetchFailure = "fetch_failure"
	OutcomeShapeFailure = "shape_failure"
)

// Metrics holds the collectors shared by the API and the dashboard.
type Metrics struct {
	Renders          *prometheus.CounterVec
	Snapshots        prometheus.Counter
	ExternalFailures prometheus.Counter
	UsageEvents      *prometheus.CounterVec
	ResourceUsage    *prometheus.GaugeVec
	LiveCharts       *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_renders_total",
				Help: "Dashboard render passes by outcome",
			},
			[]string{"outcome"},
		),
		Snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sustainability_context_snapshots_total",
			Help: "Sustainability context snapshots served",
		}),
		ExternalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "external_carbon_failures_total",
			Help: "Failed external carbon estimate lookups",
		}),
		UsageEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resource_usage_events_total",
				Help: "Usage requests by result",
			},
			[]string{"result"},
		),
		ResourceUsage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "resource_usage_percent",
				Help: "Current usage percentage per resource",
			},
			[]string{"resource", "renewable"},
		),
		LiveCharts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dashboard_live_chart_instances",
				Help: "Live chart instances per slot",
			},
			[]string{"slot"},
		),
	}

	reg.MustRegister(m.Renders, m.Snapshots, m.ExternalFailures, m.UsageEvents, m.ResourceUsage, m.LiveCharts)
	return m
}
