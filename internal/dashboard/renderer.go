package dashboard

import (
	"context"
	"errors"
	"html/template"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/chart"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
)

// ErrorMessage replaces the loading indicator when a render fails.
const ErrorMessage = "System disconnected. Unable to load sustainability data."

const pageTitle = "Sustainability Dashboard"

// Source supplies one validated snapshot per call.
type Source interface {
	FetchContext(ctx context.Context) (*domain.SustainabilityContext, error)
}

// Page is the view model of one render pass.
type Page struct {
	Title  string
	Loaded bool
	Error  string

	KPIs       KPIs
	MixChart   template.HTML
	UsageChart template.HTML

	Resources []MonitorRow
	Alerts    []string
	Status    StatusBadge

	Impact         ImpactPanel
	External       ImpactPanel
	Recommendation string
}

// Renderer owns the chart slots of one dashboard and runs render passes
// against its source. Only chart replacement is serialized.
type Renderer struct {
	source  Source
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu    sync.Mutex
	mix   *chart.Slot
	usage *chart.Slot
}

// NewRenderer builds a renderer. m may be nil.
func NewRenderer(source Source, m *metrics.Metrics, logger zerolog.Logger) *Renderer {
	return &Renderer{
		source:  source,
		metrics: m,
		log:     logger.With().Str("component", "renderer").Logger(),
		mix:     chart.NewSlot("mix"),
		usage:   chart.NewSlot("usage"),
	}
}

// Render fetches one snapshot and builds the page. It never returns an
// error: failures produce the disconnected page and are logged. The fetch
// runs unlocked so a stalled request only delays its own page.
func (r *Renderer) Render(ctx context.Context) *Page {
	data, err := r.source.FetchContext(ctx)
	if err != nil {
		return r.fail(err)
	}

	page := &Page{Title: pageTitle, Loaded: true}
	page.KPIs = buildKPIs(data)
	r.renderCharts(page, data.InternalMetrics)
	page.Resources = buildMonitor(data.InternalMetrics.ResourceBreakdown)
	page.Alerts = data.InternalMetrics.Alerts
	page.Status = buildStatus(data.InternalMetrics.Alerts)
	page.Impact = buildImpact(data.EnvironmentalImpact)
	page.External = buildImpact(data.ExternalCarbonContext)
	page.Recommendation = data.InternalMetrics.Recommendation

	r.observe(metrics.OutcomeOK)
	return page
}

func (r *Renderer) fail(err error) *Page {
	outcome, kind := metrics.OutcomeFetchFailure, "fetch"
	var shapeErr *domain.ShapeError
	if errors.As(err, &shapeErr) {
		outcome, kind = metrics.OutcomeShapeFailure, "shape"
	}
	r.log.Error().Err(err).Str("kind", kind).Msg("dashboard render failed")
	r.observe(outcome)
	return &Page{Title: pageTitle, Error: ErrorMessage}
}

// renderCharts replaces both charts under r.mu so the two slots always hold
// instances from the same snapshot.
func (r *Renderer) renderCharts(page *Page, m domain.InternalMetrics) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mix, err := r.mix.Replace(chart.Donut([]chart.Segment{
		{Label: "Renewable", Value: m.RenewableUsage, Color: chart.ColorSuccess},
		{Label: "Non-Renewable", Value: m.NonRenewableUsage, Color: chart.ColorDanger},
	}))
	if err != nil {
		r.log.Warn().Err(err).Str("slot", r.mix.Name()).Msg("chart draw failed")
	} else {
		page.MixChart = template.HTML(mix.SVG())
	}

	bars := make([]chart.Bar, 0, len(m.ResourceBreakdown))
	for _, e := range m.ResourceBreakdown {
		color := chart.ColorNonRenewable
		if e.Renewable {
			color = chart.ColorRenewable
		}
		bars = append(bars, chart.Bar{Label: e.Name, Value: e.Used, Color: color})
	}
	usage, err := r.usage.Replace(chart.Bars(bars))
	if err != nil {
		r.log.Warn().Err(err).Str("slot", r.usage.Name()).Msg("chart draw failed")
	} else {
		page.UsageChart = template.HTML(usage.SVG())
	}
}

func (r *Renderer) observe(outcome string) {
	if r.metrics == nil {
		return
	}
	r.metrics.Renders.WithLabelValues(outcome).Inc()
	r.metrics.LiveCharts.WithLabelValues(r.mix.Name()).Set(float64(r.mix.Live()))
	r.metrics.LiveCharts.WithLabelValues(r.usage.Name()).Set(float64(r.usage.Live()))
}

// LiveCharts reports the live chart instances in the mix and usage slots.
func (r *Renderer) LiveCharts() (mix, usage int) {
	return r.mix.Live(), r.usage.Live()
}

// Close releases both chart slots.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mix.Release()
	r.usage.Release()
}
