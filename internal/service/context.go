package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/carbon"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/report"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
)

// CarbonSource supplies the external carbon context for an energy amount in kWh.
// It returns the unavailable variant together with the error on failure.
type CarbonSource interface {
	Context(ctx context.Context, energyKWh float64) (*domain.CarbonContext, error)
}

type AlertNotifier interface {
	SendBatchAlerts(ctx context.Context, alerts []string) error
}

// ContextService assembles the SustainabilityContext snapshot.
type ContextService struct {
	repos     *repository.Repos
	external  CarbonSource
	notifier  AlertNotifier
	threshold float64
	metrics   *metrics.Metrics

	mu       sync.Mutex
	notified map[string]bool
}

func NewContextService(repos *repository.Repos, opts Options) *ContextService {
	threshold := opts.AlertThreshold
	if threshold <= 0 {
		threshold = report.DefaultAlertThreshold
	}
	return &ContextService{
		repos:     repos,
		external:  opts.External,
		notifier:  opts.Notifier,
		threshold: threshold,
		metrics:   opts.Metrics,
		notified:  map[string]bool{},
	}
}

func (s *ContextService) Resources(ctx context.Context) ([]domain.Resource, error) {
	return s.repos.ListResources(ctx)
}

func (s *ContextService) Threshold() float64 { return s.threshold }

// Snapshot computes the current sustainability context. External lookup
// failures are reported inside the snapshot, not as an error.
func (s *ContextService) Snapshot(ctx context.Context) (*domain.SustainabilityContext, error) {
	resources, err := s.repos.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	out := &domain.SustainabilityContext{
		InternalMetrics: report.Compute(resources, s.threshold),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.EnvironmentalImpact = carbon.Simulate(resources)
		return nil
	})
	if s.external != nil {
		g.Go(func() error {
			cc, err := s.external.Context(gctx, report.EnergyUsage(resources))
			if err != nil {
				log.Warn().Err(err).Msg("external carbon context unavailable")
				if s.metrics != nil {
					s.metrics.ExternalFailures.Inc()
				}
			}
			out.ExternalCarbonContext = cc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.observe(resources)
	s.notify(ctx, out.InternalMetrics.Alerts)
	return out, nil
}

func (s *ContextService) observe(resources []domain.Resource) {
	if s.metrics == nil {
		return
	}
	s.metrics.Snapshots.Inc()
	for _, r := range resources {
		s.metrics.ResourceUsage.WithLabelValues(r.Name, strconv.FormatBool(r.Renewable)).Set(r.UsagePercent())
	}
}

// notify forwards alerts not seen in earlier snapshots.
func (s *ContextService) notify(ctx context.Context, alerts []string) {
	if s.notifier == nil {
		return
	}

	s.mu.Lock()
	var fresh []string
	current := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		current[a] = true
		if !s.notified[a] {
			fresh = append(fresh, a)
		}
	}
	s.notified = current
	s.mu.Unlock()

	if len(fresh) == 0 {
		return
	}
	if err := s.notifier.SendBatchAlerts(ctx, fresh); err != nil {
		log.Error().Err(err).Int("alerts", len(fresh)).Msg("alert notification failed")
	}
}
