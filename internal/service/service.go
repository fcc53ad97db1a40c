package service

import (
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
)

type Services struct {
	Repos   *repository.Repos
	Usage   *UsageService
	Context *ContextService
}

type Options struct {
	External       CarbonSource
	Notifier       AlertNotifier
	AlertThreshold float64
	Metrics        *metrics.Metrics
}

func New(repos *repository.Repos, opts Options) *Services {
	return &Services{
		Repos:   repos,
		Usage:   &UsageService{repos: repos, metrics: opts.Metrics},
		Context: NewContextService(repos, opts),
	}
}
