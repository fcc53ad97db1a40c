package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
)

type UsageService struct {
	repos   *repository.Repos
	metrics *metrics.Metrics
}

// Use consumes amount of a resource on behalf of a consumer. The resource
// must be assigned to the consumer and have enough left.
func (s *UsageService) Use(ctx context.Context, consumerID int64, resource string, amount float64) error {
	err := s.use(ctx, consumerID, resource, amount)
	if s.metrics != nil {
		s.metrics.UsageEvents.WithLabelValues(usageResult(err)).Inc()
	}
	return err
}

func (s *UsageService) use(ctx context.Context, consumerID int64, resource string, amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return fmt.Errorf("received %v: %w", amount, domain.ErrNonPositiveAmount)
	}

	consumer, err := s.repos.GetConsumer(ctx, consumerID)
	if err != nil {
		return err
	}
	if !consumer.Assigned(resource) {
		return fmt.Errorf("resource %q, consumer %q: %w", resource, consumer.Name, domain.ErrNotAssigned)
	}

	if err := s.repos.Consume(ctx, resource, amount); err != nil {
		return err
	}
	log.Info().Str("consumer", consumer.Name).Str("resource", resource).Float64("amount", amount).Msg("resource used")
	return nil
}

// FromMQTT applies a JSON usage event received on topic.
func (s *UsageService) FromMQTT(topic string, payload []byte) error {
	var ev domain.UsageEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode usage event from %s: %w", topic, err)
	}
	return s.Use(context.Background(), ev.ConsumerID, ev.Resource, ev.Amount)
}

// ConsumerReport returns the state of every resource assigned to a consumer.
func (s *UsageService) ConsumerReport(ctx context.Context, consumerID int64) (*domain.ConsumerReport, error) {
	consumer, err := s.repos.GetConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	out := &domain.ConsumerReport{
		ConsumerID: consumer.ID,
		Name:       consumer.Name,
		Resources:  []domain.ResourceStatus{},
	}
	for _, name := range consumer.Resources {
		r, err := s.repos.GetResource(ctx, name)
		if err != nil {
			return nil, err
		}
		out.Resources = append(out.Resources, domain.ResourceStatus{
			Name:             r.Name,
			TotalAvailable:   r.TotalAvailable,
			CurrentAvailable: r.CurrentAvailable,
			Used:             r.Used(),
		})
	}
	return out, nil
}

func usageResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrNotAssigned):
		return "not_assigned"
	case errors.Is(err, domain.ErrInsufficient):
		return "insufficient"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return "error"
}
