// Package report derives sustainability metrics from resource state and
// renders the plain-text sustainability report.
package report

import (
	"fmt"
	"math"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

const (
	DefaultAlertThreshold = 80.0

	RecommendShift    = "Shift consumption towards renewable resources."
	RecommendMaintain = "Maintain current consumption patterns."
)

// Compute builds the internal metrics for the given resources, in order.
// Resources whose usage percent exceeds threshold raise a CRITICAL alert.
func Compute(resources []domain.Resource, threshold float64) domain.InternalMetrics {
	var total, renewable, nonRenewable float64
	entries := make([]domain.ResourceEntry, 0, len(resources))
	alerts := []string{}

	for _, r := range resources {
		used := r.Used()
		pct := r.UsagePercent()

		total += used
		if r.Renewable {
			renewable += used
		} else {
			nonRenewable += used
		}

		entries = append(entries, domain.ResourceEntry{
			Name:         r.Name,
			Used:         Round(used, 2),
			Total:        Round(r.TotalAvailable, 2),
			UsagePercent: Round(pct, 1),
			Renewable:    r.Renewable,
		})

		if pct > threshold {
			alerts = append(alerts, fmt.Sprintf("CRITICAL: %s usage is at %.1f%%", r.Name, pct))
		}
	}

	recommendation := RecommendMaintain
	if nonRenewable > renewable {
		recommendation = RecommendShift
	}

	return domain.InternalMetrics{
		TotalResourceUsage: Round(total, 2),
		RenewableUsage:     Round(renewable, 2),
		NonRenewableUsage:  Round(nonRenewable, 2),
		ResourceBreakdown:  entries,
		Alerts:             alerts,
		Recommendation:     recommendation,
	}
}

// EnergyUsage sums consumption of energy resources, the quantity priced by
// external carbon estimates (kWh).
func EnergyUsage(resources []domain.Resource) float64 {
	var kwh float64
	for _, r := range resources {
		if r.Kind == domain.KindEnergy {
			kwh += r.Used()
		}
	}
	return kwh
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
