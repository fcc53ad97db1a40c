// Package carbon estimates greenhouse-gas emissions for resource usage, both
// from internal emission factors and from the Climatiq estimate API.
package carbon

import (
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/report"
)

const UnitKg = "kg"

// Simulate multiplies each resource's consumption by its emission factor.
func Simulate(resources []domain.Resource) *domain.CarbonContext {
	var total float64
	for _, r := range resources {
		total += r.Used() * r.EmissionFactor
	}
	return domain.SimulatedImpact(
		report.Round(total, 3),
		UnitKg,
		"Estimated CO2e from internal emission factors for all consumed resources.",
	)
}
