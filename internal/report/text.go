package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

const banner = "=========================================="

// WriteText writes the human-readable sustainability report.
func WriteText(w io.Writer, resources []domain.Resource, threshold float64) error {
	m := Compute(resources, threshold)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw, "      SUSTAINABILITY REPORT GENERATED     ")
	fmt.Fprintln(bw, banner)

	fmt.Fprintln(bw, "\n--- Individual Resource Usage ---")
	for _, r := range resources {
		fmt.Fprintf(bw, "%s: Used %.2f of %.2f (%.1f%%)\n", r.Name, r.Used(), r.TotalAvailable, r.UsagePercent())
	}

	fmt.Fprintln(bw, "\n--- Usage Summary ---")
	fmt.Fprintf(bw, "Total Resource Usage: %.2f\n", m.TotalResourceUsage)
	fmt.Fprintf(bw, "Renewable Usage: %.2f\n", m.RenewableUsage)
	fmt.Fprintf(bw, "Non-Renewable Usage: %.2f\n", m.NonRenewableUsage)

	fmt.Fprintln(bw, "\n--- Alerts ---")
	if len(m.Alerts) == 0 {
		fmt.Fprintln(bw, "No critical resource usage detected.")
	}
	for _, a := range m.Alerts {
		fmt.Fprintf(bw, "%s (Threshold: %.0f%%)\n", a, threshold)
	}

	fmt.Fprintln(bw, "\n--- Sustainability Recommendations ---")
	if m.NonRenewableUsage > m.RenewableUsage {
		fmt.Fprintln(bw, "- "+RecommendShift)
	}
	if len(m.Alerts) > 0 {
		fmt.Fprintln(bw, "- Immediate conservation measures required for critical resources.")
	} else {
		fmt.Fprintln(bw, "- "+RecommendMaintain)
	}
	if m.TotalResourceUsage == 0 {
		fmt.Fprintln(bw, "- No resources have been used yet.")
	}

	fmt.Fprintln(bw, "\n"+banner)
	return bw.Flush()
}
