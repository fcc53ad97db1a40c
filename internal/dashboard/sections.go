package dashboard

import (
	"math"
	"strings"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

type KPIs struct {
	Total        string
	Renewable    string
	NonRenewable string
	Carbon       string
}

func buildKPIs(data *domain.SustainabilityContext) KPIs {
	m := data.InternalMetrics
	k := KPIs{
		Total:        LocaleNumber(m.TotalResourceUsage),
		Renewable:    NotAvailable,
		NonRenewable: NotAvailable,
		Carbon:       NotAvailable,
	}
	if ren, non, ok := Percentages(m); ok {
		k.Renewable = percent(ren)
		k.NonRenewable = percent(non)
	}
	if impact := data.EnvironmentalImpact; impact.Kind() == domain.CarbonSuccess {
		k.Carbon = LocaleNumber(impact.Value())
	}
	return k
}

type iconRule struct {
	keyword string
	icon    string
}

// First match wins.
var iconRules = []iconRule{
	{"waste", "fa-recycle"},
	{"coal", "fa-fire-flame-curved"},
	{"solar", "fa-sun"},
	{"water", "fa-droplet"},
}

const defaultIcon = "fa-cube"

// IconFor picks the monitor icon for a resource name.
func IconFor(name string) string {
	lower := strings.ToLower(name)
	for _, r := range iconRules {
		if strings.Contains(lower, r.keyword) {
			return r.icon
		}
	}
	return defaultIcon
}

// MonitorRow is one entry of the resource monitor list.
type MonitorRow struct {
	Name      string
	Icon      string
	Used      string
	Total     string
	Percent   string
	Width     string
	Renewable bool
	Label     string
}

// ClampPercent limits a usage percentage to [0, 100] for progress widths.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(100, math.Max(0, p))
}

func buildMonitor(entries []domain.ResourceEntry) []MonitorRow {
	rows := make([]MonitorRow, 0, len(entries))
	for _, e := range entries {
		label := "Non-Renewable"
		if e.Renewable {
			label = "Renewable"
		}
		rows = append(rows, MonitorRow{
			Name:      e.Name,
			Icon:      IconFor(e.Name),
			Used:      plain(e.Used),
			Total:     plain(e.Total),
			Percent:   oneDecimal(e.UsagePercent),
			Width:     plain(ClampPercent(e.UsagePercent)),
			Renewable: e.Renewable,
			Label:     label,
		})
	}
	return rows
}

// StatusBadge is the system status indicator next to the alerts.
type StatusBadge struct {
	Warning bool
	Label   string
	Icon    string
}

func buildStatus(alerts []string) StatusBadge {
	if len(alerts) > 0 {
		return StatusBadge{Warning: true, Label: "Warning", Icon: "fa-triangle-exclamation"}
	}
	return StatusBadge{Label: "System Online", Icon: "fa-circle-check"}
}

// ImpactPanel renders one carbon context. Absent contexts produce no panel.
type ImpactPanel struct {
	Present     bool
	Available   bool
	Value       string
	Unit        string
	Description string
	Error       string
}

func buildImpact(c *domain.CarbonContext) ImpactPanel {
	switch c.Kind() {
	case domain.CarbonSuccess:
		return ImpactPanel{
			Present:     true,
			Available:   true,
			Value:       oneDecimal(c.Value()),
			Unit:        c.Unit,
			Description: c.Description,
		}
	case domain.CarbonUnavailable:
		return ImpactPanel{
			Present:     true,
			Error:       c.Error,
			Description: c.Description,
		}
	}
	return ImpactPanel{}
}
