package domain

import (
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

type wireContext struct {
	Metrics  *wireMetrics `json:"internal_sustainability_metrics"`
	Impact   *wireCarbon  `json:"environmental_impact"`
	External *wireCarbon  `json:"external_carbon_context"`
}

type wireMetrics struct {
	TotalResourceUsage *float64     `json:"total_resource_usage"`
	RenewableUsage     *float64     `json:"renewable_usage"`
	NonRenewableUsage  *float64     `json:"non_renewable_usage"`
	ResourceBreakdown  *[]wireEntry `json:"resource_breakdown"`
	Alerts             *[]string    `json:"alerts"`
	Recommendation     *string      `json:"recommendation"`
}

type wireEntry struct {
	Name         *string  `json:"name"`
	Used         *float64 `json:"used"`
	Total        *float64 `json:"total"`
	UsagePercent *float64 `json:"usage_percent"`
	Renewable    *bool    `json:"renewable"`
}

type wireCarbon struct {
	Status      *string  `json:"status"`
	TotalCO2e   *float64 `json:"total_co2e"`
	CO2e        *float64 `json:"co2e"`
	Unit        *string  `json:"unit"`
	Description *string  `json:"description"`
	Error       *string  `json:"error"`
}

// DecodeContext parses and validates a /sustainability/context body. Every
// failure is a *ShapeError.
func DecodeContext(data []byte) (*SustainabilityContext, error) {
	var w wireContext
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &ShapeError{Reason: "could not be decoded", Err: err}
	}

	metrics, err := w.Metrics.toMetrics()
	if err != nil {
		return nil, err
	}

	out := &SustainabilityContext{InternalMetrics: metrics}
	if w.Impact == nil && w.External == nil {
		return nil, &ShapeError{Field: "environmental_impact", Reason: "or external_carbon_context is required"}
	}
	if w.Impact != nil {
		if out.EnvironmentalImpact, err = w.Impact.toCarbon("environmental_impact"); err != nil {
			return nil, err
		}
	}
	if w.External != nil {
		if out.ExternalCarbonContext, err = w.External.toCarbon("external_carbon_context"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *wireMetrics) toMetrics() (InternalMetrics, error) {
	const field = "internal_sustainability_metrics"
	if m == nil {
		return InternalMetrics{}, &ShapeError{Field: field, Reason: "is missing"}
	}

	total, err := number(field+".total_resource_usage", m.TotalResourceUsage)
	if err != nil {
		return InternalMetrics{}, err
	}
	renewable, err := number(field+".renewable_usage", m.RenewableUsage)
	if err != nil {
		return InternalMetrics{}, err
	}
	nonRenewable, err := number(field+".non_renewable_usage", m.NonRenewableUsage)
	if err != nil {
		return InternalMetrics{}, err
	}
	if m.ResourceBreakdown == nil {
		return InternalMetrics{}, &ShapeError{Field: field + ".resource_breakdown", Reason: "is missing"}
	}
	if m.Alerts == nil {
		return InternalMetrics{}, &ShapeError{Field: field + ".alerts", Reason: "is missing"}
	}
	if m.Recommendation == nil {
		return InternalMetrics{}, &ShapeError{Field: field + ".recommendation", Reason: "is missing"}
	}

	entries := make([]ResourceEntry, 0, len(*m.ResourceBreakdown))
	for i, e := range *m.ResourceBreakdown {
		entry, err := e.toEntry(fmt.Sprintf("%s.resource_breakdown[%d]", field, i))
		if err != nil {
			return InternalMetrics{}, err
		}
		entries = append(entries, entry)
	}

	return InternalMetrics{
		TotalResourceUsage: total,
		RenewableUsage:     renewable,
		NonRenewableUsage:  nonRenewable,
		ResourceBreakdown:  entries,
		Alerts:             append([]string{}, *m.Alerts...),
		Recommendation:     *m.Recommendation,
	}, nil
}

func (e wireEntry) toEntry(field string) (ResourceEntry, error) {
	if e.Name == nil || *e.Name == "" {
		return ResourceEntry{}, &ShapeError{Field: field + ".name", Reason: "is missing"}
	}
	used, err := number(field+".used", e.Used)
	if err != nil {
		return ResourceEntry{}, err
	}
	total, err := number(field+".total", e.Total)
	if err != nil {
		return ResourceEntry{}, err
	}
	pct, err := number(field+".usage_percent", e.UsagePercent)
	if err != nil {
		return ResourceEntry{}, err
	}
	if e.Renewable == nil {
		return ResourceEntry{}, &ShapeError{Field: field + ".renewable", Reason: "is missing"}
	}
	return ResourceEntry{
		Name:         *e.Name,
		Used:         used,
		Total:        total,
		UsagePercent: pct,
		Renewable:    *e.Renewable,
	}, nil
}

func (c *wireCarbon) toCarbon(field string) (*CarbonContext, error) {
	out := &CarbonContext{
		Status:      deref(c.Status),
		Unit:        deref(c.Unit),
		Description: deref(c.Description),
		Error:       deref(c.Error),
	}

	if out.Error != "" {
		return out, nil
	}

	switch out.Status {
	case StatusSimulatedInternal:
		v, err := number(field+".total_co2e", c.TotalCO2e)
		if err != nil {
			return nil, err
		}
		out.TotalCO2e = &v
	case StatusSuccess:
		v, err := number(field+".co2e", c.CO2e)
		if err != nil {
			return nil, err
		}
		out.CO2e = &v
	case "":
		return nil, &ShapeError{Field: field, Reason: "has neither a status nor an error"}
	default:
		return nil, &ShapeError{Field: field + ".status", Reason: fmt.Sprintf("%q is not recognized", out.Status)}
	}
	return out, nil
}

func number(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, &ShapeError{Field: field, Reason: "is missing"}
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, &ShapeError{Field: field, Reason: "is not finite"}
	}
	return *v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
