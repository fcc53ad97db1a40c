package domain

// Carbon context status tags.
const (
	StatusSimulatedInternal = "simulated_internal"
	StatusSuccess           = "success"
)

// SustainabilityContext is the body served at /sustainability/context.
type SustainabilityContext struct {
	InternalMetrics       InternalMetrics `json:"internal_sustainability_metrics"`
	EnvironmentalImpact   *CarbonContext  `json:"environmental_impact,omitempty"`
	ExternalCarbonContext *CarbonContext  `json:"external_carbon_context,omitempty"`
}

type InternalMetrics struct {
	TotalResourceUsage float64         `json:"total_resource_usage"`
	RenewableUsage     float64         `json:"renewable_usage"`
	NonRenewableUsage  float64         `json:"non_renewable_usage"`
	ResourceBreakdown  []ResourceEntry `json:"resource_breakdown"`
	Alerts             []string        `json:"alerts"`
	Recommendation     string          `json:"recommendation"`
}

type ResourceEntry struct {
	Name         string  `json:"name"`
	Used         float64 `json:"used"`
	Total        float64 `json:"total"`
	UsagePercent float64 `json:"usage_percent"`
	Renewable    bool    `json:"renewable"`
}

type CarbonKind int

const (
	CarbonUnknown CarbonKind = iota
	CarbonSuccess
	CarbonUnavailable
)

// CarbonContext is either a success variant (Status set, TotalCO2e or CO2e
// holding the figure) or an unavailable variant (Error set).
type CarbonContext struct {
	Status      string   `json:"status,omitempty"`
	TotalCO2e   *float64 `json:"total_co2e,omitempty"`
	CO2e        *float64 `json:"co2e,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Description string   `json:"description"`
	Error       string   `json:"error,omitempty"`
}

// SimulatedImpact builds the success variant produced from internal emission factors.
func SimulatedImpact(totalCO2e float64, unit, description string) *CarbonContext {
	return &CarbonContext{
		Status:      StatusSimulatedInternal,
		TotalCO2e:   &totalCO2e,
		Unit:        unit,
		Description: description,
	}
}

// ExternalEstimate builds the success variant returned by an external provider.
func ExternalEstimate(co2e float64, unit, description string) *CarbonContext {
	return &CarbonContext{
		Status:      StatusSuccess,
		CO2e:        &co2e,
		Unit:        unit,
		Description: description,
	}
}

func Unavailable(reason, description string) *CarbonContext {
	return &CarbonContext{Error: reason, Description: description}
}

func (c *CarbonContext) Kind() CarbonKind {
	if c == nil {
		return CarbonUnknown
	}
	if c.Error != "" {
		return CarbonUnavailable
	}
	switch {
	case c.Status == StatusSimulatedInternal && c.TotalCO2e != nil:
		return CarbonSuccess
	case c.Status == StatusSuccess && c.CO2e != nil:
		return CarbonSuccess
	}
	return CarbonUnknown
}

// Value returns the headline CO2e figure of a success variant, zero otherwise.
func (c *CarbonContext) Value() float64 {
	if c.Kind() != CarbonSuccess {
		return 0
	}
	if c.Status == StatusSimulatedInternal {
		return *c.TotalCO2e
	}
	return *c.CO2e
}
