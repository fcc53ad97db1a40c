package carbon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

// ErrNoAPIKey is returned when no Climatiq key is configured.
var ErrNoAPIKey = errors.New("climatiq api key not configured")

type ClimatiqConfig struct {
	URL        string
	APIKey     string
	ActivityID string
	Region     string
	Timeout    time.Duration
}

type Climatiq struct {
	cfg  ClimatiqConfig
	http *http.Client
}

func NewClimatiq(cfg ClimatiqConfig) *Climatiq {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Climatiq{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Estimate is the subset of a Climatiq estimate the dashboard uses.
type Estimate struct {
	ActivityID      string  `json:"activity_id"`
	CO2e            float64 `json:"co2e"`
	Unit            string  `json:"unit"`
	CarbonIntensity float64 `json:"carbon_intensity"` // CO2e per kWh
}

type estimateRequest struct {
	EmissionFactor struct {
		ActivityID  string `json:"activity_id"`
		Region      string `json:"region"`
		DataVersion string `json:"data_version"`
	} `json:"emission_factor"`
	Parameters struct {
		Energy     float64 `json:"energy"`
		EnergyUnit string  `json:"energy_unit"`
	} `json:"parameters"`
}

type estimateResponse struct {
	CO2e           *float64 `json:"co2e"`
	CO2eUnit       string   `json:"co2e_unit"`
	EmissionFactor struct {
		ActivityID string `json:"activity_id"`
	} `json:"emission_factor"`
}

// Estimate prices energyKWh of grid electricity in the configured region.
func (c *Climatiq) Estimate(ctx context.Context, energyKWh float64) (*Estimate, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	var payload estimateRequest
	payload.EmissionFactor.ActivityID = c.cfg.ActivityID
	payload.EmissionFactor.Region = c.cfg.Region
	payload.EmissionFactor.DataVersion = "^5"
	payload.Parameters.Energy = energyKWh
	payload.Parameters.EnergyUnit = "kWh"

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("climatiq estimate failed: %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	var out estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode climatiq estimate: %w", err)
	}
	if out.CO2e == nil {
		return nil, fmt.Errorf("climatiq estimate has no co2e")
	}

	est := &Estimate{
		ActivityID: out.EmissionFactor.ActivityID,
		CO2e:       *out.CO2e,
		Unit:       out.CO2eUnit,
	}
	if est.ActivityID == "" {
		est.ActivityID = c.cfg.ActivityID
	}
	if energyKWh > 0 {
		est.CarbonIntensity = *out.CO2e / energyKWh
	}
	return est, nil
}

// Context wraps Estimate into the external carbon context variant. Failures
// never propagate; they become the unavailable variant.
func (c *Climatiq) Context(ctx context.Context, energyKWh float64) (*domain.CarbonContext, error) {
	description := fmt.Sprintf("Carbon emission estimate for total energy usage (%g kWh) in %s region.", energyKWh, c.cfg.Region)

	est, err := c.Estimate(ctx, energyKWh)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return domain.Unavailable("External API returned no data (check API key).", description), err
	case err != nil:
		return domain.Unavailable("Failed to connect to external API: "+err.Error(), description), err
	}
	if est.CarbonIntensity > 0 {
		description += fmt.Sprintf(" Grid intensity %.3f %s/kWh.", est.CarbonIntensity, est.Unit)
	}
	return domain.ExternalEstimate(est.CO2e, est.Unit, description), nil
}
