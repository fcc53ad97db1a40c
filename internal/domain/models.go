package domain

import "time"

// Resource kinds. Energy resources feed the external carbon lookup.
const (
	KindWater  = "water"
	KindEnergy = "energy"
	KindWaste  = "waste"
)

type Resource struct {
	Name             string  `db:"name" json:"name" yaml:"name"`
	Kind             string  `db:"kind" json:"kind" yaml:"kind"`
	TotalAvailable   float64 `db:"total_available" json:"total_available" yaml:"total_available"`
	CurrentAvailable float64 `db:"current_available" json:"current_available" yaml:"-"`
	Renewable        bool    `db:"renewable" json:"renewable" yaml:"renewable"`
	EmissionFactor   float64 `db:"emission_factor" json:"emission_factor" yaml:"emission_factor"`
	Position         int     `db:"position" json:"-" yaml:"-"`
}

// Used is the amount consumed so far.
func (r Resource) Used() float64 {
	return r.TotalAvailable - r.CurrentAvailable
}

// UsagePercent is zero for resources with no capacity.
func (r Resource) UsagePercent() float64 {
	if r.TotalAvailable <= 0 {
		return 0
	}
	return r.Used() / r.TotalAvailable * 100
}

type Consumer struct {
	ID        int64    `db:"id" json:"id" yaml:"id"`
	Name      string   `db:"name" json:"name" yaml:"name"`
	Resources []string `db:"-" json:"resources" yaml:"resources"`
}

// Assigned reports whether the named resource may be used by the consumer.
func (c Consumer) Assigned(resource string) bool {
	for _, name := range c.Resources {
		if name == resource {
			return true
		}
	}
	return false
}

// UsageEvent is one consumption request, as published on MQTT or posted over HTTP.
type UsageEvent struct {
	ConsumerID int64     `json:"consumer_id"`
	Resource   string    `json:"resource"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

type ResourceStatus struct {
	Name             string  `json:"name"`
	TotalAvailable   float64 `json:"total_available"`
	CurrentAvailable float64 `json:"current_available"`
	Used             float64 `json:"used"`
}

// ConsumerReport lists the state of every resource assigned to a consumer.
type ConsumerReport struct {
	ConsumerID int64            `json:"consumer_id"`
	Name       string           `json:"name"`
	Resources  []ResourceStatus `json:"resources"`
}
