package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

//go:embed default_inventory.yaml
var defaultInventory []byte

// Inventory is the seed description of resources and consumers.
type Inventory struct {
	Resources []SeedResource    `yaml:"resources"`
	Consumers []domain.Consumer `yaml:"consumers"`
}

// SeedResource is a resource plus the amount already consumed when seeded.
type SeedResource struct {
	domain.Resource `yaml:",inline"`
	Used            float64 `yaml:"used"`
}

// LoadInventory reads a YAML inventory; an empty path yields the built-in demo inventory.
func LoadInventory(path string) (Inventory, error) {
	data := defaultInventory
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Inventory{}, fmt.Errorf("read inventory: %w", err)
		}
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return Inventory{}, fmt.Errorf("parse inventory: %w", err)
	}
	if err := inv.validate(); err != nil {
		return Inventory{}, err
	}
	return inv, nil
}

func (inv Inventory) validate() error {
	names := make(map[string]bool, len(inv.Resources))
	for _, r := range inv.Resources {
		if r.Name == "" {
			return fmt.Errorf("inventory: resource without name")
		}
		switch r.Kind {
		case domain.KindWater, domain.KindEnergy, domain.KindWaste:
		default:
			return fmt.Errorf("inventory: resource %q has unknown kind %q", r.Name, r.Kind)
		}
		if r.TotalAvailable < 0 || r.Used < 0 || r.Used > r.TotalAvailable {
			return fmt.Errorf("inventory: resource %q has invalid amounts", r.Name)
		}
		names[r.Name] = true
	}
	for _, c := range inv.Consumers {
		for _, name := range c.Resources {
			if !names[name] {
				return fmt.Errorf("inventory: consumer %q references unknown resource %q", c.Name, name)
			}
		}
	}
	return nil
}

// Seed inserts the inventory, leaving rows that already exist untouched.
func (r *Repos) Seed(ctx context.Context, inv Inventory) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, res := range inv.Resources {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO resources
			(name, kind, total_available, current_available, renewable, emission_factor, position)
			VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT (name) DO NOTHING`),
			res.Name, res.Kind, res.TotalAvailable, res.TotalAvailable-res.Used, res.Renewable, res.EmissionFactor, i)
		if err != nil {
			return fmt.Errorf("seed resource %q: %w", res.Name, err)
		}
	}
	for _, c := range inv.Consumers {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO consumers (id, name) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`), c.ID, c.Name)
		if err != nil {
			return fmt.Errorf("seed consumer %q: %w", c.Name, err)
		}
		for _, name := range c.Resources {
			_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO consumer_resources (consumer_id, resource_name)
				VALUES (?, ?) ON CONFLICT (consumer_id, resource_name) DO NOTHING`), c.ID, name)
			if err != nil {
				return fmt.Errorf("seed assignment %d/%q: %w", c.ID, name, err)
			}
		}
	}
	return tx.Commit()
}
