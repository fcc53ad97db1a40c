package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

// Migrate creates the tables when they do not exist yet.
func (r *Repos) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (r *Repos) ListResources(ctx context.Context) ([]domain.Resource, error) {
	var out []domain.Resource
	err := r.db.SelectContext(ctx, &out, `SELECT name, kind, total_available, current_available, renewable, emission_factor, position
		FROM resources ORDER BY position, name`)
	return out, err
}

func (r *Repos) GetResource(ctx context.Context, name string) (domain.Resource, error) {
	var out domain.Resource
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`SELECT name, kind, total_available, current_available, renewable, emission_factor, position
		FROM resources WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return out, fmt.Errorf("resource %q: %w", name, domain.ErrNotFound)
	}
	return out, err
}

func (r *Repos) ListConsumers(ctx context.Context) ([]domain.Consumer, error) {
	var out []domain.Consumer
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM consumers ORDER BY id`); err != nil {
		return nil, err
	}

	var links []struct {
		ConsumerID   int64  `db:"consumer_id"`
		ResourceName string `db:"resource_name"`
	}
	err := r.db.SelectContext(ctx, &links, `SELECT cr.consumer_id, cr.resource_name
		FROM consumer_resources cr JOIN resources res ON res.name = cr.resource_name
		ORDER BY cr.consumer_id, res.position, res.name`)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]int, len(out))
	for i, c := range out {
		byID[c.ID] = i
		out[i].Resources = []string{}
	}
	for _, l := range links {
		if i, ok := byID[l.ConsumerID]; ok {
			out[i].Resources = append(out[i].Resources, l.ResourceName)
		}
	}
	return out, nil
}

func (r *Repos) GetConsumer(ctx context.Context, id int64) (domain.Consumer, error) {
	var out domain.Consumer
	err := r.db.GetContext(ctx, &out, r.db.Rebind(`SELECT id, name FROM consumers WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return out, fmt.Errorf("consumer %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return out, err
	}

	out.Resources = []string{}
	err = r.db.SelectContext(ctx, &out.Resources, r.db.Rebind(`SELECT cr.resource_name
		FROM consumer_resources cr JOIN resources res ON res.name = cr.resource_name
		WHERE cr.consumer_id = ? ORDER BY res.position, res.name`), id)
	return out, err
}

// Consume atomically lowers the current availability of a resource. It fails
// with domain.ErrInsufficient when less than amount remains.
func (r *Repos) Consume(ctx context.Context, name string, amount float64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE resources
		SET current_available = current_available - ?
		WHERE name = ? AND current_available >= ?`), amount, name, amount)
	if err != nil {
		return fmt.Errorf("consume %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	current, err := r.GetResource(ctx, name)
	if err != nil {
		return err
	}
	return fmt.Errorf("requested %.2f of %q with %.2f left: %w", amount, name, current.CurrentAvailable, domain.ErrInsufficient)
}
