package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/database"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

func newTestRepos(t *testing.T) *Repos {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := New(db)
	ctx := context.Background()
	require.NoError(t, repos.Migrate(ctx))

	inv, err := LoadInventory("")
	require.NoError(t, err)
	require.NoError(t, repos.Seed(ctx, inv))
	return repos
}

func TestListResourcesKeepsInventoryOrder(t *testing.T) {
	repos := newTestRepos(t)

	resources, err := repos.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 4)

	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Municipal Water", "Solar Energy Grid", "Coal Power Plant", "Recyclable Waste"}, names)

	coal := resources[2]
	assert.Equal(t, domain.KindEnergy, coal.Kind)
	assert.False(t, coal.Renewable)
	assert.InDelta(t, 200.0, coal.CurrentAvailable, 0.0001)
	assert.InDelta(t, 90.0, coal.UsagePercent(), 0.0001)
}

func TestSeedIsIdempotent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Consume(ctx, "Municipal Water", 100))

	inv, err := LoadInventory("")
	require.NoError(t, err)
	require.NoError(t, repos.Seed(ctx, inv))

	water, err := repos.GetResource(ctx, "Municipal Water")
	require.NoError(t, err)
	assert.InDelta(t, 550.0, water.CurrentAvailable, 0.0001)
}

func TestConsumers(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	consumers, err := repos.ListConsumers(ctx)
	require.NoError(t, err)
	require.Len(t, consumers, 2)
	assert.Equal(t, "Eco Household", consumers[0].Name)
	assert.Equal(t, []string{"Municipal Water", "Solar Energy Grid", "Recyclable Waste"}, consumers[0].Resources)

	factory, err := repos.GetConsumer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Municipal Water", "Coal Power Plant"}, factory.Resources)

	_, err = repos.GetConsumer(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConsume(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Consume(ctx, "Coal Power Plant", 150))
	coal, err := repos.GetResource(ctx, "Coal Power Plant")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, coal.CurrentAvailable, 0.0001)

	err = repos.Consume(ctx, "Coal Power Plant", 5000)
	assert.True(t, errors.Is(err, domain.ErrInsufficient))

	err = repos.Consume(ctx, "Geothermal", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConsumeConcurrentNeverOverdraws(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	// Recyclable Waste starts with 500 available.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repos.Consume(ctx, "Recyclable Waste", 50); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	waste, err := repos.GetResource(ctx, "Recyclable Waste")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, waste.CurrentAvailable, 0.0001)
}

func TestLoadInventoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	data := []byte(`resources:
  - name: Rainwater Tank
    kind: water
    total_available: 80
    renewable: true
    used: 20
consumers:
  - id: 7
    name: Garden
    resources: [Rainwater Tank]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	inv, err := LoadInventory(path)
	require.NoError(t, err)
	require.Len(t, inv.Resources, 1)
	assert.Equal(t, "Rainwater Tank", inv.Resources[0].Name)
	assert.InDelta(t, 20.0, inv.Resources[0].Used, 0.0001)
	assert.Equal(t, int64(7), inv.Consumers[0].ID)
}

func TestLoadInventoryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown kind", body: "resources:\n  - {name: Wind, kind: air, total_available: 1}\n", want: "unknown kind"},
		{name: "overdrawn", body: "resources:\n  - {name: Wind, kind: energy, total_available: 1, used: 2}\n", want: "invalid amounts"},
		{name: "dangling assignment", body: "consumers:\n  - {id: 1, name: X, resources: [Wind]}\n", want: "unknown resource"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "inventory.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			_, err := LoadInventory(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
