package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/database"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/service"
)

type fixedCarbon struct{}

func (fixedCarbon) Context(context.Context, float64) (*domain.CarbonContext, error) {
	return domain.Unavailable("External API returned no data (check API key).", "US grid"), nil
}

func newTestApp(t *testing.T) (*service.Services, func(*nethttp.Request) *nethttp.Response) {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := repository.New(db)
	ctx := context.Background()
	require.NoError(t, repos.Migrate(ctx))
	inv, err := repository.LoadInventory("")
	require.NoError(t, err)
	require.NoError(t, repos.Seed(ctx, inv))

	reg := prometheus.NewRegistry()
	svcs := service.New(repos, service.Options{External: fixedCarbon{}, Metrics: metrics.New(reg)})

	app := NewApp()
	Register(app, svcs, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	do := func(req *nethttp.Request) *nethttp.Response {
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}
	return svcs, do
}

func TestSustainabilityContextRoute(t *testing.T) {
	_, do := newTestApp(t)

	resp := do(httptest.NewRequest(nethttp.MethodGet, "/sustainability/context", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// The served body must satisfy the same schema the dashboard enforces.
	snap, err := domain.DecodeContext(body)
	require.NoError(t, err)
	assert.InDelta(t, 2350.0, snap.InternalMetrics.TotalResourceUsage, 0.001)
	assert.Equal(t, domain.CarbonSuccess, snap.EnvironmentalImpact.Kind())
	assert.Equal(t, domain.CarbonUnavailable, snap.ExternalCarbonContext.Kind())
}

func TestUsageRoute(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "ok", path: "/consumers/1/usage", body: `{"resource": "Municipal Water", "amount": 50}`, status: nethttp.StatusNoContent},
		{name: "not assigned", path: "/consumers/1/usage", body: `{"resource": "Coal Power Plant", "amount": 100}`, status: nethttp.StatusBadRequest},
		{name: "negative", path: "/consumers/2/usage", body: `{"resource": "Municipal Water", "amount": -50}`, status: nethttp.StatusBadRequest},
		{name: "exceeds limit", path: "/consumers/2/usage", body: `{"resource": "Coal Power Plant", "amount": 5000}`, status: nethttp.StatusBadRequest},
		{name: "unknown consumer", path: "/consumers/77/usage", body: `{"resource": "Municipal Water", "amount": 1}`, status: nethttp.StatusNotFound},
		{name: "bad id", path: "/consumers/abc/usage", body: `{}`, status: nethttp.StatusBadRequest},
		{name: "bad body", path: "/consumers/1/usage", body: `{`, status: nethttp.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, do := newTestApp(t)
			req := httptest.NewRequest(nethttp.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := do(req)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestListRoutes(t *testing.T) {
	_, do := newTestApp(t)

	resp := do(httptest.NewRequest(nethttp.MethodGet, "/resources", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var resources []domain.Resource
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resources))
	assert.Len(t, resources, 4)

	resp = do(httptest.NewRequest(nethttp.MethodGet, "/consumers", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var consumers []domain.Consumer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&consumers))
	assert.Len(t, consumers, 2)

	resp = do(httptest.NewRequest(nethttp.MethodGet, "/consumers/2/report", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var rep domain.ConsumerReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "Industrial Factory", rep.Name)
}

func TestReportRoute(t *testing.T) {
	_, do := newTestApp(t)

	resp := do(httptest.NewRequest(nethttp.MethodGet, "/report", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "SUSTAINABILITY REPORT GENERATED")
}

func TestHealthAndMetrics(t *testing.T) {
	_, do := newTestApp(t)

	resp := do(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	do(httptest.NewRequest(nethttp.MethodGet, "/sustainability/context", nil))
	resp = do(httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sustainability_context_snapshots_total 1")
}
