package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

const validPayload = `{
  "internal_sustainability_metrics": {
    "total_resource_usage": 1000,
    "renewable_usage": 600,
    "non_renewable_usage": 400,
    "resource_breakdown": [
      {"name": "Solar Power", "used": 50, "total": 100, "usage_percent": 50, "renewable": true},
      {"name": "Coal Plant", "used": 950, "total": 1000, "usage_percent": 95, "renewable": false}
    ],
    "alerts": ["High load"],
    "recommendation": "Shift <load> & save"
  },
  "environmental_impact": {"status": "simulated_internal", "total_co2e": 123.456, "unit": "kg", "description": "Internal estimate"},
  "external_carbon_context": {"error": "API unavailable", "description": "Grid intensity lookup"}
}`

func contextAPI(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case contextPath:
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		case "/health":
			w.WriteHeader(status)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchContext(t *testing.T) {
	srv := contextAPI(t, http.StatusOK, validPayload)

	data, err := NewClient(srv.URL + "/").FetchContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, data.InternalMetrics.TotalResourceUsage)
	assert.Len(t, data.InternalMetrics.ResourceBreakdown, 2)
	assert.Equal(t, domain.CarbonUnavailable, data.ExternalCarbonContext.Kind())
}

func TestFetchContextNon2xx(t *testing.T) {
	srv := contextAPI(t, http.StatusServiceUnavailable, `{"error":"down"}`)

	_, err := NewClient(srv.URL).FetchContext(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
}

func TestFetchContextTransportError(t *testing.T) {
	srv := contextAPI(t, http.StatusOK, validPayload)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).FetchContext(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, errors.Unwrap(err))
}

func TestFetchContextShapeFailure(t *testing.T) {
	srv := contextAPI(t, http.StatusOK, `{"internal_sustainability_metrics": {"total_resource_usage": 10}}`)

	_, err := NewClient(srv.URL).FetchContext(context.Background())
	assert.ErrorIs(t, err, domain.ErrShape)
	var fetchErr *FetchError
	assert.False(t, errors.As(err, &fetchErr))
}

func TestHealth(t *testing.T) {
	assert.NoError(t, NewClient(contextAPI(t, http.StatusOK, "").URL).Health(context.Background()))
	assert.Error(t, NewClient(contextAPI(t, http.StatusInternalServerError, "").URL).Health(context.Background()))
}
