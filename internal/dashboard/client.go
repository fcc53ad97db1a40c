// Package dashboard renders the sustainability dashboard page from a single
// snapshot of the context API.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

const contextPath = "/sustainability/context"

// FetchError reports a transport failure or a non-2xx response from the
// context API.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch sustainability context: %v", e.Err)
	}
	return fmt.Sprintf("fetch sustainability context: unexpected status %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the API at baseURL. Requests carry no
// timeout of their own and end only with the caller's context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// FetchContext retrieves and validates one sustainability snapshot.
// Failures are either a *FetchError or a *domain.ShapeError.
func (c *Client) FetchContext(ctx context.Context) (*domain.SustainabilityContext, error) {
	body, err := c.get(ctx, contextPath)
	if err != nil {
		return nil, err
	}
	return domain.DecodeContext(body)
}

// Health checks that the API answers on /health.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/health")
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}
