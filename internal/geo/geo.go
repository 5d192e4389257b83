// Package geo provides a best-effort coordinates lookup used to bias
// place grounding for the travel persona. Lookup failures are not errors
// the caller must handle; the persona simply proceeds without a location
// bias.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quantumedge/internal/logging"
)

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the user's approximate coordinates.
type Locator interface {
	Locate(ctx context.Context) (*Coordinates, error)
}

// IPLocator resolves coordinates from the caller's public IP using an
// ip-api.com style JSON endpoint.
type IPLocator struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// NewIPLocator creates a locator for the given endpoint.
func NewIPLocator(url string, timeout time.Duration) *IPLocator {
	return &IPLocator{URL: url, Timeout: timeout}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate performs one lookup. The context and the configured timeout both
// bound the request.
func (l *IPLocator) Locate(ctx context.Context) (*Coordinates, error) {
	timer := logging.StartTimer(logging.CategoryGeo, "Locate")
	defer timer.Stop()

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build location request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location lookup returned status %d", resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode location response: %w", err)
	}
	if body.Status != "" && body.Status != "success" {
		return nil, fmt.Errorf("location lookup rejected: %s", body.Message)
	}

	logging.Geo("resolved coordinates lat=%.4f lon=%.4f", body.Lat, body.Lon)
	return &Coordinates{Latitude: body.Lat, Longitude: body.Lon}, nil
}
