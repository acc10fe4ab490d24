package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client fetches catalog payloads from the upstream public API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client for the given API base URL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// FetchAreas retrieves the raw areas payload. Callers are expected to run
// Enrich on the result before handing it to any accessor.
func (c *Client) FetchAreas(ctx context.Context) ([]Area, error) {
	var areas []Area
	if err := c.getJSON(ctx, c.baseURL+"/areas", &areas); err != nil {
		return nil, fmt.Errorf("fetch areas: %w", err)
	}
	return areas, nil
}

// FetchSensorSeries retrieves the full time series for one sensor and
// quantity ("Temperature" or "Moisture").
func (c *Client) FetchSensorSeries(ctx context.Context, sensorID int, quantity string) (*SeriesResponse, error) {
	var path string
	switch quantity {
	case "Temperature":
		path = fmt.Sprintf("%s/sensors/%d/temperature", c.baseURL, sensorID)
	case "Moisture":
		path = fmt.Sprintf("%s/sensors/%d/moisture", c.baseURL, sensorID)
	default:
		return nil, fmt.Errorf("no series endpoint for quantity %q", quantity)
	}

	var series SeriesResponse
	if err := c.getJSON(ctx, path, &series); err != nil {
		return nil, fmt.Errorf("fetch sensor %d series: %w", sensorID, err)
	}
	return &series, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
