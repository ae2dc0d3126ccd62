package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/akarpova/weatherview/internal/common"
	"github.com/akarpova/weatherview/internal/weather"
)

var (
	// ErrNotFound is returned when the provider has no match for the query.
	ErrNotFound = errors.New("no matching location")

	// ErrUnavailable is returned on timeouts and connection failures.
	ErrUnavailable = errors.New("geocoding service unreachable")
)

// Candidate is one autocomplete suggestion.
type Candidate struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Admin1  string `json:"admin1"`
	Display string `json:"display"`
}

// Client talks to the geocoding provider. Forward lookups resolve a place
// name to coordinates; reverse lookups name a coordinate pair.
type Client struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a geocoding client using the shared outbound HTTP client.
func NewClient(client *http.Client, baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		timeout: timeout,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "geocode",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

type result struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

type searchResponse struct {
	Results []result `json:"results"`
}

// Resolve looks up the best match for a place name.
func (c *Client) Resolve(ctx context.Context, name string) (weather.Location, error) {
	results, err := c.search(ctx, name, 1)
	if err != nil {
		return weather.Location{}, err
	}
	if len(results) == 0 {
		return weather.Location{}, ErrNotFound
	}
	return toLocation(results[0]), nil
}

// Suggest returns up to five ranked candidates for an autocomplete query.
func (c *Client) Suggest(ctx context.Context, query string) ([]Candidate, error) {
	results, err := c.search(ctx, query, 5)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Candidate{
			Name:    r.Name,
			Country: r.Country,
			Admin1:  r.Admin1,
			Display: common.JoinNonEmpty(", ", r.Name, r.Admin1, r.Country),
		})
	}
	return candidates, nil
}

// Reverse names the place at the given coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (weather.Location, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	values.Set("language", "en")
	values.Set("format", "json")

	results, err := c.lookup(ctx, c.baseURL+"/reverse", values)
	if err != nil {
		return weather.Location{}, err
	}
	if len(results) == 0 {
		return weather.Location{}, ErrNotFound
	}
	return toLocation(results[0]), nil
}

func (c *Client) search(ctx context.Context, name string, count int) ([]result, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", strconv.Itoa(count))
	values.Set("language", "en")
	values.Set("format", "json")

	return c.lookup(ctx, c.baseURL+"/search", values)
}

func (c *Client) lookup(ctx context.Context, endpoint string, values url.Values) ([]result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, ok := raw.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return payload.Results, nil
}

func toLocation(r result) weather.Location {
	return weather.Location{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Name:      r.Name,
		Country:   r.Country,
		Admin1:    r.Admin1,
	}
}
