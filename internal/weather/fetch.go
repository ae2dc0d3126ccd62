package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var (
	currentFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "is_day",
		"precipitation", "weather_code", "cloud_cover", "surface_pressure",
		"wind_speed_10m", "wind_direction_10m", "visibility", "uv_index",
	}
	hourlyFields = []string{
		"temperature_2m", "weather_code", "is_day", "precipitation_probability",
		"precipitation", "wind_speed_10m",
	}
	dailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "sunrise",
		"sunset", "precipitation_sum", "precipitation_probability_max",
		"wind_speed_10m_max", "uv_index_max",
	}
	airQualityFields = []string{"us_aqi", "pm10", "pm2_5"}
)

// FetcherConfig holds the upstream endpoints and per-call budgets.
// The air quality budget is deliberately shorter than the forecast one:
// that call is best-effort and allowed to fail fast.
type FetcherConfig struct {
	ForecastURL       string
	AirQualityURL     string
	ForecastTimeout   time.Duration
	AirQualityTimeout time.Duration
}

// Fetcher retrieves the raw forecast and air quality payloads for a
// location. The two upstreams sit behind independent circuit breakers so an
// air quality outage never trips the forecast path.
type Fetcher struct {
	client     *http.Client
	cfg        FetcherConfig
	forecastCB *gobreaker.CircuitBreaker
	airCB      *gobreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher using the shared outbound HTTP client.
func NewFetcher(client *http.Client, cfg FetcherConfig) *Fetcher {
	return &Fetcher{
		client: client,
		cfg:    cfg,
		forecastCB: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "forecast",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		airCB: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "air-quality",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Fetch requests the combined current+hourly+daily forecast and then the
// current air quality readings for the same coordinates. A forecast failure
// is fatal; an air quality failure only leaves Bundle.AirQuality nil.
func (f *Fetcher) Fetch(ctx context.Context, loc Location, unit UnitSystem) (*Bundle, error) {
	bundle := &Bundle{}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	values.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	values.Set("current", strings.Join(currentFields, ","))
	values.Set("hourly", strings.Join(hourlyFields, ","))
	values.Set("daily", strings.Join(dailyFields, ","))
	values.Set("timezone", "auto")
	values.Set("forecast_days", "7")
	if unit == UnitImperial {
		values.Set("temperature_unit", "fahrenheit")
		values.Set("wind_speed_unit", "mph")
	}

	fctx, cancel := context.WithTimeout(ctx, f.cfg.ForecastTimeout)
	defer cancel()

	if err := f.getJSON(fctx, f.forecastCB, f.cfg.ForecastURL, values, &bundle.Forecast); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	airValues := url.Values{}
	airValues.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	airValues.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	airValues.Set("current", strings.Join(airQualityFields, ","))

	actx, cancel := context.WithTimeout(ctx, f.cfg.AirQualityTimeout)
	defer cancel()

	var air AirQualityPayload
	if err := f.getJSON(actx, f.airCB, f.cfg.AirQualityURL, airValues, &air); err != nil {
		log.Printf("air quality fetch failed for %s: %v", loc.Name, err)
	} else {
		bundle.AirQuality = &air
	}

	return bundle, nil
}

func (f *Fetcher) getJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, endpoint string, values url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := f.client.Do(req)
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
		return err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
