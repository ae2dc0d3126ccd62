package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/akarpova/weatherview/internal/geocode"
	"github.com/akarpova/weatherview/internal/weather"
)

type fakeService struct {
	report     *weather.Report
	err        error
	cityCalls  int
	coordCalls int
	lastCity   string
	lastUnit   weather.UnitSystem
}

func (s *fakeService) CityWeather(ctx context.Context, city string, unit weather.UnitSystem) (*weather.Report, error) {
	s.cityCalls++
	s.lastCity = city
	s.lastUnit = unit
	return s.report, s.err
}

func (s *fakeService) CoordsWeather(ctx context.Context, lat, lon float64, unit weather.UnitSystem) (*weather.Report, error) {
	s.coordCalls++
	return s.report, s.err
}

type fakeSuggester struct {
	candidates []geocode.Candidate
	err        error
	calls      int
}

func (s *fakeSuggester) Suggest(ctx context.Context, query string) ([]geocode.Candidate, error) {
	s.calls++
	return s.candidates, s.err
}

type apiResponse struct {
	Success  bool                       `json:"success"`
	Error    string                     `json:"error"`
	Current  *weather.CurrentConditions `json:"current"`
	Hourly   []weather.HourlyPoint      `json:"hourly"`
	Forecast []weather.DailyPoint       `json:"forecast"`
	Results  []geocode.Candidate        `json:"results"`
	Searches []string                   `json:"searches"`
}

func springfieldReport() *weather.Report {
	return &weather.Report{
		Current: weather.CurrentConditions{
			City:    "Springfield",
			Country: "United States",
		},
		Hourly:   make([]weather.HourlyPoint, 24),
		Forecast: make([]weather.DailyPoint, 5),
	}
}

func newTestApp(svc WeatherService, suggester Suggester) *fiber.App {
	app := fiber.New()
	sessions := fibersession.New()
	RegisterRoutes(app, svc, suggester, sessions, Limits{WeatherPerMinute: 100, GeocodePerMinute: 100})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string, cookies ...*http.Cookie) (*http.Response, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, parsed
}

func TestWeatherRejectsEmptyCityBeforeLookup(t *testing.T) {
	svc := &fakeService{report: springfieldReport()}
	app := newTestApp(svc, &fakeSuggester{})

	for _, body := range []string{`{"city": ""}`, `{"city": "   "}`, `{}`} {
		_, parsed := postJSON(t, app, "/weather", body)
		if parsed.Success {
			t.Errorf("body %s: expected failure payload", body)
		}
		if parsed.Error != "City name is required" {
			t.Errorf("body %s: error = %q", body, parsed.Error)
		}
	}

	if svc.cityCalls != 0 {
		t.Errorf("service calls = %d, want 0 before validation passes", svc.cityCalls)
	}
}

func TestWeatherRejectsInvalidUnit(t *testing.T) {
	svc := &fakeService{report: springfieldReport()}
	app := newTestApp(svc, &fakeSuggester{})

	_, parsed := postJSON(t, app, "/weather", `{"city": "Springfield", "unit": "kelvin"}`)
	if parsed.Success || parsed.Error != "Unit must be celsius or fahrenheit" {
		t.Errorf("response = %+v", parsed)
	}
}

func TestWeatherSuccessRecordsRecentSearch(t *testing.T) {
	svc := &fakeService{report: springfieldReport()}
	app := newTestApp(svc, &fakeSuggester{})

	resp, parsed := postJSON(t, app, "/weather", `{"city": "springfield", "unit": "fahrenheit"}`)
	if !parsed.Success {
		t.Fatalf("expected success, got error %q", parsed.Error)
	}
	if parsed.Current == nil || parsed.Current.City != "Springfield" {
		t.Errorf("current = %+v", parsed.Current)
	}
	if len(parsed.Hourly) != 24 || len(parsed.Forecast) != 5 {
		t.Errorf("series lengths = %d/%d", len(parsed.Hourly), len(parsed.Forecast))
	}
	if svc.lastUnit != weather.UnitImperial {
		t.Errorf("unit = %v, want imperial", svc.lastUnit)
	}

	// The session cookie from the lookup carries the recent searches.
	req := httptest.NewRequest(http.MethodGet, "/recent-searches", nil)
	for _, c := range resp.Cookies() {
		req.AddCookie(c)
	}
	recentResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var recent apiResponse
	if err := json.NewDecoder(recentResp.Body).Decode(&recent); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(recent.Searches) != 1 || recent.Searches[0] != "Springfield" {
		t.Errorf("searches = %v, want the resolved city name", recent.Searches)
	}
}

func TestRecentSearchesEmptyForNewSession(t *testing.T) {
	app := newTestApp(&fakeService{report: springfieldReport()}, &fakeSuggester{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/recent-searches", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !parsed.Success || len(parsed.Searches) != 0 {
		t.Errorf("response = %+v, want empty search list", parsed)
	}
}

func TestWeatherNotFound(t *testing.T) {
	svc := &fakeService{err: geocode.ErrNotFound}
	app := newTestApp(svc, &fakeSuggester{})

	resp, parsed := postJSON(t, app, "/weather", `{"city": "Nowhere"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, expected failures stay at the payload level", resp.StatusCode)
	}
	if parsed.Success || parsed.Error != `City "Nowhere" not found` {
		t.Errorf("response = %+v", parsed)
	}
}

func TestWeatherUpstreamFailure(t *testing.T) {
	svc := &fakeService{err: weather.ErrUpstream}
	app := newTestApp(svc, &fakeSuggester{})

	_, parsed := postJSON(t, app, "/weather", `{"city": "Springfield"}`)
	if parsed.Success {
		t.Fatal("expected failure payload")
	}
	if !strings.Contains(parsed.Error, "try again") {
		t.Errorf("error = %q, want a retry-flavored message", parsed.Error)
	}
	if parsed.Current != nil {
		t.Error("no partial payload expected on upstream failure")
	}
}

func TestGeocodeShortQueryReturnsEmptyList(t *testing.T) {
	suggester := &fakeSuggester{candidates: []geocode.Candidate{{Name: "Springfield"}}}
	app := newTestApp(&fakeService{}, suggester)

	_, parsed := postJSON(t, app, "/geocode", `{"query": "s"}`)
	if !parsed.Success || len(parsed.Results) != 0 {
		t.Errorf("response = %+v, want success with empty results", parsed)
	}
	if suggester.calls != 0 {
		t.Errorf("suggester calls = %d, want 0 for short query", suggester.calls)
	}
}

func TestGeocodeReturnsCandidates(t *testing.T) {
	suggester := &fakeSuggester{candidates: []geocode.Candidate{
		{Name: "Springfield", Country: "United States", Admin1: "Illinois", Display: "Springfield, Illinois, United States"},
	}}
	app := newTestApp(&fakeService{}, suggester)

	_, parsed := postJSON(t, app, "/geocode", `{"query": "spring"}`)
	if !parsed.Success || len(parsed.Results) != 1 {
		t.Fatalf("response = %+v", parsed)
	}
	if parsed.Results[0].Display != "Springfield, Illinois, United States" {
		t.Errorf("display = %q", parsed.Results[0].Display)
	}
}

func TestWeatherByCoordsRequiresCoordinates(t *testing.T) {
	svc := &fakeService{report: springfieldReport()}
	app := newTestApp(svc, &fakeSuggester{})

	_, parsed := postJSON(t, app, "/weather-by-coords", `{"latitude": 39.78}`)
	if parsed.Success || parsed.Error != "Valid coordinates are required" {
		t.Errorf("response = %+v", parsed)
	}
	if svc.coordCalls != 0 {
		t.Errorf("service calls = %d, want 0", svc.coordCalls)
	}
}

func TestWeatherByCoordsSuccess(t *testing.T) {
	svc := &fakeService{report: springfieldReport()}
	app := newTestApp(svc, &fakeSuggester{})

	_, parsed := postJSON(t, app, "/weather-by-coords", `{"latitude": 39.78, "longitude": -89.65}`)
	if !parsed.Success {
		t.Fatalf("expected success, got %q", parsed.Error)
	}
	if svc.coordCalls != 1 {
		t.Errorf("service calls = %d, want 1", svc.coordCalls)
	}
}

func TestIndexPageServed(t *testing.T) {
	app := newTestApp(&fakeService{}, &fakeSuggester{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q, want html", ct)
	}
}
