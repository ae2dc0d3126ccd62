package httpapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/akarpova/weatherview/internal/geocode"
	"github.com/akarpova/weatherview/internal/session"
	"github.com/akarpova/weatherview/internal/weather"
)

//go:embed index.html
var indexHTML []byte

var validate = validator.New()

// WeatherService is the slice of the lookup pipeline the handlers use.
type WeatherService interface {
	CityWeather(ctx context.Context, city string, unit weather.UnitSystem) (*weather.Report, error)
	CoordsWeather(ctx context.Context, lat, lon float64, unit weather.UnitSystem) (*weather.Report, error)
}

// Suggester provides autocomplete candidates for a partial place name.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]geocode.Candidate, error)
}

// Limits holds the per-client per-minute request limits.
type Limits struct {
	WeatherPerMinute int
	GeocodePerMinute int
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc WeatherService, geocoder Suggester, sessions *fibersession.Store, limits Limits) {
	weatherLimiter := limiter.New(limiter.Config{
		Max:        limits.WeatherPerMinute,
		Expiration: time.Minute,
	})
	geocodeLimiter := limiter.New(limiter.Config{
		Max:        limits.GeocodePerMinute,
		Expiration: time.Minute,
	})

	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.Send(indexHTML)
	})

	app.Post("/weather", weatherLimiter, func(c *fiber.Ctx) error {
		var req weatherRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, "Invalid request body")
		}

		req.City = strings.TrimSpace(req.City)
		if err := validate.Struct(req); err != nil {
			return fail(c, validationMessage(err))
		}

		report, err := svc.CityWeather(c.UserContext(), req.City, weather.ParseUnit(req.Unit))
		if err != nil {
			return fail(c, lookupErrorMessage(req.City, err))
		}

		recordRecentSearch(c, sessions, report.Current.City)

		return c.JSON(fiber.Map{
			"success":  true,
			"current":  report.Current,
			"hourly":   report.Hourly,
			"forecast": report.Forecast,
		})
	})

	app.Post("/weather-by-coords", weatherLimiter, func(c *fiber.Ctx) error {
		var req coordsRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, "Invalid request body")
		}

		if err := validate.Struct(req); err != nil {
			return fail(c, validationMessage(err))
		}

		report, err := svc.CoordsWeather(c.UserContext(), *req.Latitude, *req.Longitude, weather.ParseUnit(req.Unit))
		if err != nil {
			return fail(c, lookupErrorMessage("", err))
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"current":  report.Current,
			"hourly":   report.Hourly,
			"forecast": report.Forecast,
		})
	})

	app.Post("/geocode", geocodeLimiter, func(c *fiber.Ctx) error {
		var req geocodeRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, "Invalid request body")
		}

		query := strings.TrimSpace(req.Query)
		if len(query) < 2 {
			return c.JSON(fiber.Map{"success": true, "results": []geocode.Candidate{}})
		}

		results, err := geocoder.Suggest(c.UserContext(), query)
		if err != nil {
			return fail(c, "Location search failed, please try again")
		}
		if results == nil {
			results = []geocode.Candidate{}
		}
		return c.JSON(fiber.Map{"success": true, "results": results})
	})

	app.Get("/recent-searches", func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return c.JSON(fiber.Map{"success": true, "searches": []string{}})
		}
		return c.JSON(fiber.Map{"success": true, "searches": session.RecentSearches(sess)})
	})
}

// weatherRequest is the body of a name-based lookup.
type weatherRequest struct {
	City string `json:"city" validate:"required"`
	Unit string `json:"unit" validate:"omitempty,oneof=celsius fahrenheit"`
}

// coordsRequest is the body of a coordinate-based lookup. Latitude and
// longitude are pointers so a missing field is distinguishable from zero.
type coordsRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Unit      string   `json:"unit" validate:"omitempty,oneof=celsius fahrenheit"`
}

type geocodeRequest struct {
	Query string `json:"query"`
}

// fail renders an expected failure. These are part of the API contract and
// never surface as transport-level errors.
func fail(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": false, "error": msg})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "City":
			return "City name is required"
		case "Unit":
			return "Unit must be celsius or fahrenheit"
		case "Latitude", "Longitude":
			return "Valid coordinates are required"
		}
	}
	return "Invalid request"
}

func lookupErrorMessage(city string, err error) string {
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		if city == "" {
			return "Location not found"
		}
		return fmt.Sprintf("City %q not found", city)
	case errors.Is(err, geocode.ErrUnavailable), errors.Is(err, weather.ErrUpstream):
		return "Weather service request failed, please try again later"
	}

	var schemaErr *weather.SchemaError
	if errors.As(err, &schemaErr) {
		return "Invalid response from weather service"
	}
	return "An unexpected error occurred"
}

func recordRecentSearch(c *fiber.Ctx, sessions *fibersession.Store, city string) {
	sess, err := sessions.Get(c)
	if err != nil {
		log.Printf("session load failed: %v", err)
		return
	}

	list := session.PushRecent(session.RecentSearches(sess), city)
	if err := session.SaveRecentSearches(sess, list); err != nil {
		log.Printf("session save failed: %v", err)
	}
}
