package weather

import (
	"context"
	"strings"

	"github.com/akarpova/weatherview/internal/cache"
)

// Geocoder resolves place names to coordinates and back.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (Location, error)
	Reverse(ctx context.Context, lat, lon float64) (Location, error)
}

// ForecastSource fetches the raw provider payloads for a location.
type ForecastSource interface {
	Fetch(ctx context.Context, loc Location, unit UnitSystem) (*Bundle, error)
}

// Service runs the lookup pipeline: resolve the location, then serve the
// shaped report from cache or compute it from a fresh fetch.
type Service struct {
	geocoder Geocoder
	source   ForecastSource
	cache    *cache.Cache[*Report]
}

// NewService creates a Service.
func NewService(geocoder Geocoder, source ForecastSource, reportCache *cache.Cache[*Report]) *Service {
	return &Service{
		geocoder: geocoder,
		source:   source,
		cache:    reportCache,
	}
}

// CityWeather resolves a city name and returns its report. The cache key is
// the city name as given by the caller, together with the unit system.
func (s *Service) CityWeather(ctx context.Context, city string, unit UnitSystem) (*Report, error) {
	loc, err := s.geocoder.Resolve(ctx, city)
	if err != nil {
		return nil, err
	}
	return s.cachedReport(ctx, city, loc, unit)
}

// CoordsWeather reverse-geocodes a coordinate pair and runs the same cached
// pipeline under the derived city name. The resolved name is returned so the
// caller can display it.
func (s *Service) CoordsWeather(ctx context.Context, lat, lon float64, unit UnitSystem) (*Report, error) {
	loc, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return s.cachedReport(ctx, loc.Name, loc, unit)
}

func (s *Service) cachedReport(ctx context.Context, city string, loc Location, unit UnitSystem) (*Report, error) {
	key := cacheKey(city, unit)
	return s.cache.GetOrCompute(key, func() (*Report, error) {
		bundle, err := s.source.Fetch(ctx, loc, unit)
		if err != nil {
			return nil, err
		}
		return Shape(loc, bundle, unit)
	})
}

func cacheKey(city string, unit UnitSystem) string {
	return strings.TrimSpace(city) + "\x00" + string(unit)
}
