package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// Outbound HTTP client budget shared by all upstream calls.
	HTTPTimeout time.Duration

	// Upstream endpoints. Overridable so tests can point at local fakes.
	ForecastURL   string
	AirQualityURL string
	GeocodeURL    string

	// Per-call budgets. The air quality call is best-effort and gets a
	// shorter one than the primary forecast call.
	ForecastTimeout   time.Duration
	AirQualityTimeout time.Duration
	GeocodeTimeout    time.Duration

	// Result cache.
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Per-route request limits, per client per minute.
	WeatherRateLimit int
	GeocodeRateLimit int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.ForecastURL = getenvDefault("FORECAST_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.AirQualityURL = getenvDefault("AIR_QUALITY_URL", "https://air-quality-api.open-meteo.com/v1/air-quality")
	cfg.GeocodeURL = getenvDefault("GEOCODE_URL", "https://geocoding-api.open-meteo.com/v1")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.ForecastTimeout, err = getenvDuration("FORECAST_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.AirQualityTimeout, err = getenvDuration("AIR_QUALITY_TIMEOUT", "4s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeTimeout, err = getenvDuration("GEOCODE_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.CacheSweepInterval, err = getenvDuration("CACHE_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, err
	}

	cfg.WeatherRateLimit = getenvInt("WEATHER_RATE_LIMIT", 30)
	cfg.GeocodeRateLimit = getenvInt("GEOCODE_RATE_LIMIT", 60)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
