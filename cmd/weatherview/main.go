package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	httpapi "github.com/akarpova/weatherview/internal/api/http"
	"github.com/akarpova/weatherview/internal/cache"
	"github.com/akarpova/weatherview/internal/config"
	"github.com/akarpova/weatherview/internal/geocode"
	"github.com/akarpova/weatherview/internal/scheduler"
	"github.com/akarpova/weatherview/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Upstream clients.
	geocoder := geocode.NewClient(httpClient, cfg.GeocodeURL, cfg.GeocodeTimeout)
	fetcher := weather.NewFetcher(httpClient, weather.FetcherConfig{
		ForecastURL:       cfg.ForecastURL,
		AirQualityURL:     cfg.AirQualityURL,
		ForecastTimeout:   cfg.ForecastTimeout,
		AirQualityTimeout: cfg.AirQualityTimeout,
	})

	// Result cache with lazy expiry, plus a janitor bounding its memory.
	reportCache := cache.New[*weather.Report](cfg.CacheTTL)
	janitor := scheduler.New(reportCache, cfg.CacheSweepInterval)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer janitor.Stop()

	// Core service orchestrating geocoder, fetcher and cache.
	service := weather.NewService(geocoder, fetcher, reportCache)

	// Per-client session store for recent searches.
	sessions := fibersession.New(fibersession.Config{
		Expiration: 24 * time.Hour,
	})

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherview",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherview",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, geocoder, sessions, httpapi.Limits{
		WeatherPerMinute: cfg.WeatherRateLimit,
		GeocodePerMinute: cfg.GeocodeRateLimit,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
