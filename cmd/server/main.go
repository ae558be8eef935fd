// Package main is the entry point for the arrivals aggregation service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	arrivalshttp "github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/http"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/http/middleware"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/provider/flightdata"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/provider/schiphol"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/airports"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/cache"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/config"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "arrivals-aggregation",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("home_airport", cfg.Fetch.HomeAirport).
		Msg("Configuration loaded")

	if cfg.Schiphol.AppID == "" || cfg.Schiphol.AppKey == "" {
		log.Warn().Msg("Schiphol credentials not configured, arrivals endpoint will reject requests")
	}
	if cfg.FlightAPI.APIKey == "" {
		log.Warn().Msg("Flight data API key not configured, live endpoint will reject requests")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)
	arrivalshttp.RegisterRoutes(e, buildHandler(cfg, log))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// buildHandler wires the provider clients, the metadata resolver, the
// response caches and the orchestrators into the HTTP handler.
func buildHandler(cfg *config.Config, log *logger.Logger) *arrivalshttp.ArrivalsHandler {
	loc := timeutil.MustGetLocation(cfg.Fetch.Timezone)

	schipholClient := schiphol.NewClient(cfg.Schiphol.AppID, cfg.Schiphol.AppKey,
		schiphol.WithBaseURL(cfg.Schiphol.BaseURL),
		schiphol.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.Fetch.RateLimit), 1)),
		schiphol.WithLogger(log),
	)
	scheduledFeed := schiphol.NewFeed(schipholClient, cfg.Fetch.HomeAirport, loc)

	flightClient := flightdata.NewClient(cfg.FlightAPI.APIKey,
		flightdata.WithBaseURL(cfg.FlightAPI.BaseURL),
		flightdata.WithLogger(log),
	)
	statusFeed := flightdata.NewFeed(flightClient)

	resolver := airports.NewResolver(airports.Config{
		BaseURL:    cfg.FlightAPI.BaseURL,
		APIKey:     cfg.FlightAPI.APIKey,
		DatasetURL: cfg.Airports.DatasetURL,
		CallBudget: cfg.Airports.CallBudget,
		TableTTL:   cfg.Airports.TableTTL,
	}, nil, nil, log)
	enricher := usecase.NewEnricher(resolver)

	arrivalsCache := cache.New[domain.ArrivalsResponse](cfg.Cache.ArrivalsTTL, nil)
	liveCache := cache.New[domain.ArrivalsResponse](cfg.Cache.LiveTTL, nil)

	arrivalsUC := usecase.NewArrivalsUseCase(scheduledFeed, enricher, arrivalsCache, nil, usecase.ArrivalsConfig{
		Timezone:        cfg.Fetch.Timezone,
		MaxPages:        cfg.Fetch.MaxPages,
		ArrivalsPerHour: cfg.Fetch.ArrivalsPerHour,
		PageSize:        cfg.Fetch.PageSize,
	}, log)
	liveUC := usecase.NewLiveArrivalsUseCase(statusFeed, enricher, liveCache, nil, cfg.Fetch.Timezone, log)

	return arrivalshttp.NewArrivalsHandler(arrivalsUC, liveUC, cfg.Fetch.HomeAirport, log)
}

// gracefulShutdown blocks until an interrupt signal, then drains the server.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
