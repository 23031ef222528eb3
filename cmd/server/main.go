// Package main is the entry point for the flight deal ranker service.
//
//	@title						Flight Deal Ranker API
//	@version					1.0.0
//	@description				A flight deal ranking service that fetches offers across a destination group and flexible date window, scores them, and returns ranked recommendations.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-monitor/flight-deal-ranker/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
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
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-monitor/flight-deal-ranker/docs"

	rankerhttp "github.com/flight-monitor/flight-deal-ranker/internal/adapter/http"
	"github.com/flight-monitor/flight-deal-ranker/internal/adapter/http/middleware"
	"github.com/flight-monitor/flight-deal-ranker/internal/adapter/history/postgres"
	"github.com/flight-monitor/flight-deal-ranker/internal/adapter/source/amadeus"
	"github.com/flight-monitor/flight-deal-ranker/internal/config"
	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/logger"
	"github.com/flight-monitor/flight-deal-ranker/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	settings, err := buildSettings(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build ranking settings")
	}

	store := setupHistoryStore(cfg, log)
	pipeline := setupPipeline(cfg, settings, store, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	handler := rankerhttp.NewRankingHandler(pipeline)
	rankerhttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// setupLogger configures and installs the global logger.
func setupLogger(cfg *config.Config) *logger.Logger {
	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-deal-ranker",
	})
	logger.SetGlobal(log)
	return log
}

// buildSettings assembles the immutable ranking settings from env config.
func buildSettings(cfg *config.Config) (usecase.Settings, error) {
	groups, err := cfg.Ranking.ParseGroups()
	if err != nil {
		return usecase.Settings{}, err
	}
	rates, err := cfg.Ranking.ParseConversionRates()
	if err != nil {
		return usecase.Settings{}, err
	}

	return usecase.Settings{
		Weights: usecase.Weights{
			Price:    cfg.Ranking.WeightPrice,
			Duration: cfg.Ranking.WeightDuration,
			Stops:    cfg.Ranking.WeightStops,
			Layover:  cfg.Ranking.WeightLayover,
		},
		MinLayover:         cfg.Ranking.MinLayover,
		MaxLayover:         cfg.Ranking.MaxLayover,
		LayoverCap:         cfg.Ranking.LayoverCap,
		StopCeiling:        cfg.Ranking.StopCeiling,
		DealThreshold:      cfg.Ranking.DealThreshold,
		MinSamples:         cfg.Ranking.MinSamples,
		HistoryWindow:      cfg.Ranking.HistoryWindow,
		ReferenceCurrency:  cfg.Ranking.ReferenceCurrency,
		ConversionRates:    rates,
		Convenience:        cfg.Ranking.ConvenienceMap(),
		ConvenienceDefault: cfg.Ranking.DefaultCoefficient,
		Groups:             groups,
	}, nil
}

// setupHistoryStore opens the postgres history store when a DSN is
// configured. Without one the service runs with deal detection disabled.
func setupHistoryStore(cfg *config.Config, log *logger.Logger) domain.HistoryStore {
	if cfg.History.DSN == "" {
		log.Warn().Msg("No HISTORY_DSN configured; deal detection disabled")
		return nil
	}

	store, err := postgres.NewStore(cfg.History.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history store")
	}
	log.Info().Msg("History store connected")
	return store
}

// setupPipeline wires the offer sources and the ranking pipeline.
func setupPipeline(cfg *config.Config, settings usecase.Settings, store domain.HistoryStore, log *logger.Logger) usecase.RankingPipeline {
	var source *amadeus.Adapter
	if cfg.Source.AmadeusBaseURL != "" {
		source = amadeus.NewHTTPAdapter(cfg.Source.AmadeusBaseURL, cfg.Source.RequestsPerSecond)
		log.Info().Str("base_url", cfg.Source.AmadeusBaseURL).Msg("Using live offer source")
	} else {
		source = amadeus.NewAdapter(cfg.Source.AmadeusFixture)
		log.Info().Str("fixture", cfg.Source.AmadeusFixture).Msg("Using fixture-backed offer source")
	}

	pipelineCfg := &usecase.Config{
		GlobalTimeout: cfg.Timeouts.GlobalRank,
		FetchTimeout:  cfg.Timeouts.PerFetch,
	}
	pipeline := usecase.NewRankingPipeline(
		[]domain.OfferSource{source},
		store,
		settings,
		pipelineCfg,
		nil,
		log,
	)

	if store != nil {
		pipeline = usecase.NewRecordingPipeline(pipeline, store, nil, log)
	}
	return pipeline
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
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
