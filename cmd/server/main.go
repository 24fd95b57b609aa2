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

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/hub"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level)
	if cfg.Logging.JSON {
		logger = logging.NewJSON(cfg.Logging.Level)
	}
	log.Logger = logger.Logger

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialise application")
	}
	defer a.Close()

	snapshotHub := hub.New(logger.Component("hub"), cfg.CORS.AllowedOrigins)
	go snapshotHub.Run()
	a.Refresh.Subscribe(snapshotHub.Publish)

	// Create services
	systemService := service.NewSystemService(a.DB, a.Refresh, 3*cfg.Refresh.Interval)
	portfolioService := service.NewPortfolioService(a.Refresh)
	marketService := service.NewMarketService(a.Quotes, a.Fundamentals, logger.Component("market"))

	// Create router
	router := api.NewRouter(systemService, portfolioService, a.Refresh, marketService, a.Renderer, snapshotHub, logger, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	printBanner(cfg, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Requests get 503 until the first cycle completes.
	ctx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	a.Refresh.Start(ctx)

	// Wait for interrupt signal for graceful shutdown
	<-quit

	printShutdownBanner(logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	stopRefresh()
	a.Refresh.Stop()
	snapshotHub.Stop()

	logger.Info().Msg("Server exited")
}
