// Package app wires configuration into the sources and services shared by
// the HTTP server and the command line tool.
package app

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/google"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/screener"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// App holds the wired components.
type App struct {
	DB           *sql.DB // nil when holdings come from a file
	Holdings     service.HoldingSource
	Quotes       service.QuoteSource
	Fundamentals service.FundamentalsSource // nil when disabled
	Refresh      *service.RefreshService
	Renderer     *renderer.Renderer
}

// New builds the application from cfg. Close must be called when done.
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	a := &App{}

	r, err := renderer.New(cfg.Display.Currency)
	if err != nil {
		return nil, err
	}
	a.Renderer = r

	if cfg.Holdings.File != "" {
		a.Holdings = repository.NewHoldingFileRepository(cfg.Holdings.File)
		logger.Info().Str("file", cfg.Holdings.File).Msg("Reading holdings from file")
	} else {
		db, err := openDatabase(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.Holdings = repository.NewHoldingRepository(db)
		logger.Info().Str("path", cfg.Database.Path).Msg("Connected to database")
	}

	a.Quotes = yahoo.NewFinanceClient(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithRateLimit(cfg.Yahoo.RateLimit),
		yahoo.WithTimeout(cfg.Yahoo.Timeout),
		yahoo.WithLogger(logger.Component("yahoo")),
	)

	a.Fundamentals, err = NewFundamentalsSource(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := []service.RefreshOption{
		service.WithInterval(cfg.Refresh.Interval),
		service.WithFetchTimeout(cfg.Refresh.FetchTimeout),
		service.WithConcurrency(cfg.Refresh.Concurrency),
		service.WithMoverCount(cfg.Refresh.MoverCount),
		service.WithRefreshLogger(logger.Component("refresh")),
	}
	if a.Fundamentals != nil {
		opts = append(opts, service.WithFundamentals(a.Fundamentals))
	}
	a.Refresh = service.NewRefreshService(a.Holdings, a.Quotes, opts...)

	return a, nil
}

// NewFundamentalsSource returns the configured fundamentals provider, or nil
// when fundamentals are disabled. A sheet provider without a URL is treated
// as disabled.
func NewFundamentalsSource(cfg *config.Config, logger *logging.Logger) (service.FundamentalsSource, error) {
	fc := cfg.Fundamentals

	switch fc.Provider {
	case config.ProviderSheet:
		if fc.SheetURL == "" {
			logger.Warn().Msg("FUNDAMENTALS_SHEET_URL is not set, P/E and EPS will be empty")
			return nil, nil
		}
		return google.NewSheetClient(fc.SheetURL,
			google.WithRowsPath(fc.SheetRowsPath),
			google.WithCacheTTL(fc.SheetCacheTTL),
			google.WithLogger(logger.Component("sheet")),
		), nil

	case config.ProviderScreener:
		return screener.NewClient(
			screener.WithBaseURL(fc.ScreenerBaseURL),
			screener.WithRateLimit(fc.RateLimit),
			screener.WithLogger(logger.Component("screener")),
		), nil

	case config.ProviderNone:
		return nil, nil

	default:
		return nil, fmt.Errorf("%w %q", apperrors.ErrUnknownProvider, fc.Provider)
	}
}

// Close releases the database, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDatabase(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
