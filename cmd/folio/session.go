package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// stdout is where commands write their output.
var stdout io.Writer = os.Stdout

// session is one refreshed view of the portfolio.
type session struct {
	portfolio  *service.PortfolioService
	market     *service.MarketService
	renderer   *renderer.Renderer
	moverCount int
	close      func() error
}

// openSession loads configuration and runs a single refresh cycle.
// Tests replace it with a fixture.
var openSession = func(ctx context.Context, refresh bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(*logLevel)
	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	if refresh {
		if _, err := a.Refresh.Refresh(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	return &session{
		portfolio:  service.NewPortfolioService(a.Refresh),
		market:     service.NewMarketService(a.Quotes, a.Fundamentals, logger.Component("market")),
		renderer:   a.Renderer,
		moverCount: cfg.Refresh.MoverCount,
		close:      a.Close,
	}, nil
}

func (s *session) Close() {
	if s.close != nil {
		_ = s.close()
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
