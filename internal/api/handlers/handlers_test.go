package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

type fixture struct {
	holdings     *testutil.MockHoldingSource
	quotes       *testutil.MockQuoteSource
	fundamentals *testutil.MockFundamentalsSource
	refresh      *service.RefreshService
	portfolio    *PortfolioHandler
	market       *MarketHandler
}

// newFixture wires handlers over mock sources. With refreshed set, one
// cycle has already run.
func newFixture(t *testing.T, refreshed bool) *fixture {
	t.Helper()

	f := &fixture{
		holdings:     testutil.NewMockHoldingSource(),
		quotes:       testutil.NewMockQuoteSource(),
		fundamentals: testutil.NewMockFundamentalsSource(),
	}
	f.refresh = service.NewRefreshService(f.holdings, f.quotes,
		service.WithFundamentals(f.fundamentals),
		service.WithFetchTimeout(time.Second),
	)
	if refreshed {
		_, err := f.refresh.Refresh(context.Background())
		require.NoError(t, err)
	}

	r, err := renderer.New("INR")
	require.NoError(t, err)

	f.portfolio = NewPortfolioHandler(service.NewPortfolioService(f.refresh), f.refresh, r)
	f.market = NewMarketHandler(service.NewMarketService(f.quotes, f.fundamentals, logging.NewSilent()))
	return f
}
