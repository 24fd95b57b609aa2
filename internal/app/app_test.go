package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/google"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/screener"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "data", "dashboard.db")
	cfg.Refresh = config.RefreshConfig{
		Interval:     time.Minute,
		FetchTimeout: time.Second,
		Concurrency:  2,
		MoverCount:   3,
	}
	cfg.Yahoo = config.YahooConfig{BaseURL: "http://127.0.0.1:1", RateLimit: 1, Timeout: time.Second}
	cfg.Fundamentals = config.FundamentalsConfig{Provider: config.ProviderNone, RateLimit: 1}
	cfg.Display.Currency = "INR"
	return cfg
}

func TestNewFundamentalsSource(t *testing.T) {
	logger := logging.NewSilent()

	t.Run("sheet", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Fundamentals.Provider = config.ProviderSheet
		cfg.Fundamentals.SheetURL = "http://example.test/sheet"

		src, err := NewFundamentalsSource(cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &google.SheetClient{}, src)
	})

	t.Run("sheet without url is disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Fundamentals.Provider = config.ProviderSheet

		src, err := NewFundamentalsSource(cfg, logger)
		require.NoError(t, err)
		assert.Nil(t, src)
	})

	t.Run("screener", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Fundamentals.Provider = config.ProviderScreener

		src, err := NewFundamentalsSource(cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &screener.Client{}, src)
	})

	t.Run("none", func(t *testing.T) {
		src, err := NewFundamentalsSource(testConfig(t), logger)
		require.NoError(t, err)
		assert.Nil(t, src)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Fundamentals.Provider = "bloomberg"

		_, err := NewFundamentalsSource(cfg, logger)
		assert.ErrorIs(t, err, apperrors.ErrUnknownProvider)
	})
}

func TestNew_Database(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, logging.NewSilent())
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.DB)
	assert.Nil(t, a.Fundamentals)
	assert.Equal(t, 3, a.Refresh.MoverCount())

	holdings, err := a.Holdings.GetHoldings(context.Background())
	require.NoError(t, err)
	assert.Len(t, holdings, 9, "seeded catalogue")
}

func TestNew_HoldingsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Holdings.File = filepath.Join(t.TempDir(), "holdings.toml")
	require.NoError(t, os.WriteFile(cfg.Holdings.File, []byte(`
[[holding]]
symbol = "TCS.NS"
quantity = 10
costBasis = 3000
sector = "Technology"
`), 0o600))

	a, err := New(cfg, logging.NewSilent())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	holdings, err := a.Holdings.GetHoldings(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "TCS.NS", holdings[0].Symbol)
	assert.Equal(t, int64(10), holdings[0].Quantity)
}

func TestNew_UnknownCurrency(t *testing.T) {
	cfg := testConfig(t)
	cfg.Display.Currency = "XXQ"

	_, err := New(cfg, logging.NewSilent())
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}
