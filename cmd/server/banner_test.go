package main

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	prev := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = prev
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPrintBanner(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Addr = "localhost:5001"
	cfg.Holdings.File = "holdings.toml"
	cfg.Fundamentals.Provider = config.ProviderScreener
	cfg.Refresh.Interval = 15 * time.Second
	cfg.Display.Currency = "INR"

	out := captureStdout(t, func() { printBanner(cfg, logging.NewSilent()) })

	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "╚")
	assert.Contains(t, out, "Live Portfolio Dashboard")
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, version.Version)
	assert.Contains(t, out, "http://localhost:5001")
	assert.Contains(t, out, "holdings.toml")
	assert.Contains(t, out, "screener")
	assert.Contains(t, out, "15s")
}

func TestPrintShutdownBanner(t *testing.T) {
	out := captureStdout(t, func() { printShutdownBanner(logging.NewSilent()) })

	assert.Contains(t, out, "SHUTTING DOWN")
}
