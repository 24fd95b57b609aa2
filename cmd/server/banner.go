package main

import (
	"fmt"

	"github.com/ternarybob/banner"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

func newBanner(width int) *banner.Banner {
	return banner.New().
		SetStyle(banner.StyleDouble).
		SetWidth(width).
		SetBorderColor(banner.ColorCyan).
		SetTextColor(banner.ColorWhite).
		SetBold(true)
}

// printBanner writes the boxed startup banner to stdout.
func printBanner(cfg *config.Config, logger *logging.Logger) {
	serviceURL := fmt.Sprintf("http://%s", cfg.Server.Addr)
	holdings := cfg.Database.Path
	if cfg.Holdings.File != "" {
		holdings = cfg.Holdings.File
	}

	art := []string{
		` ___  ___  ___  _____  ___  ___  _     ___  ___`,
		`| _ \/ _ \| _ \|_   _|| __|/ _ \| |   |_ _|/ _ \`,
		`|  _/ (_) |   /  | |  | _|| (_) | |__  | || (_) |`,
		`|_|  \___/|_|_\  |_|  |_|  \___/|____||___|\___/`,
	}

	b := newBanner(66)
	fmt.Println()
	b.PrintTopLine()
	b.PrintEmptyLine()
	for _, line := range art {
		b.PrintCenteredText(line)
	}
	b.PrintEmptyLine()
	b.PrintCenteredText("Live Portfolio Dashboard")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", version.Version, 14)
	b.PrintKeyValue("Service URL", serviceURL, 14)
	b.PrintKeyValue("Holdings", holdings, 14)
	b.PrintKeyValue("Fundamentals", cfg.Fundamentals.Provider, 14)
	b.PrintKeyValue("Refresh", cfg.Refresh.Interval.String(), 14)
	b.PrintKeyValue("Currency", cfg.Display.Currency, 14)
	b.PrintBottomLine()
	fmt.Println()

	logger.Info().
		Str("version", version.Version).
		Str("service_url", serviceURL).
		Str("holdings", holdings).
		Str("fundamentals", cfg.Fundamentals.Provider).
		Dur("refresh_interval", cfg.Refresh.Interval).
		Msg("Application started")
}

func printShutdownBanner(logger *logging.Logger) {
	b := newBanner(42)
	fmt.Println()
	b.PrintTopLine()
	b.PrintCenteredText("PORTFOLIO DASHBOARD: SHUTTING DOWN")
	b.PrintBottomLine()
	fmt.Println()

	logger.Info().Msg("Application shutting down")
}
