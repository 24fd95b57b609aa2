package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/hub"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	refreshService *service.RefreshService,
	marketService *service.MarketService,
	reportRenderer *renderer.Renderer,
	snapshotHub *hub.Hub,
	logger *logging.Logger,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService, refreshService, reportRenderer)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/holdings", portfolioHandler.Holdings)
			r.Get("/holdings/{symbol}", portfolioHandler.Holding)
			r.Get("/totals", portfolioHandler.Totals)
			r.Get("/sectors", portfolioHandler.Sectors)
			r.Get("/sectors/chart.png", portfolioHandler.SectorChart)
			r.Get("/movers", portfolioHandler.Movers)
			r.Get("/report", portfolioHandler.Report)
			r.Post("/refresh", portfolioHandler.Refresh)
			r.Get("/stream", snapshotHub.ServeWS)
		})

		marketHandler := handlers.NewMarketHandler(marketService)
		r.Get("/quote/{symbol}", marketHandler.Quote)
		r.Get("/fundamentals/{symbol}", marketHandler.Fundamentals)
	})

	return r
}
