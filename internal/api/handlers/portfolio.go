package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	refreshService   *service.RefreshService
	renderer         *renderer.Renderer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, refreshService *service.RefreshService, r *renderer.Renderer) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		refreshService:   refreshService,
		renderer:         r,
	}
}

// Portfolio returns the full current snapshot.
//
// Endpoint: GET /api/portfolio
// Error: 503 until the first refresh cycle has completed
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	snap, err := h.portfolioService.GetPortfolio()
	if err != nil {
		response.RespondServiceError(w, err, "failed to get portfolio")
		return
	}

	w.Header().Set("X-Snapshot-Id", snap.ID)
	response.RespondJSON(w, http.StatusOK, snap)
}

// Holdings returns the valued holdings, optionally filtered by ?search=.
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	req := request.ParseHoldingsRequest(r)

	holdings, err := h.portfolioService.GetHoldings(req.Search)
	if err != nil {
		response.RespondServiceError(w, err, "failed to get holdings")
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// Holding returns one valued holding.
//
// Endpoint: GET /api/portfolio/holdings/{symbol}
// Error: 400 for a malformed symbol, 404 if the symbol is not held
func (h *PortfolioHandler) Holding(w http.ResponseWriter, r *http.Request) {
	symbol, err := request.SymbolParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid symbol", err.Error())
		return
	}

	holding, err := h.portfolioService.GetHolding(symbol)
	if err != nil {
		response.RespondServiceError(w, err, "failed to get holding")
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// Sectors returns the sector summaries.
func (h *PortfolioHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.portfolioService.GetSectors()
	if err != nil {
		response.RespondServiceError(w, err, "failed to get sectors")
		return
	}

	response.RespondJSON(w, http.StatusOK, sectors)
}

// Totals returns the grand totals across all holdings.
func (h *PortfolioHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.portfolioService.GetTotals()
	if err != nil {
		response.RespondServiceError(w, err, "failed to get totals")
		return
	}

	response.RespondJSON(w, http.StatusOK, totals)
}

// SectorChart returns a PNG pie chart of investment by sector.
func (h *PortfolioHandler) SectorChart(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.portfolioService.GetSectors()
	if err != nil {
		response.RespondServiceError(w, err, "failed to get sectors")
		return
	}

	png, err := renderer.RenderSectorChart(sectors)
	if err != nil {
		response.RespondServiceError(w, err, "failed to render sector chart")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	response.RespondBytes(w, http.StatusOK, "image/png", png)
}

// Movers returns the top gainers and losers.
//
// Endpoint: GET /api/portfolio/movers?count=N
// Error: 400 if count is not a positive integer
func (h *PortfolioHandler) Movers(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseMoversRequest(r, h.refreshService.MoverCount())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid count", err.Error())
		return
	}

	movers, err := h.portfolioService.GetMovers(req.Count)
	if err != nil {
		response.RespondServiceError(w, err, "failed to get movers")
		return
	}

	response.RespondJSON(w, http.StatusOK, movers)
}

// Report returns the snapshot as a markdown document.
func (h *PortfolioHandler) Report(w http.ResponseWriter, r *http.Request) {
	snap, err := h.portfolioService.GetPortfolio()
	if err != nil {
		response.RespondServiceError(w, err, "failed to get portfolio")
		return
	}

	md, err := h.renderer.Report(snap)
	if err != nil {
		response.RespondServiceError(w, err, "failed to render report")
		return
	}

	response.RespondBytes(w, http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// Refresh runs a refresh cycle now and returns the new snapshot.
//
// Endpoint: POST /api/portfolio/refresh
// Error: 500 if the holdings could not be loaded, 400 if they are invalid
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.refreshService.Refresh(r.Context())
	if err != nil {
		response.RespondServiceError(w, err, "failed to refresh portfolio")
		return
	}

	w.Header().Set("X-Snapshot-Id", snap.ID)
	response.RespondJSON(w, http.StatusOK, snap)
}
