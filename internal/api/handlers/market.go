package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// MarketHandler serves direct quote and fundamentals lookups.
// Unavailable values are returned as null with 200 OK.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// Quote handles GET /api/quote/{symbol} and responds with {symbol, cmp}.
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol, err := request.SymbolParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid symbol", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.marketService.GetQuote(r.Context(), symbol))
}

// Fundamentals handles GET /api/fundamentals/{symbol} and responds with
// {symbol, peRatio, earnings}.
func (h *MarketHandler) Fundamentals(w http.ResponseWriter, r *http.Request) {
	symbol, err := request.SymbolParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid symbol", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.marketService.GetFundamentals(r.Context(), symbol))
}
