// Package request parses and validates query and path parameters.
package request

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// MoversRequest holds the parsed query of GET /api/portfolio/movers.
type MoversRequest struct {
	Count int
}

// ParseMoversRequest reads the optional count parameter, which must be a
// positive integer when present.
func ParseMoversRequest(r *http.Request, defaultCount int) (MoversRequest, error) {
	count, err := validation.ParseMoverCount(r.URL.Query().Get("count"), defaultCount)
	if err != nil {
		return MoversRequest{}, err
	}
	return MoversRequest{Count: count}, nil
}

// HoldingsRequest holds the parsed query of GET /api/portfolio/holdings.
type HoldingsRequest struct {
	Search string
}

// ParseHoldingsRequest reads the optional search parameter.
func ParseHoldingsRequest(r *http.Request) HoldingsRequest {
	return HoldingsRequest{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
}

// SymbolParam reads and validates the {symbol} path parameter.
func SymbolParam(r *http.Request) (string, error) {
	symbol := strings.TrimSpace(chi.URLParam(r, "symbol"))
	if err := validation.ValidateSymbol(symbol); err != nil {
		return "", err
	}
	return symbol, nil
}
