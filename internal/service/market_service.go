package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// QuoteResult is a single-symbol price lookup; CMP is null when unavailable.
type QuoteResult struct {
	Symbol string              `json:"symbol"`
	CMP    decimal.NullDecimal `json:"cmp"`
}

// MarketService performs direct lookups against the configured sources,
// outside of any refresh cycle. Lookups never fail: an unavailable value is
// reported as null, matching how the refresh cycle treats it.
type MarketService struct {
	quotes       QuoteSource
	fundamentals FundamentalsSource
	logger       *logging.Logger
}

// NewMarketService creates a MarketService. fundamentals may be nil.
func NewMarketService(quotes QuoteSource, fundamentals FundamentalsSource, logger *logging.Logger) *MarketService {
	return &MarketService{
		quotes:       quotes,
		fundamentals: fundamentals,
		logger:       logger,
	}
}

// GetQuote looks up the current market price for symbol.
func (s *MarketService) GetQuote(ctx context.Context, symbol string) QuoteResult {
	res := QuoteResult{Symbol: symbol}

	q, err := s.quotes.Quote(ctx, symbol)
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Quote lookup failed")
		return res
	}

	res.CMP = decimal.NewNullDecimal(q.Price)
	return res
}

// GetFundamentals looks up P/E and EPS for symbol.
func (s *MarketService) GetFundamentals(ctx context.Context, symbol string) model.Fundamentals {
	res := model.Fundamentals{Symbol: symbol}
	if s.fundamentals == nil {
		return res
	}

	f, err := s.fundamentals.Fundamentals(ctx, symbol)
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Fundamentals lookup failed")
		return res
	}

	res.PERatio = f.PERatio
	res.Earnings = f.Earnings
	return res
}
