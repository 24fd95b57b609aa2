package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuedHolding is a Holding merged with its latest Quote and Fundamentals.
// It is rebuilt in full on every refresh cycle.
type ValuedHolding struct {
	Holding
	CMP              decimal.NullDecimal `json:"cmp"` // Current market price, null when the quote was unavailable
	QuoteUnavailable bool                `json:"quoteUnavailable"`
	PERatio          decimal.NullDecimal `json:"peRatio"`
	LatestEarnings   decimal.NullDecimal `json:"latestEarnings"`
	Investment       decimal.Decimal     `json:"investment"`   // Quantity × cost basis
	PresentValue     decimal.Decimal     `json:"presentValue"` // Quantity × CMP, zero without a quote
	GainLoss         decimal.Decimal     `json:"gainLoss"`     // PresentValue − Investment
}

// HasQuote reports whether the holding was valued against a live price.
func (v ValuedHolding) HasQuote() bool {
	return v.CMP.Valid
}

// SectorSummary aggregates valued holdings sharing a sector classification.
type SectorSummary struct {
	Sector       string          `json:"sector"`
	Investment   decimal.Decimal `json:"investment"`
	PresentValue decimal.Decimal `json:"presentValue"`
	GainLoss     decimal.Decimal `json:"gainLoss"`
}

// TopMovers holds the best and worst performing holdings of a snapshot.
// Gainers are ordered by gain/loss descending, losers by gain/loss ascending.
type TopMovers struct {
	Gainers []ValuedHolding `json:"gainers"`
	Losers  []ValuedHolding `json:"losers"`
}

// PortfolioTotals are the grand totals over every valued holding.
type PortfolioTotals struct {
	Investment   decimal.Decimal `json:"investment"`
	PresentValue decimal.Decimal `json:"presentValue"`
	GainLoss     decimal.Decimal `json:"gainLoss"`
}

// Snapshot is the complete output of one refresh cycle. A snapshot is never
// modified after it has been published.
type Snapshot struct {
	ID                   string          `json:"id"`
	GeneratedAt          time.Time       `json:"generatedAt"`
	Holdings             []ValuedHolding `json:"holdings"`
	Sectors              []SectorSummary `json:"sectors"`
	Movers               TopMovers       `json:"movers"`
	Totals               PortfolioTotals `json:"totals"`
	QuoteFailures        int             `json:"quoteFailures"`
	FundamentalsFailures int             `json:"fundamentalsFailures"`
}
