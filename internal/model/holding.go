package model

import "github.com/shopspring/decimal"

// Holding represents one position in the portfolio catalogue.
// Quantity and CostBasis never change after the holding is loaded; everything
// market-derived lives on ValuedHolding.
type Holding struct {
	Symbol             string          `json:"symbol"`             // Quote lookup key, unique within a portfolio
	FundamentalsSymbol string          `json:"fundamentalsSymbol"` // Lookup key for the fundamentals source
	Quantity           int64           `json:"quantity"`
	CostBasis          decimal.Decimal `json:"costBasis"` // Purchase price per unit
	Sector             string          `json:"sector"`
	Exchange           string          `json:"exchange"`
	LogoURL            string          `json:"logoUrl,omitempty"`
}

// Quote is the current market price (CMP) for a symbol at a point in time.
// A nil *Quote means the source could not answer.
type Quote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
	Exchange string          `json:"exchange,omitempty"`
}

// Fundamentals carries the price-to-earnings ratio and latest earnings per share.
// A nil *Fundamentals means the source could not answer; individual fields may
// still be missing when the provider returned a partial row.
type Fundamentals struct {
	Symbol   string              `json:"symbol"`
	PERatio  decimal.NullDecimal `json:"peRatio"`
	Earnings decimal.NullDecimal `json:"earnings"`
}
