package testutil

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// NewHolding creates a holding on the NSE with a decimal cost basis given as text.
// The fundamentals symbol is the quote symbol without its exchange suffix.
//
// Example usage:
//
//	h := testutil.NewHolding("TCS.NS", 10, "3000", "Technology")
func NewHolding(symbol string, quantity int64, costBasis, sector string) model.Holding {
	return model.Holding{
		Symbol:             symbol,
		FundamentalsSymbol: strings.TrimSuffix(symbol, ".NS"),
		Quantity:           quantity,
		CostBasis:          decimal.RequireFromString(costBasis),
		Sector:             sector,
		Exchange:           "NSE",
	}
}

// NewQuote creates a quote with the given price.
func NewQuote(symbol, price string) *model.Quote {
	return &model.Quote{
		Symbol:   symbol,
		Price:    decimal.RequireFromString(price),
		Currency: "INR",
		Exchange: "NSI",
	}
}

// NewFundamentals creates fundamentals; an empty string leaves that field null.
func NewFundamentals(symbol, peRatio, earnings string) *model.Fundamentals {
	return &model.Fundamentals{
		Symbol:   symbol,
		PERatio:  nullDecimal(peRatio),
		Earnings: nullDecimal(earnings),
	}
}

func nullDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// DefaultHoldings returns the nine seeded NSE holdings in catalogue order.
// It matches the rows inserted by the seed migration.
func DefaultHoldings() []model.Holding {
	rows := []struct {
		symbol string
		qty    int64
		cost   string
		sector string
		logo   string
	}{
		{"TCS.NS", 10, "3000", "Technology", "/logos/tcs.png"},
		{"INFY.NS", 20, "1500", "Technology", "/logos/infosys.png"},
		{"HDFCBANK.NS", 20, "1500", "Financials", "/logos/hdfc_bank.png"},
		{"ICICIBANK.NS", 20, "1500", "Financials", "/logos/icici_bank.png"},
		{"WIPRO.NS", 20, "247", "Technology", "/logos/wipro.png"},
		{"SBIN.NS", 20, "790", "Financials", "/logos/state_bank_of_india.png"},
		{"YESBANK.NS", 20, "21", "Financials", "/logos/yes_bank.png"},
		{"RELIANCE.NS", 10, "1426", "Industrial", "/logos/reliance_industries.png"},
		{"TATAMOTORS.NS", 20, "718", "Automotive", "/logos/tata_motors.png"},
	}

	holdings := make([]model.Holding, 0, len(rows))
	for _, r := range rows {
		h := NewHolding(r.symbol, r.qty, r.cost, r.sector)
		h.LogoURL = r.logo
		holdings = append(holdings, h)
	}
	return holdings
}

// DefaultQuotes returns a fixed quote for every default holding, keyed by symbol.
// The map is freshly allocated so callers may delete entries.
func DefaultQuotes() map[string]*model.Quote {
	prices := map[string]string{
		"TCS.NS":        "3450.55",
		"INFY.NS":       "1422.10",
		"HDFCBANK.NS":   "1980.00",
		"ICICIBANK.NS":  "1410.25",
		"WIPRO.NS":      "251.30",
		"SBIN.NS":       "812.40",
		"YESBANK.NS":    "19.95",
		"RELIANCE.NS":   "1389.70",
		"TATAMOTORS.NS": "690.15",
	}

	quotes := make(map[string]*model.Quote, len(prices))
	for symbol, price := range prices {
		quotes[symbol] = NewQuote(symbol, price)
	}
	return quotes
}

// DefaultFundamentals returns fundamentals for every default holding, keyed by fundamentals symbol.
func DefaultFundamentals() map[string]*model.Fundamentals {
	return map[string]*model.Fundamentals{
		"TCS":        NewFundamentals("TCS", "25.6", "134.19"),
		"INFY":       NewFundamentals("INFY", "22.1", "64.34"),
		"HDFCBANK":   NewFundamentals("HDFCBANK", "21.3", "92.91"),
		"ICICIBANK":  NewFundamentals("ICICIBANK", "18.9", "74.61"),
		"WIPRO":      NewFundamentals("WIPRO", "19.8", "12.68"),
		"SBIN":       NewFundamentals("SBIN", "9.5", "85.50"),
		"YESBANK":    NewFundamentals("YESBANK", "", ""),
		"RELIANCE":   NewFundamentals("RELIANCE", "24.2", "57.43"),
		"TATAMOTORS": NewFundamentals("TATAMOTORS", "8.1", "85.20"),
	}
}
