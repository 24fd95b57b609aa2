package apperrors

import "errors"

// Domain entity errors represent missing entities or unavailable market data.
var (
	// ErrHoldingNotFound indicates that no holding with the given symbol exists in the catalogue.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrQuoteUnavailable indicates that the quote source returned no usable price for a symbol.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrFundamentalsUnavailable indicates that the fundamentals source had no row for a symbol.
	ErrFundamentalsUnavailable = errors.New("fundamentals unavailable")

	// ErrSnapshotNotReady indicates that no refresh cycle has completed yet.
	ErrSnapshotNotReady = errors.New("portfolio data is still loading")

	// ErrNoSectorData indicates there is nothing to chart, e.g. every sector has zero investment.
	ErrNoSectorData = errors.New("no sector data")
)

// Validation errors represent holdings or parameters that break business rules.
var (
	ErrInvalidHolding    = errors.New("invalid holding")
	ErrDuplicateSymbol   = errors.New("duplicate symbol")
	ErrInvalidSymbol     = errors.New("symbol is required")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidCostBasis  = errors.New("cost basis must be positive")
	ErrInvalidMoverCount = errors.New("count must be a positive integer")
)

// Configuration errors are returned while loading settings at startup.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrUnknownProvider = errors.New("unknown fundamentals provider")
)

// Operation failure errors wrap lower level failures at the API boundary.
var (
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToRefresh          = errors.New("failed to refresh portfolio")
	ErrFailedToRenderChart      = errors.New("failed to render sector chart")
	ErrFailedToRenderReport     = errors.New("failed to render report")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)
