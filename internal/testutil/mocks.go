package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// MockQuoteSource is an in-memory quote source for testing.
// Symbols missing from Quotes are reported as unavailable.
type MockQuoteSource struct {
	mu     sync.Mutex
	Quotes map[string]*model.Quote
	Errors map[string]error
	// Block, when set, makes every call wait until it is closed or ctx is done.
	Block chan struct{}

	calls atomic.Int64
}

// NewMockQuoteSource creates a mock answering with DefaultQuotes.
func NewMockQuoteSource() *MockQuoteSource {
	return &MockQuoteSource{
		Quotes: DefaultQuotes(),
		Errors: map[string]error{},
	}
}

// Quote implements the quote source interface.
func (m *MockQuoteSource) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	m.calls.Add(1)

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	q, ok := m.Quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrQuoteUnavailable, symbol)
	}
	cp := *q
	return &cp, nil
}

// SetQuote replaces the quote for symbol; a nil quote removes it.
func (m *MockQuoteSource) SetQuote(symbol string, q *model.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q == nil {
		delete(m.Quotes, symbol)
		return
	}
	m.Quotes[symbol] = q
}

// WithError makes symbol fail with err.
func (m *MockQuoteSource) WithError(symbol string, err error) *MockQuoteSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[symbol] = err
	return m
}

// Calls returns how many times Quote has been called.
func (m *MockQuoteSource) Calls() int {
	return int(m.calls.Load())
}

// MockFundamentalsSource is an in-memory fundamentals source for testing.
type MockFundamentalsSource struct {
	mu   sync.Mutex
	Rows map[string]*model.Fundamentals
	Err  error

	calls atomic.Int64
}

// NewMockFundamentalsSource creates a mock answering with DefaultFundamentals.
func NewMockFundamentalsSource() *MockFundamentalsSource {
	return &MockFundamentalsSource{Rows: DefaultFundamentals()}
}

// Fundamentals implements the fundamentals source interface.
func (m *MockFundamentalsSource) Fundamentals(_ context.Context, symbol string) (*model.Fundamentals, error) {
	m.calls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	f, ok := m.Rows[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFundamentalsUnavailable, symbol)
	}
	cp := *f
	return &cp, nil
}

// Calls returns how many times Fundamentals has been called.
func (m *MockFundamentalsSource) Calls() int {
	return int(m.calls.Load())
}

// MockHoldingSource serves a fixed holding list.
type MockHoldingSource struct {
	Holdings []model.Holding
	Err      error
}

// NewMockHoldingSource creates a holding source over DefaultHoldings.
func NewMockHoldingSource() *MockHoldingSource {
	return &MockHoldingSource{Holdings: DefaultHoldings()}
}

// GetHoldings implements the holding source interface.
func (m *MockHoldingSource) GetHoldings(_ context.Context) ([]model.Holding, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]model.Holding(nil), m.Holdings...), nil
}
