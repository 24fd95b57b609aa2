package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Error collects per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Unwrap lets callers match any validation failure with apperrors.ErrInvalidHolding.
func (e *Error) Unwrap() error {
	return apperrors.ErrInvalidHolding
}

// Yahoo symbols: letters, digits and a few separators, optionally with an exchange suffix.
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9&^=\-]+(\.[A-Za-z]{1,4})?$`)

// ValidateSymbol checks that symbol looks like a quote symbol.
func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.ErrInvalidSymbol
	}
	if len(symbol) > 20 || !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidSymbol, symbol)
	}
	return nil
}

// ValidateHoldings checks the catalogue before it is valued and fills defaults.
//
// Every holding needs a symbol, a positive quantity and a positive cost basis,
// and symbols must be unique. A missing fundamentals symbol defaults to the
// quote symbol without its exchange suffix, and a missing exchange to "NSE".
// Sector is kept exactly as given since it is the grouping key.
// The input slice is not modified.
func ValidateHoldings(holdings []model.Holding) ([]model.Holding, error) {
	errors := make(map[string]string)
	seen := make(map[string]int, len(holdings))
	out := make([]model.Holding, len(holdings))

	for i, h := range holdings {
		field := fmt.Sprintf("holdings[%d]", i)

		h.Symbol = strings.TrimSpace(h.Symbol)
		if err := ValidateSymbol(h.Symbol); err != nil {
			errors[field+".symbol"] = err.Error()
		} else if first, dup := seen[h.Symbol]; dup {
			errors[field+".symbol"] = fmt.Sprintf("%s: %s also at holdings[%d]", apperrors.ErrDuplicateSymbol, h.Symbol, first)
		} else {
			seen[h.Symbol] = i
		}

		if h.Quantity <= 0 {
			errors[field+".quantity"] = apperrors.ErrInvalidQuantity.Error()
		}
		if !h.CostBasis.IsPositive() {
			errors[field+".costBasis"] = apperrors.ErrInvalidCostBasis.Error()
		}
		if h.FundamentalsSymbol == "" {
			h.FundamentalsSymbol = stripExchange(h.Symbol)
		}
		if h.Exchange == "" {
			h.Exchange = "NSE"
		}

		out[i] = h
	}

	if len(errors) > 0 {
		return nil, &Error{Fields: errors}
	}
	return out, nil
}

// ParseMoverCount parses the optional count query parameter.
// An empty value means defaultCount.
func ParseMoverCount(raw string, defaultCount int) (int, error) {
	if raw == "" {
		return defaultCount, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidMoverCount, raw)
	}
	return n, nil
}

func stripExchange(symbol string) string {
	if i := strings.LastIndex(symbol, "."); i > 0 {
		return symbol[:i]
	}
	return symbol
}
