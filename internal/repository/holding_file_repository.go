package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// HoldingFileRepository reads the holding catalogue from a TOML file:
//
//	[[holding]]
//	symbol = "TCS.NS"
//	fundamentalsSymbol = "TCS"
//	quantity = 10
//	costBasis = 3000
//	sector = "Technology"
//
// The file is re-read on every call so edits are picked up by the next refresh.
type HoldingFileRepository struct {
	path string
}

// NewHoldingFileRepository creates a repository backed by the TOML file at path.
func NewHoldingFileRepository(path string) *HoldingFileRepository {
	return &HoldingFileRepository{path: path}
}

type holdingFile struct {
	Holding []holdingRecord `toml:"holding"`
}

type holdingRecord struct {
	Symbol             string `toml:"symbol"`
	FundamentalsSymbol string `toml:"fundamentalsSymbol"`
	Quantity           int64  `toml:"quantity"`
	CostBasis          any    `toml:"costBasis"` // number or decimal string
	Sector             string `toml:"sector"`
	Exchange           string `toml:"exchange"`
	LogoURL            string `toml:"logoUrl"`
}

// GetHoldings parses the file and returns holdings in file order.
func (r *HoldingFileRepository) GetHoldings(_ context.Context) ([]model.Holding, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file: %w", err)
	}

	var file holdingFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse holdings file %s: %w", r.path, err)
	}

	holdings := make([]model.Holding, 0, len(file.Holding))
	for _, rec := range file.Holding {
		cost, err := toDecimal(rec.CostBasis)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrInvalidCostBasis, rec.Symbol, err)
		}
		holdings = append(holdings, model.Holding{
			Symbol:             rec.Symbol,
			FundamentalsSymbol: rec.FundamentalsSymbol,
			Quantity:           rec.Quantity,
			CostBasis:          cost,
			Sector:             rec.Sector,
			Exchange:           rec.Exchange,
			LogoURL:            rec.LogoURL,
		})
	}

	return holdings, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case int64:
		return decimal.NewFromInt(val), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case string:
		return decimal.NewFromString(val)
	case nil:
		return decimal.Zero, fmt.Errorf("missing costBasis")
	default:
		return decimal.Zero, fmt.Errorf("unsupported costBasis type %T", v)
	}
}
