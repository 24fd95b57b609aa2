package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// HoldingRepository provides read access to the holding catalogue table.
// Rows are returned in catalogue (position) order, which is also the order
// sector summaries are built in.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

const holdingColumns = `symbol, fundamentals_symbol, quantity, cost_basis, sector, exchange, logo_url`

// GetHoldings retrieves every holding ordered by catalogue position.
// Returns an empty slice if the catalogue is empty.
func (r *HoldingRepository) GetHoldings(ctx context.Context) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (model.Holding, error) {
	var (
		h       model.Holding
		cost    string
		logoURL sql.NullString
	)

	if err := row.Scan(&h.Symbol, &h.FundamentalsSymbol, &h.Quantity, &cost, &h.Sector, &h.Exchange, &logoURL); err != nil {
		return model.Holding{}, err
	}

	d, err := decimal.NewFromString(cost)
	if err != nil {
		return model.Holding{}, fmt.Errorf("holding %s: bad cost_basis %q: %w", h.Symbol, cost, err)
	}
	h.CostBasis = d
	h.LogoURL = logoURL.String

	return h, nil
}
