package service

import (
	"strings"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// SnapshotProvider returns the latest published snapshot.
type SnapshotProvider interface {
	Snapshot() (*model.Snapshot, error)
}

// PortfolioService answers read queries against the current snapshot.
// It never triggers lookups. Movers are re-ranked from the snapshot's
// holdings so callers can ask for any count.
type PortfolioService struct {
	snapshots SnapshotProvider
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(snapshots SnapshotProvider) *PortfolioService {
	return &PortfolioService{snapshots: snapshots}
}

// GetPortfolio returns the full current snapshot.
func (s *PortfolioService) GetPortfolio() (*model.Snapshot, error) {
	return s.snapshots.Snapshot()
}

// GetHoldings returns the valued holdings whose symbol contains search,
// ignoring case. An empty search returns every holding.
func (s *PortfolioService) GetHoldings(search string) ([]model.ValuedHolding, error) {
	snap, err := s.snapshots.Snapshot()
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return snap.Holdings, nil
	}

	out := []model.ValuedHolding{}
	for _, h := range snap.Holdings {
		if strings.Contains(strings.ToLower(h.Symbol), search) {
			out = append(out, h)
		}
	}
	return out, nil
}

// GetHolding returns one valued holding by symbol, ignoring case.
func (s *PortfolioService) GetHolding(symbol string) (model.ValuedHolding, error) {
	snap, err := s.snapshots.Snapshot()
	if err != nil {
		return model.ValuedHolding{}, err
	}

	for _, h := range snap.Holdings {
		if strings.EqualFold(h.Symbol, symbol) {
			return h, nil
		}
	}
	return model.ValuedHolding{}, apperrors.ErrHoldingNotFound
}

// GetSectors returns the sector summaries of the current snapshot.
func (s *PortfolioService) GetSectors() ([]model.SectorSummary, error) {
	snap, err := s.snapshots.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Sectors, nil
}

// GetMovers returns the top count gainers and losers.
func (s *PortfolioService) GetMovers(count int) (model.TopMovers, error) {
	snap, err := s.snapshots.Snapshot()
	if err != nil {
		return model.TopMovers{}, err
	}
	return RankTopMovers(snap.Holdings, count), nil
}

// GetTotals returns the grand totals of the current snapshot.
func (s *PortfolioService) GetTotals() (model.PortfolioTotals, error) {
	snap, err := s.snapshots.Snapshot()
	if err != nil {
		return model.PortfolioTotals{}, err
	}
	return snap.Totals, nil
}
