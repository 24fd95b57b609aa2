package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// QuoteSource looks up the current market price for a symbol.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
}

// FundamentalsSource looks up P/E and EPS for a fundamentals symbol.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error)
}

// HoldingSource provides the portfolio catalogue.
type HoldingSource interface {
	GetHoldings(ctx context.Context) ([]model.Holding, error)
}

// SnapshotListener is called with every newly published snapshot.
type SnapshotListener func(*model.Snapshot)

// Refresh defaults.
const (
	DefaultRefreshInterval = 15 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
	DefaultConcurrency     = 8
)

// RefreshService runs refresh cycles: it loads the holdings, fetches quotes
// and fundamentals concurrently, values and aggregates everything and then
// publishes the result as one immutable snapshot.
//
// Readers always see either the previous or the new snapshot in full.
type RefreshService struct {
	holdings     HoldingSource
	quotes       QuoteSource
	fundamentals FundamentalsSource

	interval     time.Duration
	fetchTimeout time.Duration
	concurrency  int
	moverCount   int
	logger       *logging.Logger
	now          func() time.Time

	current atomic.Pointer[model.Snapshot]
	cycle   sync.Mutex

	listenersMu sync.RWMutex
	listeners   []SnapshotListener

	cron *cron.Cron
}

// RefreshOption configures a RefreshService.
type RefreshOption func(*RefreshService)

// WithFundamentals sets the fundamentals source. Without one, every holding
// is valued with absent fundamentals.
func WithFundamentals(src FundamentalsSource) RefreshOption {
	return func(s *RefreshService) {
		s.fundamentals = src
	}
}

// WithInterval sets the time between scheduled cycles.
func WithInterval(d time.Duration) RefreshOption {
	return func(s *RefreshService) {
		s.interval = d
	}
}

// WithFetchTimeout bounds all lookups of one cycle.
func WithFetchTimeout(d time.Duration) RefreshOption {
	return func(s *RefreshService) {
		s.fetchTimeout = d
	}
}

// WithConcurrency limits the number of in-flight lookups.
func WithConcurrency(n int) RefreshOption {
	return func(s *RefreshService) {
		s.concurrency = n
	}
}

// WithMoverCount sets how many gainers and losers a snapshot carries.
func WithMoverCount(n int) RefreshOption {
	return func(s *RefreshService) {
		s.moverCount = n
	}
}

// WithRefreshLogger sets the logger.
func WithRefreshLogger(l *logging.Logger) RefreshOption {
	return func(s *RefreshService) {
		s.logger = l
	}
}

// NewRefreshService creates a RefreshService. Nothing runs until Refresh or Start is called.
func NewRefreshService(holdings HoldingSource, quotes QuoteSource, opts ...RefreshOption) *RefreshService {
	s := &RefreshService{
		holdings:     holdings,
		quotes:       quotes,
		interval:     DefaultRefreshInterval,
		fetchTimeout: DefaultFetchTimeout,
		concurrency:  DefaultConcurrency,
		moverCount:   DefaultMoverCount,
		logger:       logging.NewSilent(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a listener for new snapshots.
func (s *RefreshService) Subscribe(l SnapshotListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns the latest published snapshot, or ErrSnapshotNotReady
// before the first successful cycle.
func (s *RefreshService) Snapshot() (*model.Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, apperrors.ErrSnapshotNotReady
	}
	return snap, nil
}

// MoverCount returns the number of movers each snapshot carries.
func (s *RefreshService) MoverCount() int {
	return s.moverCount
}

// Refresh runs one cycle and publishes its snapshot.
//
// Individual lookup failures never fail the cycle; they are logged, counted
// and valued as absent. Only a failure to load or validate the holdings
// aborts, in which case the previous snapshot stays current.
// Concurrent calls are serialized.
func (s *RefreshService) Refresh(ctx context.Context) (*model.Snapshot, error) {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	start := s.now()

	holdings, err := s.holdings.GetHoldings(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load holdings, keeping previous snapshot")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}

	holdings, err = validation.ValidateHoldings(holdings)
	if err != nil {
		s.logger.Error().Err(err).Msg("Holding catalogue is invalid, keeping previous snapshot")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefresh, err)
	}

	quotes, fundamentals, quoteFailures, fundamentalsFailures := s.fetchAll(ctx, holdings)

	valued := make([]model.ValuedHolding, len(holdings))
	for i, h := range holdings {
		valued[i] = Value(h, quotes[i], fundamentals[i])
	}

	snap := &model.Snapshot{
		ID:                   uuid.New().String(),
		GeneratedAt:          s.now().UTC(),
		Holdings:             valued,
		Sectors:              SummarizeBySector(valued),
		Movers:               RankTopMovers(valued, s.moverCount),
		Totals:               ComputeTotals(valued),
		QuoteFailures:        quoteFailures,
		FundamentalsFailures: fundamentalsFailures,
	}

	s.current.Store(snap)

	s.logger.Info().
		Str("snapshot", snap.ID).
		Int("holdings", len(valued)).
		Int("quoteFailures", quoteFailures).
		Int("fundamentalsFailures", fundamentalsFailures).
		Dur("elapsed", s.now().Sub(start)).
		Msg("Portfolio refreshed")

	s.notify(snap)
	return snap, nil
}

// fetchAll looks up quote and fundamentals for every holding under one
// cycle deadline. Result slices are index-aligned with holdings.
func (s *RefreshService) fetchAll(ctx context.Context, holdings []model.Holding) ([]*model.Quote, []*model.Fundamentals, int, int) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	quotes := make([]*model.Quote, len(holdings))
	fundamentals := make([]*model.Fundamentals, len(holdings))
	var quoteFailures, fundamentalsFailures atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, h := range holdings {
		g.Go(func() error {
			q, err := s.quotes.Quote(ctx, h.Symbol)
			if err != nil {
				quoteFailures.Add(1)
				s.logLookupFailure(err, apperrors.ErrQuoteUnavailable, "quote", h.Symbol)
				return nil
			}
			quotes[i] = q
			return nil
		})

		if s.fundamentals == nil {
			continue
		}
		g.Go(func() error {
			f, err := s.fundamentals.Fundamentals(ctx, h.FundamentalsSymbol)
			if err != nil {
				fundamentalsFailures.Add(1)
				s.logLookupFailure(err, apperrors.ErrFundamentalsUnavailable, "fundamentals", h.FundamentalsSymbol)
				return nil
			}
			fundamentals[i] = f
			return nil
		})
	}

	// lookups never return errors
	_ = g.Wait()

	return quotes, fundamentals, int(quoteFailures.Load()), int(fundamentalsFailures.Load())
}

func (s *RefreshService) logLookupFailure(err, expected error, kind, symbol string) {
	level := zerolog.WarnLevel
	if errors.Is(err, expected) {
		level = zerolog.DebugLevel
	}
	s.logger.WithLevel(level).Err(err).Str("lookup", kind).Str("symbol", symbol).Msg("Lookup failed, valuing as absent")
}

func (s *RefreshService) notify(snap *model.Snapshot) {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()
	for _, l := range s.listeners {
		l(snap)
	}
}

// Start runs a first cycle immediately and then schedules one every interval.
// A cycle still running when the next is due is skipped. ctx bounds every
// scheduled cycle; Stop ends the schedule.
func (s *RefreshService) Start(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Initial refresh failed")
	}

	cronLogger := logging.NewCronLogger(s.logger)
	s.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Scheduled refresh failed")
		}
	}))
	s.cron.Start()

	s.logger.Info().Dur("interval", s.interval).Msg("Refresh schedule started")
}

// Stop ends the schedule and waits for a running cycle to finish.
func (s *RefreshService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Refresh schedule stopped")
}
