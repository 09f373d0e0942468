package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

type StatusCount struct {
	Status string
	Count  int64
}

type GasCount struct {
	GasType string
	Count   int64
}

// EmptyGroup lists the empty cylinders of one gas type and size, the unit a
// refill run is planned in.
type EmptyGroup struct {
	GasType string
	Size    int
	Serials []string
}

// Product is a gas type and size combination with stock available.
type Product struct {
	GasType string
	Size    int
}

// WorkerActivity counts the ledger entries one user recorded. Received
// covers both halves of a receive.
type WorkerActivity struct {
	Dispatched int64
	Received   int64
	Refilled   int64
}

// Stats is a snapshot of the inventory plus ledger activity within a range.
type Stats struct {
	ByStatus          []StatusCount
	ByGasType         []GasCount
	TotalTransactions int64
	ByAction          []ledger.ActionCount
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report
type Inventory interface {
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByGasType(ctx context.Context) ([]GasCount, error)
	EmptyByGasAndSize(ctx context.Context) ([]EmptyGroup, error)
	Products(ctx context.Context) ([]Product, error)
}

// Ledger is the read side of the transaction ledger.
type Ledger interface {
	Count(ctx context.Context, r ledger.DateRange) (int64, error)
	CountByAction(ctx context.Context, r ledger.DateRange) ([]ledger.ActionCount, error)
	CountByUser(ctx context.Context, userID uuid.UUID, r ledger.DateRange) ([]ledger.ActionCount, error)
	Movement(ctx context.Context, r ledger.DateRange) (ledger.Movement, error)
	Trend(ctx context.Context, r ledger.DateRange) ([]ledger.TrendPoint, error)
	TopCompanies(ctx context.Context, r ledger.DateRange, limit int) ([]ledger.CompanyCount, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service serves derived views. Results may be up to ttl stale.
type Service struct {
	inventory Inventory
	ledger    Ledger
	cache     Cache
	ttl       time.Duration
}

func NewService(inventory Inventory, ledger Ledger, cache Cache, ttl time.Duration) *Service {
	return &Service{inventory: inventory, ledger: ledger, cache: cache, ttl: ttl}
}

func (s *Service) Stats(ctx context.Context, r ledger.DateRange) (*Stats, error) {
	var stats Stats

	err := s.cached(ctx, "stats:"+rangeKey(r), &stats, func() error {
		byStatus, err := s.inventory.CountByStatus(ctx)
		if err != nil {
			return apperror.Wrap("count cylinders by status", err)
		}

		byGas, err := s.inventory.CountByGasType(ctx)
		if err != nil {
			return apperror.Wrap("count cylinders by gas type", err)
		}

		total, err := s.ledger.Count(ctx, r)
		if err != nil {
			return err
		}

		byAction, err := s.ledger.CountByAction(ctx, r)
		if err != nil {
			return err
		}

		stats = Stats{ByStatus: byStatus, ByGasType: byGas, TotalTransactions: total, ByAction: byAction}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *Service) Trends(ctx context.Context, r ledger.DateRange) ([]ledger.TrendPoint, error) {
	var points []ledger.TrendPoint

	err := s.cached(ctx, "trends:"+rangeKey(r), &points, func() error {
		var err error
		points, err = s.ledger.Trend(ctx, r)

		return err
	})

	return points, err
}

func (s *Service) TopCompanies(ctx context.Context, r ledger.DateRange, limit int) ([]ledger.CompanyCount, error) {
	var top []ledger.CompanyCount

	err := s.cached(ctx, fmt.Sprintf("top:%d:%s", limit, rangeKey(r)), &top, func() error {
		var err error
		top, err = s.ledger.TopCompanies(ctx, r, limit)

		return err
	})

	return top, err
}

func (s *Service) Movement(ctx context.Context, r ledger.DateRange) (ledger.Movement, error) {
	var m ledger.Movement

	err := s.cached(ctx, "movement:"+rangeKey(r), &m, func() error {
		var err error
		m, err = s.ledger.Movement(ctx, r)

		return err
	})

	return m, err
}

// EmptySummary is read straight from the store; refill planning needs the
// current serials, not a cached view.
func (s *Service) EmptySummary(ctx context.Context) ([]EmptyGroup, error) {
	groups, err := s.inventory.EmptyByGasAndSize(ctx)
	if err != nil {
		return nil, apperror.Wrap("group empty cylinders", err)
	}

	return groups, nil
}

func (s *Service) Products(ctx context.Context) ([]Product, error) {
	products, err := s.inventory.Products(ctx)
	if err != nil {
		return nil, apperror.Wrap("list products", err)
	}

	return products, nil
}

func (s *Service) WorkerActivity(ctx context.Context, userID uuid.UUID, r ledger.DateRange) (*WorkerActivity, error) {
	counts, err := s.ledger.CountByUser(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	var a WorkerActivity

	for _, c := range counts {
		switch c.Action {
		case ledger.ActionDispatch:
			a.Dispatched += c.Count
		case ledger.ActionReceiveEmpty, ledger.ActionReceiveFilled:
			a.Received += c.Count
		case ledger.ActionRefill:
			a.Refilled += c.Count
		}
	}

	return &a, nil
}

// cached fills dest from the cache or, on a miss, by calling load and
// storing the result. Cache failures are logged and never fail the request.
func (s *Service) cached(ctx context.Context, key string, dest any, load func() error) error {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		slog.Warn("report cache read failed", "key", key, "error", err)
	}

	if hit {
		return nil
	}

	if err := load(); err != nil {
		return err
	}

	if err := s.cache.Set(ctx, key, dest, s.ttl); err != nil {
		slog.Warn("report cache write failed", "key", key, "error", err)
	}

	return nil
}

func rangeKey(r ledger.DateRange) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}

		return t.UTC().Format(time.RFC3339)
	}

	return bound(r.Start) + "_" + bound(r.End)
}
