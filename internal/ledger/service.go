package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

const (
	DefaultLimit    = 100
	MaxLimit        = 1000
	defaultTopLimit = 5
	maxTopLimit     = 50
)

type SortField string

const (
	SortCylinder  SortField = "cylinder_id"
	SortAction    SortField = "action"
	SortTimestamp SortField = "timestamp"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange bounds a query. Start is inclusive, End is exclusive; either may
// be nil for an open bound.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type Filter struct {
	UserID    *uuid.UUID
	Range     DateRange
	Search    string
	SortBy    SortField
	SortOrder SortOrder
	Limit     int
}

type ActionCount struct {
	Action Action
	Count  int64
}

type TrendPoint struct {
	Day    time.Time
	Action Action
	Count  int64
}

// Movement summarizes ledger activity within a range. LatestActivity is nil
// when the range holds no entries.
type Movement struct {
	UniqueCylinders int64
	Entries         int64
	LatestActivity  *time.Time
}

type CompanyCount struct {
	CompanyID   int64
	CompanyName string
	Count       int64
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Count(ctx context.Context, r DateRange) (int64, error)
	CountByAction(ctx context.Context, r DateRange) ([]ActionCount, error)
	CountByUser(ctx context.Context, userID uuid.UUID, r DateRange) ([]ActionCount, error)
	Movement(ctx context.Context, r DateRange) (Movement, error)
	DailyTrend(ctx context.Context, r DateRange) ([]TrendPoint, error)
	TopCompanies(ctx context.Context, r DateRange, limit int) ([]CompanyCount, error)
}

// Service is the read side of the ledger. Appends happen only inside the
// unit of work of the component performing a state transition.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	filter, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap("query transactions", err)
	}

	return entries, nil
}

func (s *Service) Count(ctx context.Context, r DateRange) (int64, error) {
	if err := checkRange(r); err != nil {
		return 0, err
	}

	n, err := s.repo.Count(ctx, r)
	if err != nil {
		return 0, apperror.Wrap("count transactions", err)
	}

	return n, nil
}

func (s *Service) CountByAction(ctx context.Context, r DateRange) ([]ActionCount, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByAction(ctx, r)
	if err != nil {
		return nil, apperror.Wrap("count transactions by action", err)
	}

	return counts, nil
}

// CountByUser counts the entries one user recorded, per action.
func (s *Service) CountByUser(ctx context.Context, userID uuid.UUID, r DateRange) ([]ActionCount, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByUser(ctx, userID, r)
	if err != nil {
		return nil, apperror.Wrap("count transactions by user", err)
	}

	return counts, nil
}

func (s *Service) Movement(ctx context.Context, r DateRange) (Movement, error) {
	if err := checkRange(r); err != nil {
		return Movement{}, err
	}

	m, err := s.repo.Movement(ctx, r)
	if err != nil {
		return Movement{}, apperror.Wrap("movement summary", err)
	}

	return m, nil
}

func (s *Service) Trend(ctx context.Context, r DateRange) ([]TrendPoint, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}

	points, err := s.repo.DailyTrend(ctx, r)
	if err != nil {
		return nil, apperror.Wrap("transaction trend", err)
	}

	return points, nil
}

func (s *Service) TopCompanies(ctx context.Context, r DateRange, limit int) ([]CompanyCount, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultTopLimit
	case limit > maxTopLimit:
		limit = maxTopLimit
	}

	top, err := s.repo.TopCompanies(ctx, r, limit)
	if err != nil {
		return nil, apperror.Wrap("top companies", err)
	}

	return top, nil
}

func normalize(f Filter) (Filter, error) {
	switch f.SortBy {
	case "":
		f.SortBy = SortTimestamp
	case SortCylinder, SortAction, SortTimestamp:
	default:
		return f, apperror.Validation("sortBy must be one of cylinder_id, action, timestamp (got %q)", f.SortBy)
	}

	switch f.SortOrder {
	case "":
		f.SortOrder = SortDesc
	case SortAsc, SortDesc:
	default:
		return f, apperror.Validation("sortOrder must be asc or desc (got %q)", f.SortOrder)
	}

	switch {
	case f.Limit < 0:
		return f, apperror.Validation("limit must not be negative")
	case f.Limit == 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}

	if err := checkRange(f.Range); err != nil {
		return f, err
	}

	return f, nil
}

func checkRange(r DateRange) error {
	if r.Start != nil && r.End != nil && !r.Start.Before(*r.End) {
		return apperror.Validation("start must be before end")
	}

	return nil
}
