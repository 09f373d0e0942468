package cylinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

const defaultTimeout = 5 * time.Second

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cylinder
type Repository interface {
	Begin(ctx context.Context) (UnitOfWork, error)
	GetCylinder(ctx context.Context, serial string) (*Cylinder, error)
	ListCylinders(ctx context.Context, filter ListFilter) ([]*Cylinder, error)
	ListArchived(ctx context.Context) ([]*DeletedCylinder, error)
}

// UnitOfWork is one store transaction. Nothing done through it is visible to
// other callers until Commit; Rollback after Commit is a no-op.
type UnitOfWork interface {
	// LockCylinders returns the active cylinders among serials, locked
	// against concurrent modification until the unit of work ends.
	LockCylinders(ctx context.Context, serials []string) ([]*Cylinder, error)
	CompanyActive(ctx context.Context, companyID int64) (bool, error)
	// UpdateStatus moves serials currently in from to to and reports how
	// many rows changed.
	UpdateStatus(ctx context.Context, serials []string, from, to Status, companyID *int64) (int64, error)
	AppendLedger(ctx context.Context, entries []*ledger.Entry) error

	LockSerialSequence(ctx context.Context) error
	MaxSerial(ctx context.Context) (int64, bool, error)
	ExistingSerials(ctx context.Context, serials []string) ([]string, error)
	InsertCylinders(ctx context.Context, cylinders []*Cylinder) error

	LockArchived(ctx context.Context, serial string) (*DeletedCylinder, error)
	InsertArchived(ctx context.Context, d *DeletedCylinder) error
	DeleteCylinder(ctx context.Context, serial string) (int64, error)
	DeleteArchived(ctx context.Context, serial string) (int64, error)

	Commit() error
	Rollback() error
}

// Recorder observes completed operations.
type Recorder interface {
	ObserveOperation(operation string, cylinders int, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, int, error) {}

// Service is the cylinder lifecycle engine. Every mutating operation runs as
// a single unit of work: preconditions are checked against locked rows
// before any write, and status changes commit together with their ledger
// entries or not at all.
type Service struct {
	repo     Repository
	timeout  time.Duration
	recorder Recorder
}

type Option func(*Service)

// WithTimeout bounds each operation, including every store call it makes.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, timeout: defaultTimeout, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// run executes fn inside a unit of work. The caller's cancellation is
// detached: once submitted, an operation either commits or fails on its own
// deadline.
func (s *Service) run(ctx context.Context, op string, fn func(ctx context.Context, uow UnitOfWork) (int, error)) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	n, err := s.inUnitOfWork(ctx, op, fn)
	s.recorder.ObserveOperation(op, n, err)

	return err
}

func (s *Service) inUnitOfWork(ctx context.Context, op string, fn func(ctx context.Context, uow UnitOfWork) (int, error)) (int, error) {
	uow, err := s.repo.Begin(ctx)
	if err != nil {
		return 0, apperror.Wrap(op, fmt.Errorf("begin: %w", err))
	}
	defer uow.Rollback()

	n, err := fn(ctx, uow)
	if err != nil {
		return 0, apperror.Wrap(op, err)
	}

	if err := uow.Commit(); err != nil {
		return 0, apperror.Wrap(op, fmt.Errorf("commit: %w", err))
	}

	return n, nil
}

func (s *Service) Get(ctx context.Context, serial string) (*Cylinder, error) {
	c, err := s.repo.GetCylinder(ctx, serial)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound([]string{serial}, "cylinder %s not found", serial)
		}

		return nil, apperror.Wrap("get cylinder", err)
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Cylinder, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.Validation("unknown status %q", *filter.Status)
	}

	cylinders, err := s.repo.ListCylinders(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap("list cylinders", err)
	}

	return cylinders, nil
}

func (s *Service) ListArchived(ctx context.Context) ([]*DeletedCylinder, error) {
	archived, err := s.repo.ListArchived(ctx)
	if err != nil {
		return nil, apperror.Wrap("list archived cylinders", err)
	}

	return archived, nil
}
