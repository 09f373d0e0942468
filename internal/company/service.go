package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company
type Repository interface {
	CreateCompany(ctx context.Context, c *Company) error
	GetCompany(ctx context.Context, id int64) (*Company, error)
	ListCompanies(ctx context.Context, search string) ([]*Company, error)
	UpdateCompany(ctx context.Context, c *Company) error
	CompanyExists(ctx context.Context, id int64) (bool, error)
	ListArchived(ctx context.Context) ([]*ArchivedCompany, error)

	BeginArchive(ctx context.Context) (ArchiveTx, error)
}

// ArchiveTx moves companies between the active table and the archive as one
// store transaction.
type ArchiveTx interface {
	LockCompany(ctx context.Context, id int64) (*Company, error)
	DispatchedCylinders(ctx context.Context, companyID int64) ([]string, error)
	InsertArchived(ctx context.Context, a *ArchivedCompany) error
	DeleteCompany(ctx context.Context, id int64) (int64, error)

	// LockArchived only sees archive entries that have not been restored.
	LockArchived(ctx context.Context, id int64) (*ArchivedCompany, error)
	// MarkRestored keeps the archive row so ledger rows carrying the old id
	// still resolve to a name.
	MarkRestored(ctx context.Context, id, restoredAs int64) (int64, error)
	InsertCompany(ctx context.Context, c *Company) error

	Commit() error
	Rollback() error
}

const defaultTimeout = 5 * time.Second

type Service struct {
	repo    Repository
	timeout time.Duration
}

type Option func(*Service)

// WithTimeout bounds archive and restore, including the wait for the
// company row lock.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Name    string
	Address string
	Contact string
}

type UpdateParams struct {
	Name    *string
	Address *string
	Contact *string
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }

func notFound(id int64) error {
	return apperror.NotFound([]string{idString(id)}, "company %d not found", id)
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Company, error) {
	c := &Company{
		Name:    strings.TrimSpace(p.Name),
		Address: strings.TrimSpace(p.Address),
		Contact: strings.TrimSpace(p.Contact),
	}

	if c.Name == "" {
		return nil, apperror.Validation("name is required")
	}

	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, apperror.Wrap("create company", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Company, error) {
	c, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(id)
		}

		return nil, apperror.Wrap("get company", err)
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, search string) ([]*Company, error) {
	companies, err := s.repo.ListCompanies(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, apperror.Wrap("list companies", err)
	}

	return companies, nil
}

// Exists reports whether id names an active company.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	ok, err := s.repo.CompanyExists(ctx, id)
	if err != nil {
		return false, apperror.Wrap("company exists", err)
	}

	return ok, nil
}

func (s *Service) Update(ctx context.Context, id int64, p UpdateParams) (*Company, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperror.Validation("name must not be blank")
		}

		c.Name = name
	}

	if p.Address != nil {
		c.Address = strings.TrimSpace(*p.Address)
	}

	if p.Contact != nil {
		c.Contact = strings.TrimSpace(*p.Contact)
	}

	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(id)
		}

		return nil, apperror.Wrap("update company", err)
	}

	return c, nil
}

func (s *Service) ListArchived(ctx context.Context) ([]*ArchivedCompany, error) {
	archived, err := s.repo.ListArchived(ctx)
	if err != nil {
		return nil, apperror.Wrap("list archived companies", err)
	}

	return archived, nil
}

// inArchiveTx runs fn in one store transaction detached from the caller's
// cancellation and bounded by the service timeout.
func (s *Service) inArchiveTx(ctx context.Context, op string, fn func(ctx context.Context, tx ArchiveTx) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	tx, err := s.repo.BeginArchive(ctx)
	if err != nil {
		return apperror.Wrap(op, fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	if err := fn(ctx, tx); err != nil {
		return apperror.Wrap(op, err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Wrap(op, fmt.Errorf("commit: %w", err))
	}

	return nil
}

// SoftDelete moves a company to the archive. Companies still holding
// dispatched cylinders cannot be archived.
func (s *Service) SoftDelete(ctx context.Context, actor uuid.UUID, id int64) (*ArchivedCompany, error) {
	var archived *ArchivedCompany

	err := s.inArchiveTx(ctx, "archive company", func(ctx context.Context, tx ArchiveTx) error {
		c, err := tx.LockCompany(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFound(id)
			}

			return fmt.Errorf("locking company: %w", err)
		}

		held, err := tx.DispatchedCylinders(ctx, id)
		if err != nil {
			return fmt.Errorf("checking dispatched cylinders: %w", err)
		}

		if len(held) > 0 {
			conflicts := make([]apperror.Conflict, len(held))
			for i, serial := range held {
				conflicts[i] = apperror.Conflict{ID: serial, Status: "dispatched"}
			}

			return apperror.StateConflict(conflicts, fmt.Sprintf("must be received before company %d can be deleted", id))
		}

		a := &ArchivedCompany{
			ID:        c.ID,
			Name:      c.Name,
			Address:   c.Address,
			Contact:   c.Contact,
			CreatedAt: c.CreatedAt,
			DeletedBy: actor,
		}

		if err := tx.InsertArchived(ctx, a); err != nil {
			return fmt.Errorf("archiving company: %w", err)
		}

		n, err := tx.DeleteCompany(ctx, id)
		if err != nil {
			return fmt.Errorf("removing company: %w", err)
		}

		if n != 1 {
			return fmt.Errorf("removing company %d: %d rows affected", id, n)
		}

		archived = a

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("company archived", "actor", actor, "company_id", id)

	return archived, nil
}

// Restore moves an archived company back under a newly assigned id; the
// archived id is never reused. The archive entry stays behind, marked with
// the new id, and can not be restored twice.
func (s *Service) Restore(ctx context.Context, archivedID int64) (*Company, error) {
	var restored *Company

	err := s.inArchiveTx(ctx, "restore company", func(ctx context.Context, tx ArchiveTx) error {
		a, err := tx.LockArchived(ctx, archivedID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return apperror.NotFound([]string{idString(archivedID)}, "company %d not found in archive", archivedID)
			}

			return fmt.Errorf("locking archived company: %w", err)
		}

		c := &Company{Name: a.Name, Address: a.Address, Contact: a.Contact}
		if err := tx.InsertCompany(ctx, c); err != nil {
			return fmt.Errorf("restoring company: %w", err)
		}

		n, err := tx.MarkRestored(ctx, archivedID, c.ID)
		if err != nil {
			return fmt.Errorf("marking archive entry restored: %w", err)
		}

		if n != 1 {
			return fmt.Errorf("marking archive entry %d restored: %d rows affected", archivedID, n)
		}

		restored = c

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("company restored", "archived_id", archivedID, "company_id", restored.ID)

	return restored, nil
}
