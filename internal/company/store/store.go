package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/gastrack/internal/company"
)

var _ company.Repository = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCompanyColumns = `id, name, address, contact, created_at, updated_at`

func scanCompany(s scanner) (*company.Company, error) {
	var c company.Company
	if err := s.Scan(&c.ID, &c.Name, &c.Address, &c.Contact, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectArchivedColumns = `id, name, address, contact, created_at, deleted_by, deleted_at`

func scanArchived(s scanner) (*company.ArchivedCompany, error) {
	var a company.ArchivedCompany
	if err := s.Scan(&a.ID, &a.Name, &a.Address, &a.Contact, &a.CreatedAt, &a.DeletedBy, &a.DeletedAt); err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Store) CreateCompany(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (name, address, contact)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Address, c.Contact).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating company: %w", err)
	}

	return nil
}

func (s *Store) GetCompany(ctx context.Context, id int64) (*company.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	return c, nil
}

func (s *Store) ListCompanies(ctx context.Context, search string) ([]*company.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies`

	var args []any

	if search != "" {
		query += ` WHERE name ILIKE $1 OR contact ILIKE $1`

		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*company.Company

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}

	return companies, nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET name = $1, address = $2, contact = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Address, c.Contact, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.ErrNotFound
		}

		return fmt.Errorf("updating company: %w", err)
	}

	return nil
}

func (s *Store) CompanyExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking company: %w", err)
	}

	return exists, nil
}

func (s *Store) ListArchived(ctx context.Context) ([]*company.ArchivedCompany, error) {
	query := `SELECT ` + selectArchivedColumns + ` FROM archived_companies WHERE restored_as IS NULL ORDER BY deleted_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing archived companies: %w", err)
	}
	defer rows.Close()

	var archived []*company.ArchivedCompany

	for rows.Next() {
		a, err := scanArchived(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning archived company: %w", err)
		}

		archived = append(archived, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived companies: %w", err)
	}

	return archived, nil
}

type archiveTx struct {
	tx *sql.Tx
}

func (s *Store) BeginArchive(ctx context.Context) (company.ArchiveTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning archive tx: %w", err)
	}

	return &archiveTx{tx: tx}, nil
}

func (a *archiveTx) Commit() error { return a.tx.Commit() }

func (a *archiveTx) Rollback() error {
	if err := a.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// LockCompany blocks dispatches to the company, which take a share lock on
// the same row, until the transaction ends.
func (a *archiveTx) LockCompany(ctx context.Context, id int64) (*company.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies WHERE id = $1 FOR UPDATE`

	c, err := scanCompany(a.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, err
	}

	return c, nil
}

func (a *archiveTx) DispatchedCylinders(ctx context.Context, companyID int64) ([]string, error) {
	query := `SELECT serial_number FROM cylinders WHERE company_id = $1 ORDER BY serial_number`

	rows, err := a.tx.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var serials []string

	for rows.Next() {
		var serial string
		if err := rows.Scan(&serial); err != nil {
			return nil, err
		}

		serials = append(serials, serial)
	}

	return serials, rows.Err()
}

func (a *archiveTx) InsertArchived(ctx context.Context, ac *company.ArchivedCompany) error {
	query := `
		INSERT INTO archived_companies (id, name, address, contact, created_at, deleted_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING deleted_at
	`

	return a.tx.QueryRowContext(ctx, query, ac.ID, ac.Name, ac.Address, ac.Contact, ac.CreatedAt, ac.DeletedBy).
		Scan(&ac.DeletedAt)
}

func (a *archiveTx) DeleteCompany(ctx context.Context, id int64) (int64, error) {
	res, err := a.tx.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (a *archiveTx) LockArchived(ctx context.Context, id int64) (*company.ArchivedCompany, error) {
	query := `SELECT ` + selectArchivedColumns + ` FROM archived_companies WHERE id = $1 AND restored_as IS NULL FOR UPDATE`

	ac, err := scanArchived(a.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, err
	}

	return ac, nil
}

func (a *archiveTx) MarkRestored(ctx context.Context, id, restoredAs int64) (int64, error) {
	query := `
		UPDATE archived_companies
		SET restored_as = $2, restored_at = NOW()
		WHERE id = $1 AND restored_as IS NULL
	`

	res, err := a.tx.ExecContext(ctx, query, id, restoredAs)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (a *archiveTx) InsertCompany(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (name, address, contact)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return a.tx.QueryRowContext(ctx, query, c.Name, c.Address, c.Contact).Scan(&c.ID, &c.CreatedAt)
}
