package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/gastrack/internal/ledger/store"
)

const uniqueViolation = "23505"

var _ cylinder.Repository = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: serial_number, gas_type, size, status, company_id, created_at, updated_at
func scanCylinder(s scanner) (*cylinder.Cylinder, error) {
	var (
		c      cylinder.Cylinder
		status string
	)

	if err := s.Scan(&c.SerialNumber, &c.GasType, &c.Size, &status, &c.CompanyID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Status = cylinder.Status(status)

	return &c, nil
}

const selectCylinderColumns = `serial_number, gas_type, size, status, company_id, created_at, updated_at`

// Expected column order: serial_number, gas_type, size, status, deleted_by, deleted_at
func scanArchived(s scanner) (*cylinder.DeletedCylinder, error) {
	var (
		d      cylinder.DeletedCylinder
		status string
	)

	if err := s.Scan(&d.SerialNumber, &d.GasType, &d.Size, &status, &d.DeletedBy, &d.DeletedAt); err != nil {
		return nil, err
	}

	d.Status = cylinder.Status(status)

	return &d, nil
}

const selectArchivedColumns = `serial_number, gas_type, size, status, deleted_by, deleted_at`

func (s *Store) GetCylinder(ctx context.Context, serial string) (*cylinder.Cylinder, error) {
	query := `SELECT ` + selectCylinderColumns + ` FROM cylinders WHERE serial_number = $1`

	c, err := scanCylinder(s.db.QueryRowContext(ctx, query, serial))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cylinder.ErrNotFound
		}

		return nil, fmt.Errorf("getting cylinder: %w", err)
	}

	return c, nil
}

func (s *Store) ListCylinders(ctx context.Context, filter cylinder.ListFilter) ([]*cylinder.Cylinder, error) {
	query := `SELECT ` + selectCylinderColumns + ` FROM cylinders WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.GasType != "" {
		query += fmt.Sprintf(" AND gas_type = $%d", argIdx)

		args = append(args, strings.ToLower(filter.GasType))
		argIdx++
	}

	if filter.CompanyID != nil {
		query += fmt.Sprintf(" AND company_id = $%d", argIdx)

		args = append(args, *filter.CompanyID)
		argIdx++
	}

	query += " ORDER BY serial_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cylinders: %w", err)
	}
	defer rows.Close()

	var cylinders []*cylinder.Cylinder

	for rows.Next() {
		c, err := scanCylinder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cylinder: %w", err)
		}

		cylinders = append(cylinders, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cylinders: %w", err)
	}

	return cylinders, nil
}

func (s *Store) ListArchived(ctx context.Context) ([]*cylinder.DeletedCylinder, error) {
	query := `SELECT ` + selectArchivedColumns + ` FROM deleted_cylinders ORDER BY deleted_at DESC, serial_number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing archived cylinders: %w", err)
	}
	defer rows.Close()

	var archived []*cylinder.DeletedCylinder

	for rows.Next() {
		d, err := scanArchived(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning archived cylinder: %w", err)
		}

		archived = append(archived, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived cylinders: %w", err)
	}

	return archived, nil
}

func serialLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("cylinder-serial-sequence"))

	return int64(h.Sum64())
}

type unitOfWork struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (cylinder.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning cylinder tx: %w", err)
	}

	return &unitOfWork{tx: tx}, nil
}

func (u *unitOfWork) Commit() error { return u.tx.Commit() }

func (u *unitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// LockCylinders takes row locks in serial order so that overlapping
// requests queue behind each other instead of deadlocking.
func (u *unitOfWork) LockCylinders(ctx context.Context, serials []string) ([]*cylinder.Cylinder, error) {
	query := `SELECT ` + selectCylinderColumns + `
		FROM cylinders
		WHERE serial_number = ANY($1)
		ORDER BY serial_number
		FOR UPDATE`

	rows, err := u.tx.QueryContext(ctx, query, serials)
	if err != nil {
		return nil, fmt.Errorf("locking cylinders: %w", err)
	}
	defer rows.Close()

	var cylinders []*cylinder.Cylinder

	for rows.Next() {
		c, err := scanCylinder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cylinder: %w", err)
		}

		cylinders = append(cylinders, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locked cylinders: %w", err)
	}

	return cylinders, nil
}

// CompanyActive share-locks the company row so it cannot be archived before
// this unit of work commits.
func (u *unitOfWork) CompanyActive(ctx context.Context, companyID int64) (bool, error) {
	var id int64

	err := u.tx.QueryRowContext(ctx, `SELECT id FROM companies WHERE id = $1 FOR SHARE`, companyID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("checking company: %w", err)
	}

	return true, nil
}

func (u *unitOfWork) UpdateStatus(
	ctx context.Context, serials []string, from, to cylinder.Status, companyID *int64,
) (int64, error) {
	query := `
		UPDATE cylinders
		SET status = $1, company_id = $2, updated_at = NOW()
		WHERE serial_number = ANY($3) AND status = $4
	`

	res, err := u.tx.ExecContext(ctx, query, to, companyID, serials, from)
	if err != nil {
		return 0, fmt.Errorf("updating status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return n, nil
}

func (u *unitOfWork) AppendLedger(ctx context.Context, entries []*ledger.Entry) error {
	return ledgerStore.Append(ctx, u.tx, entries)
}

func (u *unitOfWork) LockSerialSequence(ctx context.Context) error {
	if _, err := u.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", serialLockKey()); err != nil {
		return fmt.Errorf("acquiring serial lock: %w", err)
	}

	return nil
}

func (u *unitOfWork) MaxSerial(ctx context.Context) (int64, bool, error) {
	query := `
		SELECT MAX(CAST(SUBSTRING(serial_number FROM 4) AS BIGINT))
		FROM (
			SELECT serial_number FROM cylinders
			UNION ALL
			SELECT serial_number FROM deleted_cylinders
		) s
		WHERE serial_number ~ '^CYL[0-9]+$'
	`

	var highest sql.NullInt64
	if err := u.tx.QueryRowContext(ctx, query).Scan(&highest); err != nil {
		return 0, false, fmt.Errorf("reading max serial: %w", err)
	}

	return highest.Int64, highest.Valid, nil
}

func (u *unitOfWork) ExistingSerials(ctx context.Context, serials []string) ([]string, error) {
	query := `
		SELECT serial_number FROM cylinders WHERE serial_number = ANY($1)
		UNION
		SELECT serial_number FROM deleted_cylinders WHERE serial_number = ANY($1)
		ORDER BY 1
	`

	rows, err := u.tx.QueryContext(ctx, query, serials)
	if err != nil {
		return nil, fmt.Errorf("finding existing serials: %w", err)
	}
	defer rows.Close()

	var existing []string

	for rows.Next() {
		var serial string
		if err := rows.Scan(&serial); err != nil {
			return nil, fmt.Errorf("scanning serial: %w", err)
		}

		existing = append(existing, serial)
	}

	return existing, rows.Err()
}

// InsertCylinders writes all rows with one parameterized statement and fills
// in CreatedAt.
func (u *unitOfWork) InsertCylinders(ctx context.Context, cylinders []*cylinder.Cylinder) error {
	if len(cylinders) == 0 {
		return nil
	}

	var sb strings.Builder

	sb.WriteString("INSERT INTO cylinders (serial_number, gas_type, size, status, company_id) VALUES ")

	args := make([]any, 0, len(cylinders)*5)

	for i, c := range cylinders {
		if i > 0 {
			sb.WriteString(", ")
		}

		n := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)

		args = append(args, c.SerialNumber, c.GasType, c.Size, c.Status, c.CompanyID)
	}

	sb.WriteString(" RETURNING serial_number, created_at")

	rows, err := u.tx.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return translateInsertErr(err)
	}
	defer rows.Close()

	bySerial := make(map[string]*cylinder.Cylinder, len(cylinders))
	for _, c := range cylinders {
		bySerial[c.SerialNumber] = c
	}

	for rows.Next() {
		var (
			serial    string
			createdAt time.Time
		)

		if err := rows.Scan(&serial, &createdAt); err != nil {
			return fmt.Errorf("scanning inserted cylinder: %w", err)
		}

		if target, ok := bySerial[serial]; ok {
			target.CreatedAt = createdAt
		}
	}

	if err := rows.Err(); err != nil {
		return translateInsertErr(err)
	}

	return nil
}

func translateInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return cylinder.ErrDuplicateSerial
	}

	return fmt.Errorf("inserting cylinders: %w", err)
}

func (u *unitOfWork) LockArchived(ctx context.Context, serial string) (*cylinder.DeletedCylinder, error) {
	query := `SELECT ` + selectArchivedColumns + ` FROM deleted_cylinders WHERE serial_number = $1 FOR UPDATE`

	d, err := scanArchived(u.tx.QueryRowContext(ctx, query, serial))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cylinder.ErrNotFound
		}

		return nil, fmt.Errorf("locking archived cylinder: %w", err)
	}

	return d, nil
}

func (u *unitOfWork) InsertArchived(ctx context.Context, d *cylinder.DeletedCylinder) error {
	query := `
		INSERT INTO deleted_cylinders (serial_number, gas_type, size, status, deleted_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING deleted_at
	`

	err := u.tx.QueryRowContext(ctx, query, d.SerialNumber, d.GasType, d.Size, d.Status, d.DeletedBy).Scan(&d.DeletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return cylinder.ErrDuplicateSerial
		}

		return fmt.Errorf("archiving cylinder: %w", err)
	}

	return nil
}

func (u *unitOfWork) DeleteCylinder(ctx context.Context, serial string) (int64, error) {
	res, err := u.tx.ExecContext(ctx, `DELETE FROM cylinders WHERE serial_number = $1`, serial)
	if err != nil {
		return 0, fmt.Errorf("deleting cylinder: %w", err)
	}

	return res.RowsAffected()
}

func (u *unitOfWork) DeleteArchived(ctx context.Context, serial string) (int64, error) {
	res, err := u.tx.ExecContext(ctx, `DELETE FROM deleted_cylinders WHERE serial_number = $1`, serial)
	if err != nil {
		return 0, fmt.Errorf("deleting archived cylinder: %w", err)
	}

	return res.RowsAffected()
}
