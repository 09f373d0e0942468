package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/gastrack/internal/report"
)

var _ report.Inventory = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountByStatus(ctx context.Context) ([]report.StatusCount, error) {
	query := `SELECT status, COUNT(*) FROM cylinders GROUP BY status ORDER BY status`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting cylinders by status: %w", err)
	}
	defer rows.Close()

	var counts []report.StatusCount

	for rows.Next() {
		var c report.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}

		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	return counts, nil
}

func (s *Store) CountByGasType(ctx context.Context) ([]report.GasCount, error) {
	query := `SELECT gas_type, COUNT(*) FROM cylinders GROUP BY gas_type ORDER BY gas_type`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting cylinders by gas type: %w", err)
	}
	defer rows.Close()

	var counts []report.GasCount

	for rows.Next() {
		var c report.GasCount
		if err := rows.Scan(&c.GasType, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning gas count: %w", err)
		}

		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gas counts: %w", err)
	}

	return counts, nil
}

func (s *Store) EmptyByGasAndSize(ctx context.Context) ([]report.EmptyGroup, error) {
	query := `SELECT gas_type, size, serial_number FROM cylinders
		WHERE status = 'empty'
		ORDER BY gas_type, size, serial_number`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing empty cylinders: %w", err)
	}
	defer rows.Close()

	var groups []report.EmptyGroup

	for rows.Next() {
		var (
			gasType, serial string
			size            int
		)

		if err := rows.Scan(&gasType, &size, &serial); err != nil {
			return nil, fmt.Errorf("scanning empty cylinder: %w", err)
		}

		// Rows arrive ordered by group, so a new group starts whenever the
		// key changes.
		if n := len(groups); n == 0 || groups[n-1].GasType != gasType || groups[n-1].Size != size {
			groups = append(groups, report.EmptyGroup{GasType: gasType, Size: size})
		}

		last := &groups[len(groups)-1]
		last.Serials = append(last.Serials, serial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating empty cylinders: %w", err)
	}

	return groups, nil
}

func (s *Store) Products(ctx context.Context) ([]report.Product, error) {
	query := `SELECT DISTINCT gas_type, size FROM cylinders
		WHERE status = 'available'
		ORDER BY gas_type, size`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []report.Product

	for rows.Next() {
		var p report.Product
		if err := rows.Scan(&p.GasType, &p.Size); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}
