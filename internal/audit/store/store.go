package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/gastrack/internal/audit"
)

var _ audit.Repository = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindViolations(ctx context.Context) ([]audit.Violation, error) {
	query := `
		SELECT serial_number, 'company_without_dispatch'
		FROM cylinders
		WHERE status <> 'dispatched' AND company_id IS NOT NULL
		UNION ALL
		SELECT serial_number, 'dispatch_without_company'
		FROM cylinders
		WHERE status = 'dispatched' AND company_id IS NULL
		UNION ALL
		SELECT c.serial_number, 'active_and_archived'
		FROM cylinders c
		JOIN deleted_cylinders d ON d.serial_number = c.serial_number
		ORDER BY 1, 2
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying violations: %w", err)
	}
	defer rows.Close()

	var violations []audit.Violation

	for rows.Next() {
		var (
			v       audit.Violation
			problem string
		)

		if err := rows.Scan(&v.SerialNumber, &problem); err != nil {
			return nil, fmt.Errorf("scanning violation: %w", err)
		}

		v.Problem = audit.Problem(problem)
		violations = append(violations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating violations: %w", err)
	}

	return violations, nil
}
