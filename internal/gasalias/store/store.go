package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/gastrack/internal/gasalias"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindGasType(ctx context.Context, alias string) (string, bool, error) {
	query := `SELECT gas_type FROM gas_aliases WHERE alias = $1`

	var gas string

	err := s.db.QueryRowContext(ctx, query, alias).Scan(&gas)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("finding gas alias: %w", err)
	}

	return gas, true, nil
}

func (s *Store) UpsertAlias(ctx context.Context, a gasalias.Alias) error {
	query := `
		INSERT INTO gas_aliases (alias, gas_type, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (alias) DO UPDATE SET gas_type = EXCLUDED.gas_type
	`

	if _, err := s.db.ExecContext(ctx, query, a.Alias, a.GasType); err != nil {
		return fmt.Errorf("saving gas alias: %w", err)
	}

	return nil
}

func (s *Store) ListAliases(ctx context.Context) ([]gasalias.Alias, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT alias, gas_type FROM gas_aliases ORDER BY alias`)
	if err != nil {
		return nil, fmt.Errorf("listing gas aliases: %w", err)
	}
	defer rows.Close()

	var aliases []gasalias.Alias

	for rows.Next() {
		var a gasalias.Alias
		if err := rows.Scan(&a.Alias, &a.GasType); err != nil {
			return nil, fmt.Errorf("scanning gas alias: %w", err)
		}

		aliases = append(aliases, a)
	}

	return aliases, rows.Err()
}
