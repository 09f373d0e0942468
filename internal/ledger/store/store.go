package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Append writes entries inside the caller's transaction and fills in the
// assigned ID and Timestamp. Rows are inserted with a single parameterized
// multi-row statement.
func Append(ctx context.Context, q Execer, entries []*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	var sb strings.Builder

	sb.WriteString("INSERT INTO transactions (user_id, cylinder_id, action, company_id) VALUES ")

	args := make([]any, 0, len(entries)*4)

	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}

		n := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)

		args = append(args, e.UserID, e.CylinderID, e.Action, e.CompanyID)
	}

	sb.WriteString(" RETURNING id, timestamp")

	rows, err := q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	defer rows.Close()

	// Postgres returns RETURNING rows in VALUES order for a single INSERT.
	i := 0
	for rows.Next() {
		if i >= len(entries) {
			return fmt.Errorf("appending transactions: more rows returned than inserted")
		}

		if err := rows.Scan(&entries[i].ID, &entries[i].Timestamp); err != nil {
			return fmt.Errorf("scanning appended transaction: %w", err)
		}

		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating appended transactions: %w", err)
	}

	if i != len(entries) {
		return fmt.Errorf("appending transactions: inserted %d of %d rows", i, len(entries))
	}

	return nil
}

const selectEntryColumns = `
	t.id, t.user_id, t.cylinder_id, t.action, t.company_id, t.timestamp,
	COALESCE(u.username, ''), COALESCE(c.name, ac.name, '')
`

const entryJoins = `
	FROM transactions t
	LEFT JOIN users u ON u.id = t.user_id
	LEFT JOIN companies c ON c.id = t.company_id
	LEFT JOIN archived_companies ac ON ac.id = t.company_id
`

// sortColumns is the only source of ORDER BY text; caller input never
// reaches the query string.
var sortColumns = map[ledger.SortField]string{
	ledger.SortCylinder:  "t.cylinder_id",
	ledger.SortAction:    "t.action",
	ledger.SortTimestamp: "t.timestamp",
}

type queryBuilder struct {
	where []string
	args  []any
}

func (b *queryBuilder) add(clause string, arg any) {
	b.args = append(b.args, arg)
	b.where = append(b.where, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(b.args))))
}

func (b *queryBuilder) addRange(r ledger.DateRange) {
	if r.Start != nil {
		b.add("t.timestamp >= ?", *r.Start)
	}

	if r.End != nil {
		b.add("t.timestamp < ?", *r.End)
	}
}

func (b *queryBuilder) whereSQL() string {
	if len(b.where) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(b.where, " AND ")
}

func buildQuery(f ledger.Filter) (string, []any) {
	var b queryBuilder

	if f.UserID != nil {
		b.add("t.user_id = ?", *f.UserID)
	}

	b.addRange(f.Range)

	if s := strings.TrimSpace(f.Search); s != "" {
		b.args = append(b.args, "%"+s+"%")
		b.where = append(b.where, fmt.Sprintf(
			"(t.cylinder_id ILIKE $%[1]d OR t.action ILIKE $%[1]d OR COALESCE(c.name, ac.name, '') ILIKE $%[1]d)",
			len(b.args),
		))
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = sortColumns[ledger.SortTimestamp]
	}

	dir := "DESC"
	if f.SortOrder == ledger.SortAsc {
		dir = "ASC"
	}

	query := "SELECT " + selectEntryColumns + entryJoins + b.whereSQL() +
		fmt.Sprintf(" ORDER BY %s %s, t.id %s", col, dir, dir)

	if f.Limit > 0 {
		b.args = append(b.args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(b.args))
	}

	return query, b.args
}

func (s *Store) Query(ctx context.Context, filter ledger.Filter) ([]*ledger.Entry, error) {
	query, args := buildQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		var (
			e      ledger.Entry
			action string
		)

		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CylinderID, &action, &e.CompanyID, &e.Timestamp,
			&e.Username, &e.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		e.Action = ledger.Action(action)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return entries, nil
}

func (s *Store) Count(ctx context.Context, r ledger.DateRange) (int64, error) {
	var b queryBuilder

	b.addRange(r)

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+b.whereSQL(), b.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return n, nil
}

func (s *Store) Movement(ctx context.Context, r ledger.DateRange) (ledger.Movement, error) {
	var b queryBuilder

	b.addRange(r)

	query := `SELECT COUNT(DISTINCT t.cylinder_id), COUNT(*), MAX(t.timestamp)
		FROM transactions t` + b.whereSQL()

	var (
		m      ledger.Movement
		latest sql.NullTime
	)

	if err := s.db.QueryRowContext(ctx, query, b.args...).Scan(&m.UniqueCylinders, &m.Entries, &latest); err != nil {
		return ledger.Movement{}, fmt.Errorf("summarizing movement: %w", err)
	}

	if latest.Valid {
		m.LatestActivity = &latest.Time
	}

	return m, nil
}

func (s *Store) CountByAction(ctx context.Context, r ledger.DateRange) ([]ledger.ActionCount, error) {
	var b queryBuilder

	b.addRange(r)

	return s.countByAction(ctx, &b)
}

func (s *Store) CountByUser(ctx context.Context, userID uuid.UUID, r ledger.DateRange) ([]ledger.ActionCount, error) {
	var b queryBuilder

	b.add("t.user_id = ?", userID)
	b.addRange(r)

	return s.countByAction(ctx, &b)
}

func (s *Store) countByAction(ctx context.Context, b *queryBuilder) ([]ledger.ActionCount, error) {
	query := `SELECT t.action, COUNT(*) FROM transactions t` + b.whereSQL() +
		` GROUP BY t.action ORDER BY t.action`

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("counting by action: %w", err)
	}
	defer rows.Close()

	var counts []ledger.ActionCount

	for rows.Next() {
		var (
			c      ledger.ActionCount
			action string
		)

		if err := rows.Scan(&action, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning action count: %w", err)
		}

		c.Action = ledger.Action(action)
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

func (s *Store) DailyTrend(ctx context.Context, r ledger.DateRange) ([]ledger.TrendPoint, error) {
	var b queryBuilder

	b.addRange(r)

	query := `SELECT date_trunc('day', t.timestamp) AS day, t.action, COUNT(*)
		FROM transactions t` + b.whereSQL() + `
		GROUP BY day, t.action
		ORDER BY day ASC, t.action ASC`

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("querying trend: %w", err)
	}
	defer rows.Close()

	var points []ledger.TrendPoint

	for rows.Next() {
		var (
			p      ledger.TrendPoint
			action string
		)

		if err := rows.Scan(&p.Day, &action, &p.Count); err != nil {
			return nil, fmt.Errorf("scanning trend point: %w", err)
		}

		p.Action = ledger.Action(action)
		points = append(points, p)
	}

	return points, rows.Err()
}

func (s *Store) TopCompanies(ctx context.Context, r ledger.DateRange, limit int) ([]ledger.CompanyCount, error) {
	var b queryBuilder

	b.add("t.action = ?", ledger.ActionDispatch)
	b.where = append(b.where, "t.company_id IS NOT NULL")
	b.addRange(r)

	b.args = append(b.args, limit)

	query := `SELECT t.company_id, COALESCE(MAX(c.name), MAX(ac.name), ''), COUNT(*) AS dispatches
		FROM transactions t
		LEFT JOIN companies c ON c.id = t.company_id
		LEFT JOIN archived_companies ac ON ac.id = t.company_id` + b.whereSQL() + `
		GROUP BY t.company_id
		ORDER BY dispatches DESC, t.company_id ASC
		LIMIT $` + fmt.Sprint(len(b.args))

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("querying top companies: %w", err)
	}
	defer rows.Close()

	var top []ledger.CompanyCount

	for rows.Next() {
		var c ledger.CompanyCount
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning company count: %w", err)
		}

		top = append(top, c)
	}

	return top, rows.Err()
}
