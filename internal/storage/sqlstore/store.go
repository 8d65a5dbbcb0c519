package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage"
)

// Store implements the record operations of storage.Provider on a *sql.DB.
// Backends embed it and add lifecycle methods.
type Store struct {
	db      *sql.DB
	dialect Dialect
	// Now stamps created_at/updated_at. Defaults to time.Now.
	Now func() time.Time
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect, Now: time.Now}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Driver() string {
	return s.dialect.Name()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) q(query string) string {
	return s.dialect.Rebind(query)
}

// now truncates to microseconds, the precision both databases keep.
func (s *Store) now() time.Time {
	return s.Now().UTC().Truncate(time.Microsecond)
}

// dateTable describes a table holding at most one row per date. columns are
// the mutable columns; values and scan must list them in the same order.
type dateTable[T any, P interface {
	*T
	models.DateKeyed
}] struct {
	name    string
	columns []string
	values  func(rec *T) ([]any, error)
	scan    func(rec *T) []any
}

func (t dateTable[T, P]) selectSQL() string {
	return "SELECT id, date, " + strings.Join(t.columns, ", ") + ", created_at, updated_at FROM " + t.name
}

func (t dateTable[T, P]) scanRow(row interface{ Scan(...any) error }) (T, error) {
	var rec T
	key := P(&rec).Key()
	dest := []any{&key.ID, &key.Date}
	dest = append(dest, t.scan(&rec)...)
	dest = append(dest, timeScanner{&key.CreatedAt}, timeScanner{&key.UpdatedAt})
	err := row.Scan(dest...)
	return rec, err
}

func (t dateTable[T, P]) get(ctx context.Context, s *Store, date models.Date) (T, error) {
	row := s.db.QueryRowContext(ctx, s.q(t.selectSQL()+" WHERE date = ?"), date)
	rec, err := t.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, storage.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s for %s: %w", t.name, date, err)
	}
	return rec, nil
}

// list returns rows ordered by date; a zero bound leaves that side open.
func (t dateTable[T, P]) list(ctx context.Context, s *Store, start, end models.Date) ([]T, error) {
	query := t.selectSQL()
	var where []string
	var args []any
	if !start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, start)
	}
	if !end.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, end)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := t.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// upsertByDate finds the row for rec's date and replaces its mutable columns,
// keeping id and created_at, or inserts a new row. An empty ID gets a fresh
// UUID; preset ID/CreatedAt/UpdatedAt are kept on insert so whole databases
// can be copied between stores.
func upsertByDate[T any, P interface {
	*T
	models.DateKeyed
}](ctx context.Context, s *Store, t dateTable[T, P], rec T) (T, error) {
	var zero T
	key := P(&rec).Key()
	if key.Date.IsZero() {
		return zero, fmt.Errorf("%s: date is required", t.name)
	}

	values, err := t.values(&rec)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", t.name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID string
	var createdAt time.Time
	err = tx.QueryRowContext(ctx, s.q("SELECT id, created_at FROM "+t.name+" WHERE date = ?"), key.Date).
		Scan(&existingID, timeScanner{&createdAt})

	now := s.now()
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if key.ID == "" {
			key.ID = uuid.NewString()
		}
		if key.CreatedAt.IsZero() {
			key.CreatedAt = now
		}
		if key.UpdatedAt.IsZero() {
			key.UpdatedAt = now
		}

		cols := append([]string{"id", "date"}, t.columns...)
		cols = append(cols, "created_at", "updated_at")
		args := append([]any{key.ID, key.Date}, values...)
		args = append(args, s.dialect.TimeValue(key.CreatedAt), s.dialect.TimeValue(key.UpdatedAt))

		query := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders(len(cols)) + ")"
		if _, err := tx.ExecContext(ctx, s.q(query), args...); err != nil {
			return zero, fmt.Errorf("failed to insert %s: %w", t.name, err)
		}
	case err != nil:
		return zero, fmt.Errorf("failed to look up %s for %s: %w", t.name, key.Date, err)
	default:
		key.ID = existingID
		key.CreatedAt = createdAt
		key.UpdatedAt = now

		sets := make([]string, 0, len(t.columns)+1)
		for _, c := range t.columns {
			sets = append(sets, c+" = ?")
		}
		sets = append(sets, "updated_at = ?")
		args := append(values, s.dialect.TimeValue(now), existingID)

		query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, s.q(query), args...); err != nil {
			return zero, fmt.Errorf("failed to update %s: %w", t.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit %s: %w", t.name, err)
	}
	return rec, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
