package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage"
)

const selectEventSQL = "SELECT id, date, title, description, category, created_at FROM notable_events"

func scanEvent(row interface{ Scan(...any) error }) (models.NotableEvent, error) {
	var e models.NotableEvent
	err := row.Scan(&e.ID, &e.Date, &e.Title, &e.Description, &e.Category, timeScanner{&e.CreatedAt})
	return e, err
}

// AddEvent inserts an event. An empty ID gets a fresh UUID and a zero
// CreatedAt is stamped with the current time.
func (s *Store) AddEvent(ctx context.Context, event models.NotableEvent) (models.NotableEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO notable_events (id, date, title, description, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		event.ID, event.Date, event.Title, event.Description, event.Category, s.dialect.TimeValue(event.CreatedAt))
	if err != nil {
		return models.NotableEvent{}, fmt.Errorf("failed to insert event: %w", err)
	}
	return event, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (models.NotableEvent, error) {
	row := s.db.QueryRowContext(ctx, s.q(selectEventSQL+" WHERE id = ?"), id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotableEvent{}, storage.ErrNotFound
	}
	if err != nil {
		return models.NotableEvent{}, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return e, nil
}

func (s *Store) GetEvents(ctx context.Context, start, end models.Date) ([]models.NotableEvent, error) {
	return s.listEvents(ctx, start, end)
}

func (s *Store) GetAllEvents(ctx context.Context) ([]models.NotableEvent, error) {
	return s.listEvents(ctx, models.Date{}, models.Date{})
}

func (s *Store) listEvents(ctx context.Context, start, end models.Date) ([]models.NotableEvent, error) {
	query := selectEventSQL
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
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.NotableEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM notable_events WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
