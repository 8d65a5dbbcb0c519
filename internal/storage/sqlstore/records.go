package sqlstore

import (
	"context"
	"fmt"

	"github.com/julianstephens/lifegrid/internal/models"
)

func (s *Store) dayLogs() dateTable[models.DayLog, *models.DayLog] {
	return dateTable[models.DayLog, *models.DayLog]{
		name:    "day_logs",
		columns: []string{"hours", "is_reconstructed"},
		values: func(l *models.DayLog) ([]any, error) {
			hours, err := s.dialect.HoursValue(l.Hours)
			if err != nil {
				return nil, err
			}
			return []any{hours, l.IsReconstructed}, nil
		},
		scan: func(l *models.DayLog) []any {
			return []any{s.dialect.HoursScanner(&l.Hours), &l.IsReconstructed}
		},
	}
}

func (s *Store) summaries() dateTable[models.DailySummary, *models.DailySummary] {
	return dateTable[models.DailySummary, *models.DailySummary]{
		name:    "daily_summaries",
		columns: []string{"highlight", "reflection"},
		values: func(d *models.DailySummary) ([]any, error) {
			return []any{d.Highlight, d.Reflection}, nil
		},
		scan: func(d *models.DailySummary) []any {
			return []any{&d.Highlight, &d.Reflection}
		},
	}
}

func (s *Store) dreams() dateTable[models.Dream, *models.Dream] {
	return dateTable[models.Dream, *models.Dream]{
		name:    "dreams",
		columns: []string{"dream_state", "description"},
		values: func(d *models.Dream) ([]any, error) {
			return []any{int(d.State), d.Description}, nil
		},
		scan: func(d *models.Dream) []any {
			return []any{&d.State, &d.Description}
		},
	}
}

func (s *Store) GetDayLog(ctx context.Context, date models.Date) (models.DayLog, error) {
	return s.dayLogs().get(ctx, s, date)
}

func (s *Store) SaveDayLog(ctx context.Context, log models.DayLog) (models.DayLog, error) {
	return upsertByDate(ctx, s, s.dayLogs(), log)
}

func (s *Store) GetDayLogs(ctx context.Context, start, end models.Date) ([]models.DayLog, error) {
	return s.dayLogs().list(ctx, s, start, end)
}

func (s *Store) GetAllDayLogs(ctx context.Context) ([]models.DayLog, error) {
	return s.dayLogs().list(ctx, s, models.Date{}, models.Date{})
}

func (s *Store) GetDailySummary(ctx context.Context, date models.Date) (models.DailySummary, error) {
	return s.summaries().get(ctx, s, date)
}

func (s *Store) SaveDailySummary(ctx context.Context, summary models.DailySummary) (models.DailySummary, error) {
	return upsertByDate(ctx, s, s.summaries(), summary)
}

func (s *Store) GetAllDailySummaries(ctx context.Context) ([]models.DailySummary, error) {
	return s.summaries().list(ctx, s, models.Date{}, models.Date{})
}

func (s *Store) GetDream(ctx context.Context, date models.Date) (models.Dream, error) {
	return s.dreams().get(ctx, s, date)
}

func (s *Store) SaveDream(ctx context.Context, dream models.Dream) (models.Dream, error) {
	return upsertByDate(ctx, s, s.dreams(), dream)
}

func (s *Store) GetDreams(ctx context.Context, start, end models.Date) ([]models.Dream, error) {
	return s.dreams().list(ctx, s, start, end)
}

func (s *Store) GetAllDreams(ctx context.Context) ([]models.Dream, error) {
	return s.dreams().list(ctx, s, models.Date{}, models.Date{})
}

func (s *Store) ResetDream(ctx context.Context, date models.Date) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		s.q("UPDATE dreams SET dream_state = ?, description = NULL, updated_at = ? WHERE date = ?"),
		int(models.DreamNone), s.dialect.TimeValue(s.now()), date)
	if err != nil {
		return false, fmt.Errorf("failed to reset dream for %s: %w", date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to reset dream for %s: %w", date, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit dream reset: %w", err)
	}
	return n > 0, nil
}
