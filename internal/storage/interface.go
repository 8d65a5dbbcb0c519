package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/lifegrid/internal/models"
)

// ErrNotFound is returned when a lookup by date or id matches no row.
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error

	// Schema
	ApplyMigrations(logFn func(string)) (int, error)
	// SchemaVersion returns the database's version and the newest embedded one.
	SchemaVersion() (current, latest int, err error)

	// Day logs
	GetDayLog(ctx context.Context, date models.Date) (models.DayLog, error)
	SaveDayLog(ctx context.Context, log models.DayLog) (models.DayLog, error)
	GetDayLogs(ctx context.Context, start, end models.Date) ([]models.DayLog, error)

	// Daily summaries
	GetDailySummary(ctx context.Context, date models.Date) (models.DailySummary, error)
	SaveDailySummary(ctx context.Context, summary models.DailySummary) (models.DailySummary, error)

	// Dreams
	GetDream(ctx context.Context, date models.Date) (models.Dream, error)
	SaveDream(ctx context.Context, dream models.Dream) (models.Dream, error)
	GetDreams(ctx context.Context, start, end models.Date) ([]models.Dream, error)
	// ResetDream sets an existing row back to "no dream". It reports false,
	// and creates nothing, when the date has no row.
	ResetDream(ctx context.Context, date models.Date) (bool, error)

	// Notable events
	AddEvent(ctx context.Context, event models.NotableEvent) (models.NotableEvent, error)
	GetEvent(ctx context.Context, id string) (models.NotableEvent, error)
	// GetEvents lists events in [start, end], newest date first, then newest created first.
	GetEvents(ctx context.Context, start, end models.Date) ([]models.NotableEvent, error)
	DeleteEvent(ctx context.Context, id string) error

	// Bulk Retrieval for Migration
	GetAllDayLogs(ctx context.Context) ([]models.DayLog, error)
	GetAllDailySummaries(ctx context.Context) ([]models.DailySummary, error)
	GetAllDreams(ctx context.Context) ([]models.Dream, error)
	GetAllEvents(ctx context.Context) ([]models.NotableEvent, error)

	// Utils
	GetConfigPath() string
	Driver() string
}
