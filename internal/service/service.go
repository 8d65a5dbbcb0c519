// Package service applies the write rules (future-date gate, normalization,
// reconstruction flag) on top of a storage.Provider and assembles the read
// views served by the API and the CLI.
package service

import (
	"context"
	stderrors "errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/dashboard"
	"github.com/julianstephens/lifegrid/internal/errors"
	"github.com/julianstephens/lifegrid/internal/logger"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage"
	"github.com/julianstephens/lifegrid/internal/utils"
	"github.com/julianstephens/lifegrid/internal/validation"
)

// ResetStatus is the outcome of ResetDream.
type ResetStatus string

const (
	ResetDone     ResetStatus = "reset"
	ResetNoRecord ResetStatus = "no_record"
)

type Service struct {
	store storage.Provider
	now   func() time.Time
	loc   *time.Location
}

// New returns a Service. "Today" is the date of now() in loc; a nil now uses
// time.Now and a nil loc uses the local timezone.
func New(store storage.Provider, now func() time.Time, loc *time.Location) *Service {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, now: now, loc: loc}
}

// Today is the current calendar date in the configured timezone.
func (s *Service) Today() models.Date {
	return utils.TodayIn(s.now(), s.loc)
}

func (s *Service) rejectFuture(what string, date models.Date) error {
	if date.After(s.Today()) {
		return errors.FutureDate(what, date)
	}
	return nil
}

// isReconstructed reports whether date is older than the live window
// (today and yesterday).
func (s *Service) isReconstructed(date models.Date) bool {
	return date.Before(s.Today().AddDays(-(constants.LiveWindowDays - 1)))
}

// SaveDayLog validates and stores the hour grid for date, replacing any
// existing grid.
func (s *Service) SaveDayLog(ctx context.Context, date models.Date, raw []*int) (models.DayLog, error) {
	if err := s.rejectFuture("day log", date); err != nil {
		return models.DayLog{}, err
	}
	hours, err := validation.NormalizeHours(raw)
	if err != nil {
		return models.DayLog{}, err
	}

	log := models.DayLog{
		Entry:           models.Entry{Date: date},
		Hours:           hours,
		IsReconstructed: s.isReconstructed(date),
	}
	saved, err := s.store.SaveDayLog(ctx, log)
	if err != nil {
		return models.DayLog{}, err
	}
	logger.Debug("Saved day log", "date", date, "reconstructed", saved.IsReconstructed)
	return saved, nil
}

// GetDayLog returns nil when date has no log.
func (s *Service) GetDayLog(ctx context.Context, date models.Date) (*models.DayLog, error) {
	return optional(s.store.GetDayLog(ctx, date))
}

// SaveDailySummary replaces the summary for date; nil fields are stored as null.
func (s *Service) SaveDailySummary(ctx context.Context, date models.Date, highlight, reflection *string) (models.DailySummary, error) {
	if err := s.rejectFuture("daily summary", date); err != nil {
		return models.DailySummary{}, err
	}
	return s.store.SaveDailySummary(ctx, models.DailySummary{
		Entry:      models.Entry{Date: date},
		Highlight:  highlight,
		Reflection: reflection,
	})
}

func (s *Service) GetDailySummary(ctx context.Context, date models.Date) (*models.DailySummary, error) {
	return optional(s.store.GetDailySummary(ctx, date))
}

// SaveDream stores the dream state for date. The description only survives
// when the dream was remembered.
func (s *Service) SaveDream(ctx context.Context, date models.Date, state int, description *string) (models.Dream, error) {
	if err := s.rejectFuture("dream", date); err != nil {
		return models.Dream{}, err
	}
	ds := models.DreamState(state)
	if !ds.Valid() {
		return models.Dream{}, errors.Validationf("dream_state",
			"dream_state must be 0 (none), 1 (unremembered) or 2 (remembered), got %d", state)
	}
	if ds != models.DreamRemembered {
		description = nil
	}
	return s.store.SaveDream(ctx, models.Dream{
		Entry:       models.Entry{Date: date},
		State:       ds,
		Description: description,
	})
}

func (s *Service) GetDream(ctx context.Context, date models.Date) (*models.Dream, error) {
	return optional(s.store.GetDream(ctx, date))
}

// ResetDream sets an existing dream back to "none". A date with no row stays
// without one.
func (s *Service) ResetDream(ctx context.Context, date models.Date) (ResetStatus, error) {
	ok, err := s.store.ResetDream(ctx, date)
	if err != nil {
		return "", err
	}
	if !ok {
		return ResetNoRecord, nil
	}
	return ResetDone, nil
}

// EventInput is the caller-supplied part of a notable event.
type EventInput struct {
	Date        models.Date `json:"date"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Category    *int        `json:"category"`
}

func (s *Service) CreateEvent(ctx context.Context, in EventInput) (models.NotableEvent, error) {
	if in.Date.IsZero() {
		return models.NotableEvent{}, errors.Validation("date", "date is required")
	}
	if err := s.rejectFuture("event", in.Date); err != nil {
		return models.NotableEvent{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.NotableEvent{}, errors.Validation("title", "title must not be empty")
	}
	// Free tag, but it must fit the smallest column type either backend uses.
	if c := in.Category; c != nil && (*c < math.MinInt16 || *c > math.MaxInt16) {
		return models.NotableEvent{}, errors.Validationf("category",
			"category %d is out of range (%d to %d)", *c, math.MinInt16, math.MaxInt16)
	}

	event, err := s.store.AddEvent(ctx, models.NotableEvent{
		Date:        in.Date,
		Title:       title,
		Description: in.Description,
		Category:    in.Category,
	})
	if err != nil {
		return models.NotableEvent{}, err
	}
	logger.Debug("Created event", "id", event.ID, "date", event.Date)
	return event, nil
}

// ListEvents returns events in [start, end]. A nil end means today and a nil
// start means the 30 days ending on end.
func (s *Service) ListEvents(ctx context.Context, start, end *models.Date) ([]models.NotableEvent, error) {
	e := s.Today()
	if end != nil {
		e = *end
	}
	st := e.AddDays(-(constants.DefaultEventDays - 1))
	if start != nil {
		st = *start
	}
	if st.After(e) {
		return nil, errors.Range(st, e)
	}
	return s.store.GetEvents(ctx, st, e)
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return errors.Validationf("event_id", "invalid event id %q", id)
	}
	if err := s.store.DeleteEvent(ctx, parsed.String()); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("event", parsed.String())
		}
		return err
	}
	return nil
}

// WeeklyDashboard summarizes the seven days ending today.
func (s *Service) WeeklyDashboard(ctx context.Context) (dashboard.Weekly, error) {
	return s.WeeklyDashboardEnding(ctx, s.Today())
}

// WeeklyDashboardEnding summarizes the seven days ending on end.
func (s *Service) WeeklyDashboardEnding(ctx context.Context, end models.Date) (dashboard.Weekly, error) {
	start, end := dashboard.Window(end)
	logs, err := s.store.GetDayLogs(ctx, start, end)
	if err != nil {
		return dashboard.Weekly{}, err
	}
	dreams, err := s.store.GetDreams(ctx, start, end)
	if err != nil {
		return dashboard.Weekly{}, err
	}
	return dashboard.Build(end, logs, dreams), nil
}

// DaySnapshot is everything recorded for one date.
type DaySnapshot struct {
	Date    models.Date           `json:"date"`
	Log     *models.DayLog        `json:"day_log"`
	Summary *models.DailySummary  `json:"daily_summary"`
	Dream   *models.Dream         `json:"dream"`
	Events  []models.NotableEvent `json:"events"`
}

// Day gathers the log, summary, dream and events for date.
func (s *Service) Day(ctx context.Context, date models.Date) (DaySnapshot, error) {
	snap := DaySnapshot{Date: date}
	var err error
	if snap.Log, err = s.GetDayLog(ctx, date); err != nil {
		return DaySnapshot{}, err
	}
	if snap.Summary, err = s.GetDailySummary(ctx, date); err != nil {
		return DaySnapshot{}, err
	}
	if snap.Dream, err = s.GetDream(ctx, date); err != nil {
		return DaySnapshot{}, err
	}
	if snap.Events, err = s.store.GetEvents(ctx, date, date); err != nil {
		return DaySnapshot{}, err
	}
	return snap, nil
}

// optional turns storage.ErrNotFound into a nil record.
func optional[T any](rec T, err error) (*T, error) {
	if stderrors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
