package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "init") {
		t.Fatalf("Load() on missing file = %v, want init hint", err)
	}
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lifegrid.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("SchemaVersion = %d/%d, want equal and >= 1", current, latest)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()
	if err := reopened.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if reopened.GetConfigPath() != path || reopened.Driver() != "sqlite" {
		t.Errorf("GetConfigPath/Driver = %s/%s", reopened.GetConfigPath(), reopened.Driver())
	}
}

func TestDayLogRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	date := models.NewDate(2024, time.January, 1)

	hours := models.EmptyHours()
	for i := 0; i < 24; i++ {
		hours[i] = i % 12
	}
	hours[23] = -1

	saved, err := store.SaveDayLog(ctx, models.DayLog{
		Entry:           models.Entry{Date: date},
		Hours:           hours,
		IsReconstructed: true,
	})
	if err != nil {
		t.Fatalf("SaveDayLog failed: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("SaveDayLog did not assign identity: %+v", saved.Entry)
	}

	got, err := store.GetDayLog(ctx, date)
	if err != nil {
		t.Fatalf("GetDayLog failed: %v", err)
	}
	if len(got.Hours) != 24 {
		t.Fatalf("len(hours) = %d", len(got.Hours))
	}
	for i := range hours {
		if got.Hours[i] != hours[i] {
			t.Errorf("hour %d = %d, want %d", i, got.Hours[i], hours[i])
		}
	}
	if !got.IsReconstructed || !got.Date.Equal(date) || got.ID != saved.ID {
		t.Errorf("GetDayLog = %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestUpsertKeepsIdentity(t *testing.T) {
	store := setupTestStore(t)
	store.Now = fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()
	date := models.NewDate(2024, time.January, 2)

	first, err := store.SaveDayLog(ctx, models.DayLog{Entry: models.Entry{Date: date}, Hours: models.EmptyHours()})
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	hours := models.EmptyHours()
	hours[0] = 0
	second, err := store.SaveDayLog(ctx, models.DayLog{Entry: models.Entry{Date: date}, Hours: hours, IsReconstructed: true})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("id changed on overwrite: %s -> %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed on overwrite")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at not advanced: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	got, err := store.GetDayLog(ctx, date)
	if err != nil {
		t.Fatalf("GetDayLog failed: %v", err)
	}
	if got.Hours[0] != 0 || !got.IsReconstructed {
		t.Errorf("overwrite not persisted: %+v", got)
	}

	all, err := store.GetAllDayLogs(ctx)
	if err != nil {
		t.Fatalf("GetAllDayLogs failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected one row per date, got %d", len(all))
	}
}

func TestGetDayLogNotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.GetDayLog(context.Background(), models.NewDate(2024, time.May, 1))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetDayLog miss = %v, want ErrNotFound", err)
	}
}

func TestGetDayLogsRange(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := models.NewDate(2024, time.February, 25)

	for i := 0; i < 6; i++ {
		if _, err := store.SaveDayLog(ctx, models.DayLog{Entry: models.Entry{Date: base.AddDays(i)}, Hours: models.EmptyHours()}); err != nil {
			t.Fatalf("SaveDayLog %d failed: %v", i, err)
		}
	}

	logs, err := store.GetDayLogs(ctx, base.AddDays(1), base.AddDays(4))
	if err != nil {
		t.Fatalf("GetDayLogs failed: %v", err)
	}
	if len(logs) != 4 {
		t.Fatalf("expected 4 logs, got %d", len(logs))
	}
	for i, l := range logs {
		if want := base.AddDays(i + 1); !l.Date.Equal(want) {
			t.Errorf("logs[%d].Date = %s, want %s", i, l.Date, want)
		}
	}
}

func TestDailySummaryFullReplacement(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	date := models.NewDate(2024, time.March, 3)

	if _, err := store.SaveDailySummary(ctx, models.DailySummary{
		Entry:      models.Entry{Date: date},
		Highlight:  strPtr("hiked"),
		Reflection: strPtr("tired"),
	}); err != nil {
		t.Fatalf("SaveDailySummary failed: %v", err)
	}

	if _, err := store.SaveDailySummary(ctx, models.DailySummary{
		Entry:     models.Entry{Date: date},
		Highlight: strPtr("read"),
	}); err != nil {
		t.Fatalf("SaveDailySummary overwrite failed: %v", err)
	}

	got, err := store.GetDailySummary(ctx, date)
	if err != nil {
		t.Fatalf("GetDailySummary failed: %v", err)
	}
	if got.Highlight == nil || *got.Highlight != "read" {
		t.Errorf("highlight = %v", got.Highlight)
	}
	if got.Reflection != nil {
		t.Errorf("reflection = %q, want nil after full replacement", *got.Reflection)
	}
}

func TestDreamResetAndNoRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	date := models.NewDate(2024, time.April, 4)

	ok, err := store.ResetDream(ctx, date)
	if err != nil {
		t.Fatalf("ResetDream on missing date failed: %v", err)
	}
	if ok {
		t.Error("ResetDream on missing date reported a reset")
	}
	if _, err := store.GetDream(ctx, date); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ResetDream created a row: %v", err)
	}

	if _, err := store.SaveDream(ctx, models.Dream{
		Entry:       models.Entry{Date: date},
		State:       models.DreamRemembered,
		Description: strPtr("flying"),
	}); err != nil {
		t.Fatalf("SaveDream failed: %v", err)
	}

	ok, err = store.ResetDream(ctx, date)
	if err != nil || !ok {
		t.Fatalf("ResetDream = %v, %v; want true, nil", ok, err)
	}

	got, err := store.GetDream(ctx, date)
	if err != nil {
		t.Fatalf("GetDream failed: %v", err)
	}
	if got.State != models.DreamNone || got.Description != nil {
		t.Errorf("dream after reset = %+v", got)
	}

	dreams, err := store.GetDreams(ctx, date.AddDays(-1), date)
	if err != nil || len(dreams) != 1 {
		t.Errorf("GetDreams = %v, %v", dreams, err)
	}
}

func TestEventsOrderingAndDelete(t *testing.T) {
	store := setupTestStore(t)
	store.Now = fixedClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	d1 := models.NewDate(2024, time.June, 1)
	d2 := models.NewDate(2024, time.June, 2)

	first, err := store.AddEvent(ctx, models.NotableEvent{Date: d1, Title: "first"})
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	second, err := store.AddEvent(ctx, models.NotableEvent{Date: d1, Title: "second", Category: intPtr(42)})
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	third, err := store.AddEvent(ctx, models.NotableEvent{Date: d2, Title: "third", Description: strPtr("later day")})
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	events, err := store.GetEvents(ctx, d1, d2)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	want := []string{third.ID, second.ID, first.ID}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, id := range want {
		if events[i].ID != id {
			t.Errorf("events[%d] = %s (%s), want %s", i, events[i].ID, events[i].Title, id)
		}
	}
	if events[1].Category == nil || *events[1].Category != 42 {
		t.Errorf("category not stored as given: %v", events[1].Category)
	}

	onlyD1, err := store.GetEvents(ctx, d1, d1)
	if err != nil || len(onlyD1) != 2 {
		t.Errorf("GetEvents(d1, d1) = %d events, %v", len(onlyD1), err)
	}

	if err := store.DeleteEvent(ctx, second.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if err := store.DeleteEvent(ctx, second.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteEvent = %v, want ErrNotFound", err)
	}
	if _, err := store.GetEvent(ctx, second.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEvent after delete = %v, want ErrNotFound", err)
	}

	all, err := store.GetAllEvents(ctx)
	if err != nil || len(all) != 2 {
		t.Errorf("GetAllEvents = %d events, %v", len(all), err)
	}
}

func TestEmptyEventListIsNotNil(t *testing.T) {
	store := setupTestStore(t)
	events, err := store.GetEvents(context.Background(), models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 30))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("GetEvents = %#v, want empty non-nil slice", events)
	}
}

func TestPresetIdentityIsKeptOnInsert(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	created := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)

	saved, err := store.SaveDream(ctx, models.Dream{
		Entry: models.Entry{
			ID:        "7b1d3f8e-2c4a-4e0b-9a51-0d3c2b1a9f77",
			Date:      models.NewDate(2023, time.December, 31),
			CreatedAt: created,
			UpdatedAt: created,
		},
		State: models.DreamUnremembered,
	})
	if err != nil {
		t.Fatalf("SaveDream failed: %v", err)
	}
	got, err := store.GetDream(ctx, saved.Date)
	if err != nil {
		t.Fatalf("GetDream failed: %v", err)
	}
	if got.ID != saved.ID || !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(created) {
		t.Errorf("preset identity not kept: %+v", got.Entry)
	}
}
