package views

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lifegrid/internal/dashboard"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/service"
	"github.com/julianstephens/lifegrid/internal/storage/sqlite"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleLog(date models.Date) models.DayLog {
	hours := models.EmptyHours()
	for i := 0; i < 8; i++ {
		hours[i] = 0
	}
	for i := 9; i < 17; i++ {
		hours[i] = 1
	}
	return models.DayLog{Entry: models.Entry{Date: date}, Hours: hours}
}

func TestResolveDate(t *testing.T) {
	today := models.NewDate(2024, 3, 15)

	tests := []struct {
		raw     string
		want    models.Date
		wantErr bool
	}{
		{"", today, false},
		{"today", today, false},
		{"Yesterday", models.NewDate(2024, 3, 14), false},
		{"2024-01-02", models.NewDate(2024, 1, 2), false},
		{"02/01/2024", models.Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := resolveDate(today, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveDate(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("resolveDate(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBlocks(t *testing.T) {
	hours := sampleLog(models.NewDate(2024, 3, 1)).Hours
	hours[20] = 99 // folds into the surrounding unassigned run

	got := blocks(hours)
	want := []block{
		{start: 0, end: 7, code: 0},
		{start: 8, end: 8, code: -1},
		{start: 9, end: 16, code: 1},
		{start: 17, end: 23, code: -1},
	}
	if len(got) != len(want) {
		t.Fatalf("blocks() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderCategories(t *testing.T) {
	out := RenderCategories()
	for _, label := range []string{"Sleep", "Dating / Partner", "Getting Ready / Misc"} {
		if !strings.Contains(out, label) {
			t.Errorf("RenderCategories() missing %q", label)
		}
	}
}

func TestRenderDay(t *testing.T) {
	date := models.NewDate(2024, 3, 1)

	empty := RenderDay(service.DaySnapshot{Date: date})
	if !strings.Contains(empty, "No hours logged.") {
		t.Errorf("empty day output = %q", empty)
	}

	log := sampleLog(date)
	log.IsReconstructed = true
	snap := service.DaySnapshot{
		Date:    date,
		Log:     &log,
		Summary: &models.DailySummary{Highlight: strPtr("long walk")},
		Dream:   &models.Dream{State: models.DreamRemembered, Description: strPtr("a lighthouse")},
		Events: []models.NotableEvent{
			{Title: "concert", Category: intPtr(5)},
			{Title: "odd tag", Category: intPtr(99)},
		},
	}
	out := RenderDay(snap)
	for _, want := range []string{
		"2024-03-01",
		"(reconstructed)",
		"00:00-07:59",
		"Sleep",
		"Tracked 16h, unassigned 8h, sleep 8h",
		"long walk",
		"remembered - a lighthouse",
		"concert",
		"Friends & Social",
		"category 99",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDay() missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderWeek(t *testing.T) {
	end := models.NewDate(2024, 3, 7)
	w := dashboard.Build(end, []models.DayLog{sampleLog(end)}, nil)

	out := RenderWeek(w)
	for _, want := range []string{
		"2024-03-01 to 2024-03-07",
		"not logged",
		"Logged days: 1/7",
		"Most frequent: Sleep",
		"Most balanced: 2024-03-07",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderWeek() missing %q in:\n%s", want, out)
		}
	}
}

func TestExport(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "lifegrid.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer store.Close()

	ctx := t.Context()
	date := models.NewDate(2024, 3, 1)
	if _, err := store.SaveDayLog(ctx, sampleLog(date)); err != nil {
		t.Fatalf("SaveDayLog() error = %v", err)
	}
	if _, err := store.AddEvent(ctx, models.NotableEvent{Date: date, Title: "concert"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	doc, err := Collect(ctx, store, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, doc, "yaml"); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		var decoded struct {
			App     string `yaml:"app"`
			DayLogs []struct {
				Date  string `yaml:"date"`
				Hours []int  `yaml:"hours"`
			} `yaml:"day_logs"`
			Events []struct {
				Title string `yaml:"title"`
			} `yaml:"notable_events"`
		}
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, buf.String())
		}
		if decoded.App != "lifegrid" {
			t.Errorf("app = %q", decoded.App)
		}
		if len(decoded.DayLogs) != 1 || decoded.DayLogs[0].Date != "2024-03-01" || len(decoded.DayLogs[0].Hours) != 24 {
			t.Errorf("day_logs = %+v", decoded.DayLogs)
		}
		if len(decoded.Events) != 1 || decoded.Events[0].Title != "concert" {
			t.Errorf("notable_events = %+v", decoded.Events)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, doc, "json"); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		var decoded Export
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("json.Unmarshal() error = %v", err)
		}
		if len(decoded.DayLogs) != 1 || !decoded.DayLogs[0].Date.Equal(date) {
			t.Errorf("day_logs = %+v", decoded.DayLogs)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := Write(&bytes.Buffer{}, doc, "xml"); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}
