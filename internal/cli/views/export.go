package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage"
)

type ExportCmd struct {
	Format string `enum:"yaml,json" default:"yaml" help:"Output format (yaml or json)."`
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout."`
}

// Export is a full dump of every stored record.
type Export struct {
	App            string                `json:"app" yaml:"app"`
	Version        string                `json:"version" yaml:"version"`
	ExportedAt     time.Time             `json:"exported_at" yaml:"exported_at"`
	DayLogs        []models.DayLog       `json:"day_logs" yaml:"day_logs"`
	DailySummaries []models.DailySummary `json:"daily_summaries" yaml:"daily_summaries"`
	Dreams         []models.Dream        `json:"dreams" yaml:"dreams"`
	Events         []models.NotableEvent `json:"notable_events" yaml:"notable_events"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	now := time.Now
	if ctx.Now != nil {
		now = ctx.Now
	}
	doc, err := Collect(context.Background(), ctx.Store, now().UTC())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := Write(w, doc, c.Format); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Fprintf(os.Stderr, "✓ Exported %d day logs, %d summaries, %d dreams and %d events to %s\n",
			len(doc.DayLogs), len(doc.DailySummaries), len(doc.Dreams), len(doc.Events), c.Output)
	}
	return nil
}

// Collect reads every record from store.
func Collect(ctx context.Context, store storage.Provider, at time.Time) (Export, error) {
	doc := Export{App: constants.AppName, Version: constants.Version, ExportedAt: at}
	var err error
	if doc.DayLogs, err = store.GetAllDayLogs(ctx); err != nil {
		return Export{}, fmt.Errorf("failed to read day logs: %w", err)
	}
	if doc.DailySummaries, err = store.GetAllDailySummaries(ctx); err != nil {
		return Export{}, fmt.Errorf("failed to read daily summaries: %w", err)
	}
	if doc.Dreams, err = store.GetAllDreams(ctx); err != nil {
		return Export{}, fmt.Errorf("failed to read dreams: %w", err)
	}
	if doc.Events, err = store.GetAllEvents(ctx); err != nil {
		return Export{}, fmt.Errorf("failed to read events: %w", err)
	}
	return doc, nil
}

// Write encodes doc as "yaml" or "json".
func Write(w io.Writer, doc Export, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
