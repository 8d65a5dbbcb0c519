package views

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/lifegrid/internal/categories"
	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/errors"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/service"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show: YYYY-MM-DD, today or yesterday. Defaults to today."`
	JSON bool   `help:"Print the raw records as JSON."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	svc := ctx.Service()
	date, err := resolveDate(svc.Today(), c.Date)
	if err != nil {
		return err
	}
	snap, err := svc.Day(context.Background(), date)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(snap)
	}
	fmt.Print(RenderDay(snap))
	return nil
}

// resolveDate accepts YYYY-MM-DD plus the words today and yesterday.
func resolveDate(today models.Date, raw string) (models.Date, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, errors.Validation("date", err.Error())
	}
	return d, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// block is a run of consecutive hours with the same code.
type block struct {
	start, end int // inclusive hour indexes
	code       int
}

func blocks(hours models.Hours) []block {
	var out []block
	for i, code := range hours {
		if !categories.Valid(code) {
			code = constants.UnassignedHour
		}
		if n := len(out); n > 0 && out[n-1].code == code {
			out[n-1].end = i
			continue
		}
		out = append(out, block{start: i, end: i, code: code})
	}
	return out
}

// RenderDay draws the hour grid as runs of categories followed by the
// summary, dream and events recorded for the date.
func RenderDay(snap service.DaySnapshot) string {
	var b strings.Builder

	title := snap.Date.String()
	if snap.Log != nil && snap.Log.IsReconstructed {
		title += " " + warnStyle.Render("(reconstructed)")
	}
	b.WriteString(headerStyle.Render(constants.AppDisplayName) + " " + titleStyle.Render(title))
	b.WriteString("\n\n")

	if snap.Log == nil {
		b.WriteString(dimStyle.Render("No hours logged."))
		b.WriteString("\n")
	} else {
		b.WriteString(swatchRow(snap.Log.Hours))
		b.WriteString("\n\n")
		for _, blk := range blocks(snap.Log.Hours) {
			n := blk.end - blk.start + 1
			fmt.Fprintf(&b, "  %02d:00-%02d:59  %-2dh  %s\n", blk.start, blk.end, n, categoryName(blk.code))
		}
		counts, tracked, unassigned := snap.Log.Hours.Counts()
		fmt.Fprintf(&b, "\n  Tracked %dh, unassigned %dh, sleep %dh\n", tracked, unassigned, counts[constants.SleepCategory])
	}

	var notes []string
	if s := snap.Summary; s != nil {
		if s.Highlight != nil && *s.Highlight != "" {
			notes = append(notes, "Highlight:  "+*s.Highlight)
		}
		if s.Reflection != nil && *s.Reflection != "" {
			notes = append(notes, "Reflection: "+*s.Reflection)
		}
	}
	if d := snap.Dream; d != nil && d.State != models.DreamNone {
		line := "Dream:      " + d.State.String()
		if d.Description != nil && *d.Description != "" {
			line += " - " + *d.Description
		}
		notes = append(notes, line)
	}
	if len(notes) > 0 {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(strings.Join(notes, "\n")))
		b.WriteString("\n")
	}

	if len(snap.Events) > 0 {
		b.WriteString("\n" + titleStyle.Render("Events") + "\n")
		for _, e := range snap.Events {
			line := "  • " + e.Title
			if e.Category != nil {
				line += dimStyle.Render(" [" + eventTag(*e.Category) + "]")
			}
			b.WriteString(line + "\n")
			if e.Description != nil && *e.Description != "" {
				b.WriteString(dimStyle.Render("    "+*e.Description) + "\n")
			}
		}
	}
	return b.String()
}

// swatchRow is the whole day as one cell per hour.
func swatchRow(hours models.Hours) string {
	var b strings.Builder
	b.WriteString("  ")
	for _, code := range hours {
		b.WriteString(swatch(code, 1))
	}
	return b.String()
}

// eventTag names an event's category. Event categories are free tags, so
// unknown codes are shown as numbers.
func eventTag(code int) string {
	if label, ok := categories.Label(code); ok {
		return label
	}
	return fmt.Sprintf("category %d", code)
}
