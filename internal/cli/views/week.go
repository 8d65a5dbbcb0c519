package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/dashboard"
)

type WeekCmd struct {
	End  string `help:"Last day of the week: YYYY-MM-DD, today or yesterday. Defaults to today."`
	JSON bool   `help:"Print the dashboard as JSON."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	svc := ctx.Service()
	end, err := resolveDate(svc.Today(), c.End)
	if err != nil {
		return err
	}
	weekly, err := svc.WeeklyDashboardEnding(context.Background(), end)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(weekly)
	}
	fmt.Print(RenderWeek(weekly))
	return nil
}

// RenderWeek draws one stacked bar per day, then the category totals,
// insights and dream counts.
func RenderWeek(w dashboard.Weekly) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(constants.AppDisplayName))
	b.WriteString(" " + titleStyle.Render(fmt.Sprintf("%s to %s", w.StartDate, w.EndDate)))
	b.WriteString("\n\n")

	for _, d := range w.Days {
		label := d.Date.Time().Format("Mon 01-02")
		if !d.HasLog {
			fmt.Fprintf(&b, "  %s  %s\n", label, dimStyle.Render("not logged"))
			continue
		}
		fmt.Fprintf(&b, "  %s  %s %2dh\n", label, dayBar(d), d.TrackedHours)
	}

	fmt.Fprintf(&b, "\n  Logged days: %d/%d   Tracked: %dh   Sleep: %dh (avg %.1fh)\n",
		w.LoggedDays, len(w.Days), w.TotalTrackedHours, w.TotalSleepHours, w.AverageSleepHours)

	if len(w.CategoryTotals) > 0 {
		b.WriteString("\n" + titleStyle.Render("Categories") + "\n")
		for _, t := range w.CategoryTotals {
			fmt.Fprintf(&b, "  %s %-28s %3dh\n", swatch(t.CategoryID, 2), categoryName(t.CategoryID), t.Hours)
		}
	}

	var insights []string
	if c := w.Insights.MostFrequentCategory; c != nil {
		insights = append(insights, "Most frequent: "+categoryName(*c))
	}
	if d := w.Insights.MostBalancedDay; d != nil {
		insights = append(insights, "Most balanced: "+d.String())
	}
	if w.Dreams.DreamDays > 0 {
		insights = append(insights, fmt.Sprintf("Dreams: %d days (%d remembered, %d unremembered)",
			w.Dreams.DreamDays, w.Dreams.RememberedCount, w.Dreams.UnrememberedCount))
	}
	if len(insights) > 0 {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(strings.Join(insights, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// dayBar is one cell per hour, grouped by category in code order with
// unassigned hours last.
func dayBar(d dashboard.Day) string {
	var b strings.Builder
	for code, n := range d.Counts {
		if n > 0 {
			b.WriteString(swatch(code, n))
		}
	}
	if d.UnassignedHours > 0 {
		b.WriteString(swatch(constants.UnassignedHour, d.UnassignedHours))
	}
	return b.String()
}
