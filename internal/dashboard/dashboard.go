// Package dashboard derives the weekly summary from already-loaded day logs
// and dreams. It never touches storage and never fails.
package dashboard

import (
	"sort"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/models"
)

// Day is one date in the window.
type Day struct {
	Date            models.Date                  `json:"date"`
	HasLog          bool                         `json:"has_log"`
	Counts          [constants.CategoryCount]int `json:"counts"`
	TrackedHours    int                          `json:"tracked_hours"`
	UnassignedHours int                          `json:"unassigned_hours"`
}

type CategoryTotal struct {
	CategoryID int `json:"category_id"`
	Hours      int `json:"hours"`
}

type Insights struct {
	AverageSleepHours    float64      `json:"average_sleep_hours"`
	MostFrequentCategory *int         `json:"most_frequent_category"`
	MostBalancedDay      *models.Date `json:"most_balanced_day"`
}

type DreamMetrics struct {
	DreamDays         int `json:"dream_days"`
	RememberedCount   int `json:"remembered_count"`
	UnrememberedCount int `json:"unremembered_count"`
}

// Weekly is the trailing-window summary ending on EndDate inclusive.
type Weekly struct {
	StartDate         models.Date     `json:"start_date"`
	EndDate           models.Date     `json:"end_date"`
	Days              []Day           `json:"days"`
	TotalTrackedHours int             `json:"total_tracked_hours"`
	TotalSleepHours   int             `json:"total_sleep_hours"`
	AverageSleepHours float64         `json:"average_sleep_hours"`
	LoggedDays        int             `json:"logged_days"`
	CategoryTotals    []CategoryTotal `json:"category_totals"`
	Insights          Insights        `json:"insights"`
	Dreams            DreamMetrics    `json:"dreams"`
}

// Window returns the first and last date of the week ending on end.
func Window(end models.Date) (models.Date, models.Date) {
	return end.AddDays(-(constants.DashboardDays - 1)), end
}

// Build aggregates the week ending on end. Logs and dreams outside the
// window are ignored; a date with no log counts as not logged, not as zero.
func Build(end models.Date, logs []models.DayLog, dreams []models.Dream) Weekly {
	start, end := Window(end)

	byDate := make(map[string]models.DayLog, len(logs))
	for _, l := range logs {
		byDate[l.Date.String()] = l
	}

	w := Weekly{
		StartDate:      start,
		EndDate:        end,
		Days:           make([]Day, 0, constants.DashboardDays),
		CategoryTotals: []CategoryTotal{},
	}

	var totals [constants.CategoryCount]int
	bestVariance := 0.0
	for i := 0; i < constants.DashboardDays; i++ {
		d := Day{Date: start.AddDays(i)}
		if l, ok := byDate[d.Date.String()]; ok {
			d.HasLog = true
			d.Counts, d.TrackedHours, d.UnassignedHours = l.Hours.Counts()

			w.LoggedDays++
			w.TotalTrackedHours += d.TrackedHours
			w.TotalSleepHours += d.Counts[constants.SleepCategory]
			for c, n := range d.Counts {
				totals[c] += n
			}

			if d.TrackedHours > 0 {
				v := Variance(d.Counts)
				if w.Insights.MostBalancedDay == nil || v < bestVariance {
					date := d.Date
					w.Insights.MostBalancedDay = &date
					bestVariance = v
				}
			}
		}
		w.Days = append(w.Days, d)
	}

	if w.LoggedDays > 0 {
		w.AverageSleepHours = float64(w.TotalSleepHours) / float64(w.LoggedDays)
	}
	w.Insights.AverageSleepHours = w.AverageSleepHours

	for c, n := range totals {
		if n > 0 {
			w.CategoryTotals = append(w.CategoryTotals, CategoryTotal{CategoryID: c, Hours: n})
		}
	}
	sort.SliceStable(w.CategoryTotals, func(i, j int) bool {
		return w.CategoryTotals[i].Hours > w.CategoryTotals[j].Hours
	})
	if len(w.CategoryTotals) > 0 {
		top := w.CategoryTotals[0].CategoryID
		w.Insights.MostFrequentCategory = &top
	}

	for _, d := range dreams {
		if d.Date.Before(start) || d.Date.After(end) {
			continue
		}
		switch d.State {
		case models.DreamRemembered:
			w.Dreams.RememberedCount++
			w.Dreams.DreamDays++
		case models.DreamUnremembered:
			w.Dreams.UnrememberedCount++
			w.Dreams.DreamDays++
		}
	}

	return w
}

// Variance is the population variance of the category counts over all slots,
// empty categories included.
func Variance(counts [constants.CategoryCount]int) float64 {
	sum := 0
	for _, n := range counts {
		sum += n
	}
	mean := float64(sum) / float64(len(counts))

	var sq float64
	for _, n := range counts {
		diff := float64(n) - mean
		sq += diff * diff
	}
	return sq / float64(len(counts))
}
