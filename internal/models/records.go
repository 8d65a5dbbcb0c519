package models

import (
	"time"

	"github.com/julianstephens/lifegrid/internal/constants"
)

// Entry holds the identity shared by every record keyed by a unique date.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Date      Date      `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Key exposes the entry of any record embedding it.
func (e *Entry) Key() *Entry { return e }

// DateKeyed is implemented by pointers to records that embed Entry.
type DateKeyed interface {
	Key() *Entry
}

// Hours is one category code per hour of the day, index 0 being the midnight hour.
// UnassignedHour marks an hour with no category.
type Hours []int

// EmptyHours returns a fully unassigned day.
func EmptyHours() Hours {
	h := make(Hours, constants.HoursInDay)
	for i := range h {
		h[i] = constants.UnassignedHour
	}
	return h
}

func (h Hours) Clone() Hours {
	if h == nil {
		return nil
	}
	out := make(Hours, len(h))
	copy(out, h)
	return out
}

// Counts tallies hours per category. Codes outside 0..11 count as unassigned
// along with the sentinel, so tracked+unassigned always equals len(h).
func (h Hours) Counts() (counts [constants.CategoryCount]int, tracked, unassigned int) {
	for _, code := range h {
		if code < constants.MinCategory || code > constants.MaxCategory {
			unassigned++
			continue
		}
		counts[code]++
		tracked++
	}
	return counts, tracked, unassigned
}

// DayLog represents a single day's hourly activity log.
// IsReconstructed is computed when the log is written and is not refreshed on read.
type DayLog struct {
	Entry           `yaml:",inline"`
	Hours           Hours `json:"hours" yaml:"hours,flow"`
	IsReconstructed bool  `json:"is_reconstructed" yaml:"is_reconstructed"`
}

// DailySummary holds the free-text reflection for a date. Metrics are never stored here.
type DailySummary struct {
	Entry      `yaml:",inline"`
	Highlight  *string `json:"highlight" yaml:"highlight"`
	Reflection *string `json:"reflection" yaml:"reflection"`
}

// DreamState records whether a dream happened and was remembered.
type DreamState int

const (
	DreamNone         DreamState = 0
	DreamUnremembered DreamState = 1
	DreamRemembered   DreamState = 2
)

func (s DreamState) Valid() bool {
	return s >= DreamNone && s <= DreamRemembered
}

func (s DreamState) String() string {
	switch s {
	case DreamNone:
		return "none"
	case DreamUnremembered:
		return "unremembered"
	case DreamRemembered:
		return "remembered"
	default:
		return "unknown"
	}
}

// Dream is a single day's dream entry. Description is only kept while State is DreamRemembered.
type Dream struct {
	Entry       `yaml:",inline"`
	State       DreamState `json:"dream_state" yaml:"dream_state"`
	Description *string    `json:"description" yaml:"description"`
}

// NotableEvent is a lightweight memory log entry. Many may share a date.
// Category is a free tag and is not checked against the category table.
type NotableEvent struct {
	ID          string    `json:"id" yaml:"id"`
	Date        Date      `json:"date" yaml:"date"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description"`
	Category    *int      `json:"category" yaml:"category"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}
