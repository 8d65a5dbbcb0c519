package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifegrid/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// TodayIn returns the calendar date of now as seen in loc.
func TodayIn(now time.Time, loc *time.Location) models.Date {
	if loc == nil {
		loc = time.Local
	}
	return models.DateOf(now.In(loc))
}

// GetTodayInTimezone returns today's date in the named timezone.
func GetTodayInTimezone(timezone string) (models.Date, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return models.Date{}, err
	}
	return TodayIn(time.Now(), loc), nil
}
