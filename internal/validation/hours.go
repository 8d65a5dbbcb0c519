// Package validation checks and normalizes day-log hour grids, both on the
// way in (request payloads) and at rest (stored rows audited by doctor).
package validation

import (
	"fmt"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/errors"
	"github.com/julianstephens/lifegrid/internal/models"
)

// NormalizeHours validates a raw 24-slot payload. A nil slot becomes the
// unassigned sentinel; -1 and 0..11 pass through unchanged.
func NormalizeHours(raw []*int) (models.Hours, error) {
	if len(raw) != constants.HoursInDay {
		return nil, errors.Validationf("hours",
			"hours must have exactly %d elements, got %d", constants.HoursInDay, len(raw))
	}

	out := make(models.Hours, constants.HoursInDay)
	for i, v := range raw {
		if v == nil {
			out[i] = constants.UnassignedHour
			continue
		}
		if !validCode(*v) {
			return nil, errors.Validationf(fmt.Sprintf("hours[%d]", i),
				"value %d is not allowed; use -1, null, or a category code %d-%d",
				*v, constants.MinCategory, constants.MaxCategory)
		}
		out[i] = *v
	}
	return out, nil
}

// IntHours converts a fully populated grid into the raw payload form.
func IntHours(hours []int) []*int {
	raw := make([]*int, len(hours))
	for i := range hours {
		v := hours[i]
		raw[i] = &v
	}
	return raw
}

func validCode(v int) bool {
	return v == constants.UnassignedHour || (v >= constants.MinCategory && v <= constants.MaxCategory)
}
