// Package categories holds the fixed table of life-activity buckets an hour can be
// assigned to. Codes are stable; clients hardcode them.
package categories

import "github.com/julianstephens/lifegrid/internal/constants"

// Category is one entry of the table.
type Category struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// Count is the number of categories (codes 0..Count-1).
const Count = constants.CategoryCount

var table = [Count]string{
	"Sleep",
	"Work",
	"Learning & Building",
	"Deep Thinking / Reflection",
	"Exercise & Health",
	"Friends & Social",
	"Relaxation & Leisure",
	"Dating / Partner",
	"Family",
	"Life Admin / Chores",
	"Travel / Commute",
	"Getting Ready / Misc",
}

// All returns the table ordered by code.
func All() []Category {
	out := make([]Category, 0, Count)
	for code, label := range table {
		out = append(out, Category{Code: code, Label: label})
	}
	return out
}

// Labels returns a code -> label map, the shape served by GET /categories.
func Labels() map[int]string {
	out := make(map[int]string, Count)
	for code, label := range table {
		out[code] = label
	}
	return out
}

// Label looks up a single code.
func Label(code int) (string, bool) {
	if !Valid(code) {
		return "", false
	}
	return table[code], true
}

// Valid reports whether code names a category. The unassigned sentinel is not a category.
func Valid(code int) bool {
	return code >= constants.MinCategory && code <= constants.MaxCategory
}
