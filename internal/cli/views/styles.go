// Package views renders records for the terminal.
package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifegrid/internal/categories"
	"github.com/julianstephens/lifegrid/internal/constants"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// categoryColors is indexed by category code.
var categoryColors = [constants.CategoryCount]lipgloss.Color{
	"63",  // Sleep
	"39",  // Work
	"44",  // Learning & Building
	"141", // Deep Thinking / Reflection
	"82",  // Exercise & Health
	"214", // Friends & Social
	"228", // Relaxation & Leisure
	"205", // Dating / Partner
	"209", // Family
	"250", // Life Admin / Chores
	"109", // Travel / Commute
	"180", // Getting Ready / Misc
}

// swatch is a colored block of width cells for a category code, or a dim dot
// run for unassigned hours.
func swatch(code, width int) string {
	if !categories.Valid(code) {
		return dimStyle.Render(strings.Repeat("·", width))
	}
	return lipgloss.NewStyle().Foreground(categoryColors[code]).Render(strings.Repeat("█", width))
}

func categoryName(code int) string {
	if label, ok := categories.Label(code); ok {
		return label
	}
	return "Unassigned"
}
