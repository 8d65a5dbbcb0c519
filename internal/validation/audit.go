package validation

import (
	"fmt"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/models"
)

// IssueType represents the kind of problem found in a stored day log
type IssueType string

const (
	IssueWrongLength IssueType = "wrong_length"
	IssueUnknownCode IssueType = "unknown_code"
)

// Issue is a single problem found in a stored day log
type Issue struct {
	Type        IssueType
	Date        string
	Hour        int // -1 when the issue is not tied to one hour
	Description string
}

// AuditResult collects the issues found across stored day logs
type AuditResult struct {
	Issues []Issue
}

// HasIssues returns true if any stored day log is malformed
func (r *AuditResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (r *AuditResult) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}

	report := "Issues detected:\n"
	for _, issue := range r.Issues {
		report += fmt.Sprintf("- %s\n", issue.Description)
	}
	return report
}

// AuditDayLogs reports stored grids that would not pass NormalizeHours.
// The dashboard folds such codes into unassigned; this makes them visible.
func AuditDayLogs(logs []models.DayLog) AuditResult {
	result := AuditResult{Issues: []Issue{}}

	for _, l := range logs {
		date := l.Date.String()
		if len(l.Hours) != constants.HoursInDay {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueWrongLength,
				Date:        date,
				Hour:        -1,
				Description: fmt.Sprintf("Day log %s has %d hours, expected %d", date, len(l.Hours), constants.HoursInDay),
			})
		}
		for hour, code := range l.Hours {
			if validCode(code) {
				continue
			}
			result.Issues = append(result.Issues, Issue{
				Type:        IssueUnknownCode,
				Date:        date,
				Hour:        hour,
				Description: fmt.Sprintf("Day log %s hour %02d holds unknown category code %d", date, hour, code),
			})
		}
	}

	return result
}
