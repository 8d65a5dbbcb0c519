package system

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lifegrid/internal/backup"
	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/validation"
)

type DoctorCmd struct{}

// skipped marks a check that does not apply to the current setup.
type skipped string

func (s skipped) Error() string { return string(s) }

type check struct {
	name    string
	needsDB bool
	// warnOnly checks never fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Day log grids", needsDB: true, run: checkDayLogs},
	{name: "Dream entries", needsDB: true, run: checkDreams},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var skip skipped
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skip):
			fmt.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skip)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
		// Everything after the first check needs the database.
		if i == 0 {
			dbReachable = err == nil
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctx.Store.Ping(pingCtx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d. Run '%s migrate'", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return skipped("PostgreSQL backups are managed outside lifegrid")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkDayLogs reports stored grids the dashboard would silently fold into
// unassigned hours.
func checkDayLogs(ctx *cli.Context) error {
	logs, err := ctx.Store.GetAllDayLogs(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get day logs: %w", err)
	}
	result := validation.AuditDayLogs(logs)
	if result.HasIssues() {
		return errors.New(strings.TrimSpace(result.FormatReport()))
	}
	return nil
}

func checkDreams(ctx *cli.Context) error {
	dreams, err := ctx.Store.GetAllDreams(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get dreams: %w", err)
	}
	var bad []string
	for _, d := range dreams {
		switch {
		case !d.State.Valid():
			bad = append(bad, fmt.Sprintf("%s has unknown dream state %d", d.Date, int(d.State)))
		case d.State != models.DreamRemembered && d.Description != nil:
			bad = append(bad, fmt.Sprintf("%s keeps a description while the dream is %s", d.Date, d.State))
		}
	}
	if len(bad) > 0 {
		return errors.New(strings.Join(bad, "; "))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if ctx.Config.Location == nil {
		return fmt.Errorf("timezone %q is not loaded", ctx.Config.Timezone)
	}
	now := time.Now().In(ctx.Config.Location)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
