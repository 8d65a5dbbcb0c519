package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/julianstephens/lifegrid/internal/backup"
	"github.com/julianstephens/lifegrid/internal/config"
	"github.com/julianstephens/lifegrid/internal/logger"
	"github.com/julianstephens/lifegrid/internal/migration"
	"github.com/julianstephens/lifegrid/internal/service"
	"github.com/julianstephens/lifegrid/internal/storage"
	"github.com/julianstephens/lifegrid/internal/storage/postgres"
	"github.com/julianstephens/lifegrid/internal/storage/sqlite"
)

type Context struct {
	Config config.Config
	Store  storage.Provider
	// Now is the wall clock behind "today"; nil means time.Now.
	Now func() time.Time
}

// NewStore picks the storage backend from a connection string: PostgreSQL
// URLs and DSNs go to postgres, anything else is a SQLite file path.
func NewStore(conn string) storage.Provider {
	if postgres.IsConnString(conn) {
		return postgres.New(conn)
	}
	return sqlite.NewStore(conn)
}

// Service builds the application service over the open store.
func (c *Context) Service() *service.Service {
	return service.New(c.Store, c.Now, c.Config.Location)
}

// IsSQLite reports whether backups and file operations apply to the store.
func (c *Context) IsSQLite() bool {
	return c.Store.Driver() == migration.DriverSQLite
}

// PerformAutomaticBackup snapshots an existing SQLite database and only logs
// failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	if _, err := os.Stat(c.Store.GetConfigPath()); err != nil {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question. assumeYes skips the prompt; without a
// terminal the answer is no.
func Confirm(title, description string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to prompt without a terminal, pass --yes to confirm")
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
