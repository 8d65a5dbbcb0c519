package backups

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifegrid/internal/backup"
	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/config"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage/postgres"
	"github.com/julianstephens/lifegrid/internal/storage/sqlite"
)

func setupContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "lifegrid.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store, Config: config.Config{Location: time.UTC}}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx := setupContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}

func TestBackupRestore(t *testing.T) {
	ctx := setupContext(t)
	bg := context.Background()

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := ctx.Store.AddEvent(bg, models.NotableEvent{Date: models.NewDate(2024, 2, 2), Title: "after backup"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(path), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() after restore error = %v", err)
	}
	events, err := ctx.Store.GetAllEvents(bg)
	if err != nil {
		t.Fatalf("GetAllEvents() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after restore, want 0", len(events))
	}
}

func TestBackupRejectsPostgres(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://localhost/lifegrid")}

	if err := (&BackupCreateCmd{}).Run(ctx); err != errNotSQLite {
		t.Errorf("BackupCreateCmd.Run() error = %v, want %v", err, errNotSQLite)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != errNotSQLite {
		t.Errorf("BackupListCmd.Run() error = %v, want %v", err, errNotSQLite)
	}
}
