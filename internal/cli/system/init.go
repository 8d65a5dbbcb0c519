package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage"
	"github.com/julianstephens/lifegrid/internal/storage/postgres"
	"github.com/julianstephens/lifegrid/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing SQLite database before initializing."`
	Source string `help:"Database path or connection string to copy existing records from."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized lifegrid storage at: %s\n", ctx.Config.RedactedDatabaseURL())

	if c.Source != "" {
		fmt.Printf("Copying records from: %s\n", redact(c.Source))
		if err := copyFrom(context.Background(), ctx.Store, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

// reset removes the SQLite file and its WAL sidecars after confirmation.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force only applies to SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" && samePath(dbPath, c.Source) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	ok, err := cli.Confirm("Delete the existing database?", dbPath, c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("aborted")
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", p, err)
		}
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func samePath(a, b string) bool {
	if postgres.IsConnString(b) {
		return false
	}
	b, err := utils.ExpandHome(b)
	if err != nil {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func redact(conn string) string {
	if postgres.IsConnString(conn) {
		return postgres.Redact(conn)
	}
	return conn
}

// openSource loads an existing database without creating or migrating it.
func openSource(conn string) (storage.Provider, error) {
	if postgres.IsConnString(conn) {
		if err := postgres.ValidateConnString(conn); err != nil {
			return nil, err
		}
	} else {
		path, err := utils.ExpandHome(conn)
		if err != nil {
			return nil, err
		}
		conn = path
	}

	src := cli.NewStore(conn)
	if err := src.Load(); err != nil {
		return nil, fmt.Errorf("failed to load source database: %w", err)
	}
	return src, nil
}

// copyFrom copies every record from the database at conn into dst, keeping
// ids and timestamps. Date-keyed rows overwrite the destination's row for the
// same date; events already present by id are skipped.
func copyFrom(ctx context.Context, dst storage.Provider, conn string) error {
	src, err := openSource(conn)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := copyAll(ctx, "day logs", src.GetAllDayLogs, func(ctx context.Context, l models.DayLog) error {
		_, err := dst.SaveDayLog(ctx, l)
		return err
	}); err != nil {
		return err
	}
	if err := copyAll(ctx, "daily summaries", src.GetAllDailySummaries, func(ctx context.Context, s models.DailySummary) error {
		_, err := dst.SaveDailySummary(ctx, s)
		return err
	}); err != nil {
		return err
	}
	if err := copyAll(ctx, "dreams", src.GetAllDreams, func(ctx context.Context, d models.Dream) error {
		_, err := dst.SaveDream(ctx, d)
		return err
	}); err != nil {
		return err
	}
	return copyAll(ctx, "notable events", src.GetAllEvents, func(ctx context.Context, e models.NotableEvent) error {
		_, err := dst.GetEvent(ctx, e.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		_, err = dst.AddEvent(ctx, e)
		return err
	})
}

func copyAll[T any](ctx context.Context, label string, load func(context.Context) ([]T, error), save func(context.Context, T) error) error {
	fmt.Printf("  Migrating %s...\n", label)
	records, err := load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s from source: %w", label, err)
	}
	for _, rec := range records {
		if err := save(ctx, rec); err != nil {
			return fmt.Errorf("failed to copy %s: %w", label, err)
		}
	}
	fmt.Printf("    Migrated %d %s\n", len(records), label)
	return nil
}
