package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifegrid/internal/cli"
	"github.com/julianstephens/lifegrid/internal/cli/backups"
	"github.com/julianstephens/lifegrid/internal/cli/system"
	"github.com/julianstephens/lifegrid/internal/cli/views"
	"github.com/julianstephens/lifegrid/internal/config"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/errors"
	"github.com/julianstephens/lifegrid/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Database string `help:"SQLite file path or PostgreSQL connection string. Falls back to the OS keyring, then ${default_db}." env:"LIFEGRID_DATABASE_URL,DATABASE_URL"`
	CORS     string `name:"cors-origins" help:"Comma-separated list of allowed browser origins, or * for any." env:"LIFEGRID_CORS_ORIGINS,CORS_ORIGINS" default:"*"`
	Addr     string `help:"Address the API listens on." env:"LIFEGRID_ADDR" default:"${default_addr}"`
	Timezone string `help:"IANA timezone that decides which date is today." env:"LIFEGRID_TIMEZONE" default:"Local"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"LIFEGRID_DEBUG"`
	LogDir   string `help:"Directory for the rotating log file." env:"LIFEGRID_LOG_DIR" type:"path"`

	Serve      system.ServeCmd     `cmd:"" help:"Run the HTTP API." default:"1"`
	Init       system.InitCmd      `cmd:"" help:"Initialize lifegrid storage."`
	Migrate    system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor     system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Keyring    system.KeyringCmd   `cmd:"" help:"Manage the connection string stored in the OS keyring."`
	Backup     backups.BackupCmd   `cmd:"" help:"Manage SQLite database backups."`
	Categories views.CategoriesCmd `cmd:"" help:"List activity categories."`
	Day        views.DayCmd        `cmd:"" help:"Show everything recorded for a day."`
	Week       views.WeekCmd       `cmd:"" help:"Show the weekly dashboard."`
	Export     views.ExportCmd     `cmd:"" help:"Export every record as YAML or JSON."`
}

// noStore lists commands that run without opening the database first.
var noStore = map[string]bool{
	"serve":      true, // creates the schema itself
	"init":       true,
	"doctor":     true, // reports an unreachable database instead of failing
	"keyring":    true,
	"categories": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hourly life-logging journal with a JSON API and weekly dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":      constants.Version,
			"default_db":   constants.DefaultConfigPath,
			"default_addr": constants.DefaultAddr,
		},
	)
	command := strings.Fields(ctx.Command())[0]

	cfg, err := config.Load(config.Options{
		DatabaseURL: CLI.Database,
		CORSOrigins: CLI.CORS,
		Addr:        CLI.Addr,
		Timezone:    CLI.Timezone,
		Debug:       CLI.Debug,
		LogDir:      CLI.LogDir,
	})
	// A bad stored connection string must not lock out "keyring delete".
	if err != nil && command != "keyring" {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:  cfg.Debug,
		LogDir: cfg.LogDir,
		Stderr: command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Configuration loaded", "config", cfg.String(), "command", ctx.Command())

	store := cli.NewStore(cfg.DatabaseURL)
	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
	}

	if !noStore[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close database", "error", closeErr)
	}
	errors.Fatal(err)
}
