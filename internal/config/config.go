// Package config resolves the process-wide settings once at startup. The
// resulting Config is a plain value passed to whatever needs it.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/keyring"
	"github.com/julianstephens/lifegrid/internal/logger"
	"github.com/julianstephens/lifegrid/internal/storage/postgres"
	"github.com/julianstephens/lifegrid/internal/utils"
)

// Source records where the database connection came from.
type Source string

const (
	SourceExplicit Source = "flag/env"
	SourceKeyring  Source = "keyring"
	SourceDefault  Source = "default"
)

// Options are the raw values bound by the command line (flags or env vars).
type Options struct {
	DatabaseURL string
	CORSOrigins string
	Addr        string
	Timezone    string
	Debug       bool
	LogDir      string
}

type Config struct {
	// DatabaseURL is a PostgreSQL connection string or an expanded SQLite path.
	DatabaseURL    string
	DatabaseSource Source
	CORSOrigins    []string
	Addr           string
	Timezone       string
	Location       *time.Location
	Debug          bool
	LogDir         string
}

// Load builds a Config from opts, falling back to the OS keyring and then to
// the default SQLite path for the database.
func Load(opts Options) (Config, error) {
	cfg := Config{
		CORSOrigins: ParseOrigins(opts.CORSOrigins),
		Addr:        opts.Addr,
		Timezone:    opts.Timezone,
		Debug:       opts.Debug,
	}
	if cfg.Addr == "" {
		cfg.Addr = constants.DefaultAddr
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, err
	}
	cfg.Location = loc

	cfg.DatabaseURL, cfg.DatabaseSource, err = resolveDatabaseURL(opts.DatabaseURL)
	if err != nil {
		return Config{}, err
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = filepath.Join(filepath.Dir(constants.DefaultConfigPath), "logs")
	}
	if cfg.LogDir, err = utils.ExpandHome(logDir); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func resolveDatabaseURL(explicit string) (string, Source, error) {
	raw := strings.TrimSpace(explicit)
	source := SourceExplicit

	if raw == "" {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			raw, source = connStr, SourceKeyring
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Debug("Keyring lookup failed, using default database", "error", err)
		}
	}
	if raw == "" {
		raw, source = constants.DefaultConfigPath, SourceDefault
	}

	if postgres.IsConnString(raw) {
		if err := postgres.ValidateConnString(raw); err != nil {
			return "", "", err
		}
		return raw, source, nil
	}

	path, err := utils.ExpandHome(raw)
	if err != nil {
		return "", "", err
	}
	return path, source, nil
}

// ParseOrigins splits a comma-separated allow-list. "*" (or an empty value)
// allows every origin; blank entries are dropped. A list of only separators
// yields an empty, non-nil slice, which allows no origin.
func ParseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	origins := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsPostgres reports whether the database is PostgreSQL rather than SQLite.
func (c Config) IsPostgres() bool {
	return postgres.IsConnString(c.DatabaseURL)
}

// AllowAllOrigins reports whether CORS is open to every origin.
func (c Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// RedactedDatabaseURL is safe to print or log.
func (c Config) RedactedDatabaseURL() string {
	if c.IsPostgres() {
		return postgres.Redact(c.DatabaseURL)
	}
	return c.DatabaseURL
}

func (c Config) String() string {
	return fmt.Sprintf("database=%s (%s) addr=%s timezone=%s cors=%s",
		c.RedactedDatabaseURL(), c.DatabaseSource, c.Addr, c.Timezone, strings.Join(c.CORSOrigins, ","))
}
