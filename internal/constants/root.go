package constants

import "time"

const (
	AppName            = "lifegrid"
	AppDisplayName     = "LifeGrid"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lifegrid/lifegrid.db"
	DefaultAddr        = ":8000"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is a fixed-width UTC timestamp so stored values sort lexically
	TimestampFormat = "2006-01-02T15:04:05.000000Z"

	// Day log shape
	HoursInDay       = 24
	UnassignedHour   = -1
	MinCategory      = 0
	MaxCategory      = 11
	CategoryCount    = MaxCategory + 1
	SleepCategory    = 0
	LiveWindowDays   = 2 // today and yesterday
	DashboardDays    = 7
	DefaultEventDays = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifegrid-"
	BackupFileSuffix = ".db"

	// HTTP server constants
	MaxRequestBodySize = 1 << 20 // 1 MB
	ReadHeaderTimeout  = 10 * time.Second
	ShutdownTimeout    = 15 * time.Second

	// SQLite connection constants
	SQLiteBusyTimeoutMs = 5000
)
