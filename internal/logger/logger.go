package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/lifegrid/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// LogDir receives lifegrid.log; empty disables the file sink.
	LogDir string
	// Stderr mirrors output to stderr. The server always sets it; one-shot
	// commands only get it in debug mode.
	Stderr bool
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	var writers []io.Writer

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, constants.AppName+".log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	if cfg.Stderr || cfg.Debug {
		writers = append(writers, os.Stderr)
	}

	var writer io.Writer = io.Discard
	if len(writers) > 0 {
		writer = io.MultiWriter(writers...)
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

// Standard returns a standard library logger backed by the global logger,
// for APIs such as http.Server.ErrorLog.
func Standard() *stdlog.Logger {
	if Logger == nil {
		return stdlog.New(io.Discard, "", 0)
	}
	return Logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs a fatal error and exits
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
