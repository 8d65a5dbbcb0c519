package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesLogFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	if err := Init(Config{LogDir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("server started", "addr", ":8000")
	Debug("dropped below info level")

	data, err := os.ReadFile(filepath.Join(logDir, "lifegrid.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "server started") || !strings.Contains(out, "addr=:8000") {
		t.Errorf("log file missing entry: %q", out)
	}
	if strings.Contains(out, "dropped below info level") {
		t.Errorf("debug entry written at info level: %q", out)
	}
}

func TestInitDebugMode(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	if err := Init(Config{Debug: true, LogDir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("debug visible")

	data, err := os.ReadFile(filepath.Join(logDir, "lifegrid.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "debug visible") {
		t.Errorf("debug entry missing in debug mode: %q", data)
	}
}

func TestInitWithoutSinks(t *testing.T) {
	if err := Init(Config{}); err != nil {
		t.Fatalf("Init with no sinks failed: %v", err)
	}
	Warn("goes nowhere")
	if Standard() == nil {
		t.Error("Standard() returned nil")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	if Standard() == nil {
		t.Error("Standard() returned nil without Init")
	}
}
