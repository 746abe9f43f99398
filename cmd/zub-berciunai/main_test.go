package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Chatbots-automated/zub-berciunai/internal/config"
	"github.com/Chatbots-automated/zub-berciunai/internal/snapshot"
)

const testVersion = "1.2.3"

func capturePrintVersion(t *testing.T) string {
	t.Helper()

	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = originalStdout }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done
	return buf.String()
}

func TestPrintVersion(t *testing.T) {
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = testVersion
	buildTime = "2024-12-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	output := capturePrintVersion(t)

	expectedStrings := []string{
		"zub-berciunai report parser",
		"Version: " + testVersion,
		"Build Time: 2024-12-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestPrintVersionWithDefaults(t *testing.T) {
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	output := capturePrintVersion(t)

	for _, expected := range []string{"Version: dev", "Build Time: unknown", "Git Commit: unknown"} {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestNewLoggerStdioMode(t *testing.T) {
	cfg := &config.Config{
		Mode:     "stdio",
		LogLevel: "info",
	}

	logger, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() returned error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Stdio mode without debug quiets everything below error so the
	// protocol stream stays clean.
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info logging should be disabled in stdio mode")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error logging should stay enabled in stdio mode")
	}
}

func TestNewLoggerServerMode(t *testing.T) {
	cfg := &config.Config{
		Mode:     "server",
		LogLevel: "debug",
	}

	logger, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() returned error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logging should be enabled in server mode with debug level")
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	cfg := &config.Config{
		Mode:     "server",
		LogLevel: "not-a-level",
	}

	logger, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() should fall back to info, got error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("unknown level should fall back to info")
	}
}

func TestOpenSnapshotStoreMemory(t *testing.T) {
	cfg := &config.Config{SnapshotDB: ""}

	logger, _ := newLogger(&config.Config{Mode: "server", LogLevel: "error"})
	store, closeStore, err := openSnapshotStore(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("openSnapshotStore() returned error: %v", err)
	}
	defer closeStore()

	if _, ok := store.(*snapshot.MemoryStore); !ok {
		t.Errorf("expected in-memory store, got %T", store)
	}
}

func TestOpenSnapshotStoreSQLite(t *testing.T) {
	cfg := &config.Config{
		SnapshotDB: filepath.Join(t.TempDir(), "snapshots.db"),
	}

	logger, _ := newLogger(&config.Config{Mode: "server", LogLevel: "error"})
	store, closeStore, err := openSnapshotStore(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("openSnapshotStore() returned error: %v", err)
	}
	defer closeStore()

	if _, ok := store.(*snapshot.SQLiteStore); !ok {
		t.Errorf("expected sqlite store, got %T", store)
	}
	if _, err := os.Stat(cfg.SnapshotDB); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}
}

func TestVersionFlagDetection(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"long flag", []string{"--version"}, true},
		{"short flag", []string{"-v"}, true},
		{"single dash", []string{"-version"}, true},
		{"among other flags", []string{"--mode=stdio", "--version"}, true},
		{"no version flag", []string{"--mode=stdio"}, false},
		{"empty args", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, arg := range tt.args {
				if arg == "-version" || arg == "--version" || arg == "-v" {
					found = true
					break
				}
			}
			if found != tt.expected {
				t.Errorf("version flag detection for %v = %v, want %v", tt.args, found, tt.expected)
			}
		})
	}
}
