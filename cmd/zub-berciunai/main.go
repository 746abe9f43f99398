package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Chatbots-automated/zub-berciunai/internal/config"
	"github.com/Chatbots-automated/zub-berciunai/internal/mcp"
	"github.com/Chatbots-automated/zub-berciunai/internal/report"
	"github.com/Chatbots-automated/zub-berciunai/internal/snapshot"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger builds the process logger. In stdio mode everything goes to
// stderr so the MCP protocol stream on stdout stays clean.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	if cfg.IsStdioMode() && !cfg.IsDebug() {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	return zcfg.Build()
}

// openSnapshotStore picks the durable sqlite store when a path is
// configured, otherwise snapshots live in process memory.
func openSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (report.SnapshotStore, func(), error) {
	if cfg.SnapshotDB == "" {
		store := snapshot.NewMemoryStore()
		return store, func() {}, nil
	}
	store, err := snapshot.OpenSQLite(ctx, cfg.SnapshotDB)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing snapshot store failed", zap.Error(err))
		}
	}
	return store, closeFn, nil
}

// runServerMode handles server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, srv *mcp.Server, logger *zap.Logger) {
	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in a goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Run(ctx)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()

		if err := <-serverErrCh; err != nil {
			logger.Error("server shutdown with error", zap.Error(err))
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("server stopped successfully")
}

// runStdioMode handles stdio mode execution
func runStdioMode(ctx context.Context, _ context.CancelFunc, srv *mcp.Server, logger *zap.Logger) {
	// In stdio mode, the parent process controls our lifecycle; exit
	// cleanly when stdin closes or on error.
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsDebug() && cfg.IsServerMode() {
		logger.Debug("starting with configuration", zap.String("config", cfg.String()))
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the header snapshot store and build the recovery pipeline
	store, closeStore, err := openSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer closeStore()

	parser := report.NewService(store, logger)

	// Create MCP server
	srv, err := mcp.NewServer(cfg, parser, logger)
	if err != nil {
		logger.Fatal("failed to create MCP server", zap.Error(err))
	}

	// Handle different modes
	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, srv, logger)
	} else {
		runStdioMode(ctx, cancel, srv, logger)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("zub-berciunai report parser\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
