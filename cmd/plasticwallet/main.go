package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/erazemk/plasticwallet/internal/api"
	"github.com/erazemk/plasticwallet/internal/config"
	"github.com/erazemk/plasticwallet/internal/db"
	"github.com/erazemk/plasticwallet/internal/media"
	"github.com/erazemk/plasticwallet/internal/metrics"
	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/store"
	"github.com/erazemk/plasticwallet/internal/wallet"
	"github.com/erazemk/plasticwallet/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func tintOptions(color bool) *tint.Options {
	return &tint.Options{Level: slog.LevelInfo, TimeFormat: time.DateTime, NoColor: !color}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file
// and colour is turned off.
func setupLogger(logPath string) (func(), error) {
	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)
	stdoutColor := isTerminal(os.Stdout)
	stderrColor := isTerminal(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
		stdoutColor, stderrColor = false, false
	}

	handler := &levelRouter{
		stdout: tint.NewHandler(stdoutW, tintOptions(stdoutColor)),
		stderr: tint.NewHandler(stderrW, tintOptions(stderrColor)),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	ctx := context.Background()

	mediaStore := media.New(cfg.DataDir)
	if err := mediaStore.EnsureDirs(); err != nil {
		slog.Error("failed to create media directories", "error", err)
		os.Exit(1)
	}

	items, database, err := openItemStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open item store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer items.Close()
	slog.Info("item store ready", "store", cfg.Store)

	secret, err := sessionSecret(ctx, cfg, database)
	if err != nil {
		slog.Error("failed to get session secret", "error", err)
		os.Exit(1)
	}
	sessions, err := session.NewManager(secret, cfg.SecureCookies)
	if err != nil {
		slog.Error("failed to set up sessions", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	svc := &wallet.Service{Items: items, Media: mediaStore, Metrics: m}

	apiRouter := api.NewRouter(svc, sessions)
	webRouter, err := web.NewRouter(svc, sessions, cfg.MaxUploadBytes())
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("GET /metrics", m.Handler())
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "data", cfg.DataDir)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// openItemStore opens the configured backend. The SQLite handle is returned
// as well so settings can be read from it; it is nil for other backends.
func openItemStore(ctx context.Context, cfg *config.Config) (store.ItemStore, *sql.DB, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, nil, err
		}
		slog.Info("database ready", "path", cfg.DBPath)
		return store.NewSQLiteItems(database), database, nil
	case config.StoreRedis:
		rs, err := store.NewRedisItems(ctx, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			return nil, nil, err
		}
		return rs, nil, nil
	default:
		return store.NewMemoryItems(), nil, nil
	}
}

// sessionSecret returns the configured secret, the one persisted in the
// database, or a fresh random one that dies with the process.
func sessionSecret(ctx context.Context, cfg *config.Config, database *sql.DB) (string, error) {
	if cfg.Secret != "" {
		return cfg.Secret, nil
	}
	if database != nil {
		return store.GetSessionSecret(ctx, database)
	}
	slog.Warn("session secret auto-generated (sessions will be invalidated on restart)")
	return store.RandomSecret()
}
