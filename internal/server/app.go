// Package server wires the application together: it loads configuration,
// initializes the store manager, prunes stale sessions, and runs the HTTP
// endpoint with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/planfold/planfold/internal/logging"
	"github.com/planfold/planfold/internal/server/config"
	"github.com/planfold/planfold/internal/server/httpapi"
	"github.com/planfold/planfold/internal/server/orgdata"
	"github.com/planfold/planfold/internal/server/store"
	"github.com/planfold/planfold/internal/server/users"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.API
}

func NewApp(c *config.Config) (*App, error) {
	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(l)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	manager := store.NewManager()
	if err := manager.Initialize(c.AuthPath(), c.DataDir, c.DefaultTag); err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	us := users.NewService(manager, c)
	og := orgdata.NewService(manager)

	// opportunistic cleanup at startup; there is no timer-based eviction
	if n, err := us.PruneExpiredSessions(context.Background()); err != nil {
		logger.Warn(context.Background(), "session pruning failed", "error", err)
	} else if n > 0 {
		logger.Info(context.Background(), "pruned expired sessions", "count", n)
	}

	var uploader *store.BackupUploader
	if c.OffsiteBackupEnabled() {
		uploader = store.NewBackupUploader(c)
	}

	api := httpapi.New(c, logger, manager, us, og, uploader)

	return &App{config: c, logger: logger, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
