// Package server wires configuration, the object store, the services and
// the HTTP API together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/httpapi"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
	"github.com/mutix31/Sharebin/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	handler   http.Handler
	closeFunc func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	store, closeFn, err := OpenStore(ctx, c)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.NewObjectStoreManager(store, logger)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	ss := services.NewSessionService(rm, c, logger)
	us := services.NewUserService(rm, ss, logger)
	as := services.NewArtifactService(rm, c, logger)
	su := services.NewShortURLService(rm, c, logger)

	h := httpapi.NewHandler(c, us, ss, as, su, logger)

	logger.Info(ctx, "storage ready", "backend", c.Storage)

	return &App{config: c, logger: logger, handler: h.Routes(), closeFunc: closeFn}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewHTTPServer(app.config.HTTPAddr, app.handler, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return runErr
}

// Close releases the storage backend.
func (app *App) Close() error {
	return app.closeFunc()
}
