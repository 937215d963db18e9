package app

import (
	"context"

	"go.uber.org/zap"

	"fieldguide/internal/logging"
	"fieldguide/internal/resource"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	root    resource.Root
	log     *zap.Logger
	emitter EventEmitter
	watcher *datasetWatcher
}

// New creates a new App.
func New() *App {
	return &App{
		log:     zap.NewNop(),
		emitter: wailsEmitter{},
	}
}

// Startup is called when the app starts. It resolves the resource root,
// wires file logging and starts watching the document folder. Logging
// failures are not fatal: the backend still serves requests, just
// without a file sink.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.root = resource.DefaultRoot()

	if err := a.InitLogging(); err != nil {
		logger, _ := zap.NewDevelopment()
		if logger != nil {
			a.log = logger.Named("app")
		}
		a.log.Warn("file logging unavailable", zap.Error(err))
	}
	a.log.Info("resource root resolved", zap.String("path", string(a.root)))

	watcher, err := newDatasetWatcher(ctx, a.root.Document(), a.emitter, a.log.Named("watcher"))
	if err != nil {
		a.log.Warn("dataset watcher unavailable", zap.Error(err))
		return
	}
	a.watcher = watcher
}

// Shutdown is called when the app exits.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	_ = a.log.Sync()
}

// InitLogging installs the date-named append-only log file under
// <root>/logs as the process-wide sink. One-time; a repeat call after
// success is a no-op.
func (a *App) InitLogging() error {
	logger, err := logging.Init(a.root)
	if err != nil {
		return err
	}
	a.log = logger.Named("app")
	a.log.Info("log sink ready", zap.String("dir", a.root.Logs()))
	return nil
}
