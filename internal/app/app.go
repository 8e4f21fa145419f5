package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/persist"
	"github.com/specialistvlad/artifactsmith/internal/provider"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	provider *provider.Provider
	reader   *persist.Reader

	mu     sync.Mutex
	inputs []string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. outW receives the
// log output.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		logger:   logger,
		config:   cfg,
		loader:   loader,
		provider: provider.New(),
		reader:   persist.NewReader(),
	}
}

// Config returns the configuration the app was built with.
func (a *App) Config() *Config { return a.config }

// Inputs returns the files the last pass read: blueprints, templates and the
// workspace file.
func (a *App) Inputs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.inputs...)
}

func (a *App) setInputs(files []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inputs = files
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
