package app

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vk/taglib/internal/engine"
	"github.com/vk/taglib/internal/tagstore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	runID  string

	mu       sync.Mutex
	registry *tagstore.Registry
	report   *engine.Report
}

// NewApp creates an App that exports to outW and logs to logW. Every log
// record carries the run's unique run_id.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		runID:  runID,
	}
}

// RunID returns the identifier attached to this app's logs.
func (a *App) RunID() string {
	return a.runID
}

// Registry returns the result of the last pass, or nil before Run.
func (a *App) Registry() *tagstore.Registry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry
}

// Report returns the summary of the last pass, or nil before Run.
func (a *App) Report() *engine.Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report
}
