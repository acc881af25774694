package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/taglib/internal/bootstrap"
	"github.com/vk/taglib/internal/bundle"
	"github.com/vk/taglib/internal/ctxlog"
	"github.com/vk/taglib/internal/engine"
	"github.com/vk/taglib/internal/export"
	"github.com/vk/taglib/internal/tracing"
)

// Run executes one aggregation pass and exports the result. When a listen
// port is configured it then serves queries until ctx is cancelled.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	provider, err := tracing.NewProvider(tracing.Config{FilePath: a.config.TraceFile})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil && err == nil {
			err = fmt.Errorf("failed to flush traces: %w", shutdownErr)
		}
	}()

	seed := make(bootstrap.Seed)
	if len(a.config.BootstrapPaths) > 0 {
		seed, err = bootstrap.LoadHCL(ctx, a.config.BootstrapPaths...)
		if err != nil {
			return fmt.Errorf("failed to load bootstrap tags: %w", err)
		}
		a.logger.Info("Bootstrap tags loaded.", "tags", seed.Len())
	}

	bundles, err := bundle.Discover(ctx, a.config.BundlesPath)
	if err != nil {
		return fmt.Errorf("failed to discover bundles in '%s': %w", a.config.BundlesPath, err)
	}
	if len(bundles) == 0 {
		a.logger.Warn("No bundles found, only bootstrap tags will be exported.", "path", a.config.BundlesPath)
	}

	agg := engine.New(engine.Options{Workers: a.config.Workers, Tracer: provider.Tracer()})
	reg, report := agg.Run(ctx, seed, bundles)

	a.mu.Lock()
	a.registry, a.report = reg, report
	a.mu.Unlock()

	if err := a.export(); err != nil {
		return err
	}

	if a.config.ListenPort > 0 {
		if err := a.serve(ctx, reg); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// export writes the registry to the configured output file, or to the app's
// output writer when no file is set.
func (a *App) export() error {
	if a.config.OutputPath == "" {
		return a.write(a.outW)
	}

	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := a.write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	a.logger.Info("Tags exported.", "path", a.config.OutputPath, "format", a.config.Format)
	return nil
}

func (a *App) write(w io.Writer) error {
	if err := export.Write(w, a.Registry(), a.config.Format); err != nil {
		return fmt.Errorf("failed to export tags: %w", err)
	}
	return nil
}
