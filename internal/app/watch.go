package app

import (
	"context"
	"errors"

	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/generator"
	"github.com/specialistvlad/artifactsmith/internal/watch"
)

// Watch runs a pass, then re-runs it whenever an input file changes, until
// ctx is cancelled. Every report is handed to onReport.
func (a *App) Watch(ctx context.Context, opts watch.Options, onReport func(*generator.Report)) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)

	pass := func(ctx context.Context) error {
		report, err := a.Run(ctx)
		if report != nil {
			onReport(report)
		}
		return err
	}

	if err := pass(ctx); err != nil {
		logger.Error("Initial configure pass failed.", "error", err)
	}
	inputs := a.Inputs()
	if len(inputs) == 0 {
		return errors.New("nothing to watch: the blueprint could not be loaded")
	}

	w, err := watch.New(inputs, opts)
	if err != nil {
		return err
	}
	logger.Info("Watching inputs.", "files", w.Files())

	return w.Run(ctx, func(ctx context.Context) error {
		err := pass(ctx)
		if setErr := w.SetFiles(a.Inputs()); setErr != nil {
			logger.Warn("Could not update watched files.", "error", setErr)
		}
		return err
	})
}
