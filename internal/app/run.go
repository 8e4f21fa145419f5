package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/folder"
	"github.com/specialistvlad/artifactsmith/internal/generator"
	"github.com/specialistvlad/artifactsmith/internal/render"
	"github.com/specialistvlad/artifactsmith/internal/workspace"
)

// Run executes one configure pass. A nil error with a report holding failed
// entries means the pass completed but some artifacts did not.
func (a *App) Run(ctx context.Context) (*generator.Report, error) {
	runID := uuid.NewString()
	ctx = ctxlog.With(a.context(ctx), "run_id", runID)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.BlueprintPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load blueprint: %w", err)
	}
	logger.Debug("Blueprint loaded.", "kinds", len(model.Kinds), "artifacts", len(model.Artifacts))

	ws, err := workspace.Load(a.config.WorkspacePath, a.config.ProjectDir)
	if err != nil {
		return nil, err
	}
	ws = ws.WithEnv(workspace.Environ())
	a.setInputs(append(append([]string(nil), model.Files...), ws.Path()))
	logger.Debug("Workspace loaded.", "path", ws.Path(), "project_dir", ws.ProjectDir())

	folders := folder.NewBuilder(filepath.FromSlash(ws.ProjectDir()))
	if err := folders.Build(ctx, model.Folders); err != nil {
		return nil, fmt.Errorf("failed to lay out folders: %w", err)
	}
	logger.Debug("Folder tree built.", "tree", folders.String())

	// A fresh renderer per pass picks up templates edited while watching.
	gen := generator.New(model, ws, folders, a.provider, a.reader, render.New(), generator.Options{
		OverrideKinds:  a.config.OverrideKinds,
		Only:           a.config.Only,
		DryRun:         a.config.DryRun,
		KeepUnreadable: a.config.KeepUnreadable,
	})
	report, err := gen.Run(ctx)
	if report != nil {
		report.RunID = runID
	}
	if err != nil {
		return report, err
	}

	logger.Debug("App.Run method finished.")
	return report, nil
}
