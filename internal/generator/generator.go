// Package generator runs one configure pass: it builds an artifact node per
// declared slot, links includes into a DAG, resolves every node children
// first, and emits the rendered files.
//
// A pass is single-threaded. Failures of one artifact are recorded in the
// report and do not stop its siblings; only a broken graph aborts the pass.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specialistvlad/artifactsmith/internal/artifact"
	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/dag"
	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/folder"
	"github.com/specialistvlad/artifactsmith/internal/fsutil"
	"github.com/specialistvlad/artifactsmith/internal/merge"
	"github.com/specialistvlad/artifactsmith/internal/nodeid"
	"github.com/specialistvlad/artifactsmith/internal/param"
	"github.com/specialistvlad/artifactsmith/internal/persist"
	"github.com/specialistvlad/artifactsmith/internal/provider"
	"github.com/specialistvlad/artifactsmith/internal/workspace"
)

// DefaultsProvider computes an artifact's parameter defaults.
type DefaultsProvider interface {
	Provide(ctx context.Context, kind *config.KindDefinition, ws *workspace.Workspace, scope provider.Scope) ([]param.Parameter, error)
}

// ValueReader loads values persisted in an existing artifact.
type ValueReader interface {
	Read(ctx context.Context, path string, names []string) persist.Result
}

// ContentRenderer produces the bytes of a resolved artifact.
type ContentRenderer interface {
	Render(kind *config.KindDefinition, n *artifact.Node) ([]byte, error)
}

// Options tune a pass.
type Options struct {
	// OverrideKinds forces defaults for every artifact of these kinds.
	OverrideKinds []string
	// Only restricts the pass to artifacts whose name or id matches this
	// doublestar pattern, plus everything they include.
	Only string
	// DryRun resolves and renders but writes nothing.
	DryRun bool
	// KeepUnreadable leaves existing files that failed to parse untouched
	// instead of regenerating them.
	KeepUnreadable bool
}

// Generator materializes a blueprint model.
type Generator struct {
	model    *config.Model
	ws       *workspace.Workspace
	folders  *folder.Builder
	provider DefaultsProvider
	reader   ValueReader
	renderer ContentRenderer
	opts     Options
}

// New wires a generator. folders must already be built from model.
func New(model *config.Model, ws *workspace.Workspace, folders *folder.Builder, prov DefaultsProvider, reader ValueReader, renderer ContentRenderer, opts Options) *Generator {
	return &Generator{
		model:    model,
		ws:       ws,
		folders:  folders,
		provider: prov,
		reader:   reader,
		renderer: renderer,
		opts:     opts,
	}
}

// pass holds the state of one Run. It is discarded afterwards.
type pass struct {
	graph   *dag.Graph
	nodes   map[string]*artifact.Node
	folders map[string]*folder.Folder
}

// Run executes one configure pass. The returned error is non-nil only for
// failures that invalidate the whole pass, such as an include cycle; per
// artifact failures are in the report.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	p, err := g.build()
	if err != nil {
		return nil, err
	}
	if err := p.graph.DetectCycles(); err != nil {
		return nil, err
	}

	roots, err := g.roots(p)
	if err != nil {
		return nil, err
	}
	order, err := p.graph.PostOrder(roots...)
	if err != nil {
		return nil, err
	}
	logger.Info("Starting configure pass.", "artifacts", len(order), "dry_run", g.opts.DryRun)

	report := &Report{DryRun: g.opts.DryRun}
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		n := p.nodes[id]
		nodeCtx := ctxlog.With(ctx, "artifact", id)
		report.add(g.materialize(nodeCtx, n, p.folders[id]))
	}

	logger.Info("Configure pass finished.", "artifacts", len(report.Entries), "failed", len(report.Failed()))
	return report, nil
}

// build creates one node per artifact slot and links the include edges.
func (g *Generator) build() (*pass, error) {
	p := &pass{
		graph:   dag.New(),
		nodes:   make(map[string]*artifact.Node),
		folders: make(map[string]*folder.Folder),
	}

	for _, def := range g.model.Artifacts {
		id := nodeid.Artifact(def.Name)
		kind, ok := g.model.Kinds[def.Kind]
		if !ok {
			return nil, &errs.MaterializationError{Chain: []string{id.String()}, Reason: fmt.Sprintf("unknown kind %q", def.Kind)}
		}
		f, ok := g.folders.Lookup(def.Folder)
		if !ok {
			return nil, &errs.MaterializationError{Chain: []string{id.String()}, Reason: fmt.Sprintf("unknown folder %q", def.Folder)}
		}

		spec := artifact.Spec{
			ID:          id,
			Kind:        kind.Name,
			TemplateRef: kind.TemplateRef(),
			TargetPath:  filepath.Join(f.Path, filepath.FromSlash(def.File)),
			Override:    def.Override || slices.Contains(g.opts.OverrideKinds, kind.Name),
		}
		if def.RelocatedFrom != "" {
			spec.RelocatedFrom = filepath.Join(f.Path, filepath.FromSlash(def.RelocatedFrom))
		}

		p.nodes[id.String()] = artifact.New(spec)
		p.folders[id.String()] = f
		p.graph.AddNode(id.String())
	}

	for _, def := range g.model.Artifacts {
		parentID := nodeid.Artifact(def.Name).String()
		for _, inc := range def.Includes {
			childID := nodeid.Artifact(inc).String()
			child, ok := p.nodes[childID]
			if !ok {
				return nil, &errs.MaterializationError{Chain: []string{parentID, childID}, Reason: "unknown include"}
			}
			if err := p.graph.AddEdge(parentID, childID); err != nil {
				return nil, err
			}
			p.nodes[parentID].Include(child)
		}
	}
	return p, nil
}

// roots picks where the post-order walk starts.
func (g *Generator) roots(p *pass) ([]string, error) {
	if g.opts.Only == "" {
		return p.graph.Roots(), nil
	}
	if !doublestar.ValidatePattern(g.opts.Only) {
		return nil, fmt.Errorf("invalid --only pattern %q", g.opts.Only)
	}

	var roots []string
	for _, def := range g.model.Artifacts {
		id := nodeid.Artifact(def.Name)
		nameHit, _ := doublestar.Match(g.opts.Only, def.Name)
		idHit, _ := doublestar.Match(g.opts.Only, id.String())
		if nameHit || idHit {
			roots = append(roots, id.String())
		}
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("--only pattern %q matches no artifact", g.opts.Only)
	}
	return roots, nil
}

// materialize resolves n and emits its file. Children have already been
// visited.
func (g *Generator) materialize(ctx context.Context, n *artifact.Node, f *folder.Folder) Entry {
	logger := ctxlog.FromContext(ctx)
	entry := Entry{
		ID:   n.ID.String(),
		Kind: n.Kind,
		Path: g.relPath(n.TargetPath),
	}

	for _, c := range n.Children {
		if !c.Resolved() {
			entry.Outcome = OutcomeSkipped
			entry.Err = fmt.Errorf("included artifact %s was not resolved", c.ID)
			logger.Warn("Skipping artifact.", "reason", entry.Err)
			return entry
		}
	}

	out, err := g.resolve(ctx, n, f)
	if err != nil {
		entry.Outcome = OutcomeFailed
		entry.Err = err
		logger.Error("Artifact could not be resolved.", "error", err)
		return entry
	}
	n.Apply(out)

	entry.State = n.State.String()
	entry.Hotspot = n.Hotspot()
	entry.Degraded = n.Degraded
	entry.Params = n.Params.Resolved()
	entry.Warnings = out.Warnings

	if n.Degraded && g.opts.KeepUnreadable {
		entry.Outcome = OutcomeKept
		logger.Warn("Leaving unreadable artifact untouched.", "path", n.TargetPath)
		return entry
	}

	content, err := g.renderer.Render(g.model.Kinds[n.Kind], n)
	if err != nil {
		entry.Outcome = OutcomeFailed
		entry.Err = err
		logger.Error("Artifact could not be rendered.", "error", err)
		return entry
	}

	if g.opts.DryRun {
		entry.Outcome = OutcomePlanned
		return entry
	}

	outcome, err := g.emit(n, f, content)
	if err != nil {
		entry.Outcome = OutcomeFailed
		entry.Err = err
		logger.Error("Artifact could not be written.", "path", n.TargetPath, "error", err)
		return entry
	}
	entry.Outcome = outcome
	logger.Info("Artifact materialized.", "path", n.TargetPath, "outcome", outcome, "state", n.State)
	return entry
}

// resolve runs the provider, the reader and the merge for one node.
func (g *Generator) resolve(ctx context.Context, n *artifact.Node, f *folder.Folder) (merge.Output, error) {
	logger := ctxlog.FromContext(ctx)
	kind := g.model.Kinds[n.Kind]

	defaults, err := g.provider.Provide(ctx, kind, g.ws, provider.Scope{
		ID:     n.ID.String(),
		Name:   n.ID.Name,
		Folder: f.Name,
		Dir:    n.Dir(),
		File:   filepath.Base(n.TargetPath),
	})
	if err != nil {
		return merge.Output{}, fmt.Errorf("compute defaults for %s: %w", n.ID, err)
	}

	in := merge.Input{
		Defaults:     defaults,
		Exists:       n.Exists(),
		Override:     n.OverrideRequested,
		Relocated:    n.Relocated(),
		PersistedDir: n.PersistedDir(),
		TargetDir:    n.Dir(),
	}
	if n.HasPersisted() && !n.OverrideRequested {
		if n.Relocated() {
			logger.Info("Reading values from an earlier location.", "from", n.PersistedPath)
		}
		names := make([]string, len(defaults))
		for i, d := range defaults {
			names[i] = d.Name
		}
		in.Persisted = g.reader.Read(ctx, n.PersistedPath, names)
	}

	out := merge.Resolve(in)
	if n.Relocated() && in.Persisted.Status == persist.StatusUnreadable {
		out.Warnings = append(out.Warnings, fmt.Sprintf("earlier copy %s is unreadable; using defaults", g.relPath(n.PersistedPath)))
	}
	if out.Degraded {
		logger.Warn("Existing artifact is unreadable; falling back to defaults.", "path", n.PersistedPath, "error", in.Persisted.Err)
	}
	for _, w := range out.Warnings {
		logger.Warn("Parameter kept without rebasing.", "detail", w)
	}
	return out, nil
}

// emit writes content unless the file already holds exactly these bytes.
func (g *Generator) emit(n *artifact.Node, f *folder.Folder, content []byte) (Outcome, error) {
	if err := g.folders.Realize(f); err != nil {
		return "", fmt.Errorf("%w: create folder %s: %w", errs.ErrWriteFailure, f.Path, err)
	}
	if dir := n.Dir(); dir != f.Path {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: create directory %s: %w", errs.ErrWriteFailure, dir, err)
		}
	}

	current, err := os.ReadFile(n.TargetPath)
	if err == nil && bytes.Equal(current, content) {
		return OutcomeUnchanged, nil
	}

	if err := fsutil.WriteFileAtomic(n.TargetPath, content, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %w", errs.ErrWriteFailure, n.TargetPath, err)
	}

	switch {
	case !n.Exists():
		return OutcomeCreated, nil
	case n.State == merge.StateNew:
		return OutcomeRegenerated, nil
	default:
		return OutcomeUpdated, nil
	}
}

func (g *Generator) relPath(path string) string {
	rel, err := filepath.Rel(g.folders.Root().Path, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// IsFatal reports whether err from Run invalidated the whole pass.
func IsFatal(err error) bool {
	var mErr *errs.MaterializationError
	return errors.As(err, &mErr)
}
