// This file translates the HCL schema structs into the format-agnostic
// model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
)

// translateKind converts a `kind` block. Template paths are made absolute
// against the directory of the blueprint file that declared them.
func (l *Loader) translateKind(ctx context.Context, k *Kind, baseDir string) (*config.KindDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("kind", k.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	def := &config.KindDefinition{
		Name:         k.Name,
		Description:  k.Description,
		TemplateBody: k.Body,
	}

	if k.Template != "" {
		tpl := k.Template
		if !filepath.IsAbs(tpl) {
			tpl = filepath.Join(baseDir, tpl)
		}
		if _, err := os.Stat(tpl); err != nil {
			return nil, fmt.Errorf("kind %q: template: %w", k.Name, err)
		}
		def.TemplatePath = tpl
	}

	seen := make(map[string]struct{}, len(k.Params))
	for _, p := range k.Params {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("kind %q: parameter %q is declared more than once", k.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
		def.Params = append(def.Params, translateParam(ctx, p))
	}

	logger.Debug("Translated kind.", "params", len(def.Params), "template", def.TemplateRef())
	return def, nil
}

// translateParam converts a `param` block. Omitted `emit` means true.
func translateParam(ctx context.Context, p *Param) *config.ParamDefinition {
	def := &config.ParamDefinition{
		Name:         p.Name,
		Description:  p.Description,
		PathRelative: p.Path,
		Emit:         true,
	}
	if p.Emit != nil {
		def.Emit = *p.Emit
	}
	if isExprDefined(ctx, p.Default, "default") {
		def.Default = p.Default
	}
	return def
}

func translateFolder(f *Folder) *config.FolderDefinition {
	return &config.FolderDefinition{
		Name:   f.Name,
		Parent: f.Parent,
		Up:     f.Up,
		Path:   f.Path,
	}
}

func translateArtifact(a *Artifact) *config.ArtifactDefinition {
	return &config.ArtifactDefinition{
		Name:          a.Name,
		Kind:          a.Kind,
		Folder:        a.Folder,
		File:          a.File,
		Override:      a.Override,
		Includes:      append([]string(nil), a.Includes...),
		RelocatedFrom: a.RelocatedFrom,
	}
}
