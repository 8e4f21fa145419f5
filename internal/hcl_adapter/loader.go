package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL blueprint loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges all blocks into
// one validated model. Any parse, decode or validation problem fails the
// whole load: a broken blueprint is not a per-artifact condition.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no blueprint files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		model.Files = append(model.Files, file)
		baseDir := filepath.Dir(file)

		for _, k := range root.Kinds {
			if _, dup := model.Kinds[k.Name]; dup {
				return nil, fmt.Errorf("%s: kind %q is declared more than once", file, k.Name)
			}
			def, err := l.translateKind(ctx, k, baseDir)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Kinds[def.Name] = def
			if def.TemplatePath != "" {
				model.Files = append(model.Files, def.TemplatePath)
			}
		}
		for _, f := range root.Folders {
			if _, dup := model.Folders[f.Name]; dup {
				return nil, fmt.Errorf("%s: folder %q is declared more than once", file, f.Name)
			}
			model.Folders[f.Name] = translateFolder(f)
		}
		for _, a := range root.Artifacts {
			if _, dup := model.Artifact(a.Name); dup {
				return nil, fmt.Errorf("%s: artifact %q is declared more than once", file, a.Name)
			}
			model.Artifacts = append(model.Artifacts, translateArtifact(a))
		}
	}

	if err := validateModel(model); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "kinds", len(model.Kinds), "folders", len(model.Folders), "artifacts", len(model.Artifacts))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a sorted, de-duplicated
// list of .hcl files.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var allFiles []string
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			seen[p] = struct{}{}
			allFiles = append(allFiles, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing blueprint path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}

		found, err := fsutil.FindFiles(path, "**/*.hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(allFiles)
	return allFiles, nil
}
