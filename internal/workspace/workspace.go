// Package workspace loads the project/workspace model a configure pass
// reads its defaults from. The model is an opaque key-value document
// (YAML) exposed to blueprint expressions as `workspace.<key>`.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// ProjectDirKey is always present in the model. It defaults to the
// directory holding the workspace file.
const ProjectDirKey = "project_dir"

// Workspace is an immutable snapshot of the workspace model.
type Workspace struct {
	path   string
	values map[string]any
	object cty.Value
	env    cty.Value
}

// Load reads a YAML workspace file. projectDir, when non-empty, overrides
// any project_dir the file declares.
func Load(path string, projectDir string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workspace file: %w", err)
	}

	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse workspace file %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return New(absPath, values, projectDir)
}

// New builds a workspace from already-decoded values. Relative project
// directories are resolved against the directory of path.
func New(path string, values map[string]any, projectDir string) (*Workspace, error) {
	if values == nil {
		values = make(map[string]any)
	}
	base := filepath.Dir(path)

	if projectDir == "" {
		if v, ok := values[ProjectDirKey].(string); ok && v != "" {
			projectDir = v
		} else {
			projectDir = base
		}
	}
	if !filepath.IsAbs(projectDir) {
		projectDir = filepath.Join(base, projectDir)
	}
	values[ProjectDirKey] = filepath.ToSlash(filepath.Clean(projectDir))

	obj, err := toCty(values)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", path, err)
	}
	return &Workspace{path: path, values: values, object: obj}, nil
}

// Path returns the workspace file location.
func (w *Workspace) Path() string { return w.path }

// ProjectDir returns the absolute project directory.
func (w *Workspace) ProjectDir() string {
	return filepath.FromSlash(w.values[ProjectDirKey].(string))
}

// Value returns a raw top-level value.
func (w *Workspace) Value(key string) (any, bool) {
	v, ok := w.values[key]
	return v, ok
}

// Keys returns the sorted top-level keys.
func (w *Workspace) Keys() []string {
	keys := make([]string, 0, len(w.values))
	for k := range w.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Object returns the model as a cty object value.
func (w *Workspace) Object() cty.Value { return w.object }
