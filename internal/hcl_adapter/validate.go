package hcl_adapter

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/nodeid"
)

// validateModel checks cross-references between blocks. Include cycles are
// deliberately left to the generator, which reports them as
// materialization errors naming the chain.
func validateModel(m *config.Model) error {
	var errs []error

	for _, k := range m.Kinds {
		if !nodeid.ValidName(k.Name) {
			errs = append(errs, fmt.Errorf("kind %q: invalid name", k.Name))
		}
		if (k.TemplatePath == "") == (k.TemplateBody == "") {
			errs = append(errs, fmt.Errorf("kind %q: exactly one of 'template' or 'body' must be set", k.Name))
		}
	}

	for _, f := range m.Folders {
		if !nodeid.ValidName(f.Name) {
			errs = append(errs, fmt.Errorf("folder %q: invalid name", f.Name))
		}
		if f.Up < 0 {
			errs = append(errs, fmt.Errorf("folder %q: 'up' must not be negative", f.Name))
		}
		if f.Parent != "" {
			if _, ok := m.Folders[f.Parent]; !ok {
				errs = append(errs, fmt.Errorf("folder %q: unknown parent folder %q", f.Name, f.Parent))
			}
		}
	}

	for _, a := range m.Artifacts {
		if !nodeid.ValidName(a.Name) {
			errs = append(errs, fmt.Errorf("artifact %q: invalid name", a.Name))
		}
		if _, ok := m.Kinds[a.Kind]; !ok {
			errs = append(errs, fmt.Errorf("artifact %q: unknown kind %q", a.Name, a.Kind))
		}
		if a.Folder != "" {
			if _, ok := m.Folders[a.Folder]; !ok {
				errs = append(errs, fmt.Errorf("artifact %q: unknown folder %q", a.Name, a.Folder))
			}
		}
		if a.File == "" || filepath.IsAbs(a.File) {
			errs = append(errs, fmt.Errorf("artifact %q: 'file' must be a relative path", a.Name))
		}
		for _, inc := range a.Includes {
			if _, ok := m.Artifact(inc); !ok {
				errs = append(errs, fmt.Errorf("artifact %q: includes unknown artifact %q", a.Name, inc))
			}
		}
	}

	return errors.Join(errs...)
}
