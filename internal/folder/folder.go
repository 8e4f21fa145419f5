// Package folder maps logical folder names onto a directory hierarchy.
//
// The tree lives in memory. Nothing is created on disk until the generator
// calls Realize for a folder it is about to write into.
package folder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/nodeid"
)

// ProjectFolder is the implicit root: the project directory itself.
const ProjectFolder = "project"

// Folder is one directory node.
type Folder struct {
	Name     string
	Path     string
	Parent   *Folder
	Children []*Folder
}

// Builder owns the in-memory tree for one configure pass.
type Builder struct {
	root    *Folder
	folders map[string]*Folder
}

// NewBuilder starts a tree rooted at the project directory.
func NewBuilder(projectDir string) *Builder {
	root := &Folder{Name: ProjectFolder, Path: filepath.Clean(projectDir)}
	return &Builder{
		root:    root,
		folders: map[string]*Folder{ProjectFolder: root},
	}
}

// Root returns the project folder.
func (b *Builder) Root() *Folder { return b.root }

// Lookup returns a folder by name. The empty name means the project folder.
func (b *Builder) Lookup(name string) (*Folder, bool) {
	if name == "" {
		name = ProjectFolder
	}
	f, ok := b.folders[name]
	return f, ok
}

// Place adds a folder `up` levels above parent, then down into rel.
func (b *Builder) Place(name string, parent *Folder, up int, rel string) (*Folder, error) {
	if _, dup := b.folders[name]; dup {
		return nil, fmt.Errorf("folder %q already placed", name)
	}
	if up < 0 {
		return nil, fmt.Errorf("folder %q: negative depth %d", name, up)
	}

	var path string
	if filepath.IsAbs(rel) {
		path = filepath.Clean(rel)
	} else {
		parts := []string{parent.Path}
		for i := 0; i < up; i++ {
			parts = append(parts, "..")
		}
		parts = append(parts, filepath.FromSlash(rel))
		path = filepath.Join(parts...)
	}

	f := &Folder{Name: name, Path: path, Parent: parent}
	parent.Children = append(parent.Children, f)
	b.folders[name] = f
	return f, nil
}

// Build places every defined folder, parents before children. A parent
// chain that loops back on itself is a materialization error.
func (b *Builder) Build(ctx context.Context, defs map[string]*config.FolderDefinition) error {
	logger := ctxlog.FromContext(ctx)

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	visiting := make(map[string]bool)
	var place func(name string, chain []string) (*Folder, error)
	place = func(name string, chain []string) (*Folder, error) {
		if f, ok := b.Lookup(name); ok {
			return f, nil
		}
		def, ok := defs[name]
		if !ok {
			return nil, fmt.Errorf("unknown folder %q", name)
		}
		chain = append(chain, nodeid.Folder(name).String())
		if visiting[name] {
			return nil, &errs.MaterializationError{Chain: chain, Reason: "folder parent cycle"}
		}
		visiting[name] = true
		defer delete(visiting, name)

		parent, err := place(def.Parent, chain)
		if err != nil {
			return nil, err
		}
		f, err := b.Place(name, parent, def.Up, def.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Placed folder.", "folder", name, "path", f.Path)
		return f, nil
	}

	for _, name := range names {
		if _, err := place(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Realize creates f's directory on disk.
func (b *Builder) Realize(f *Folder) error {
	return os.MkdirAll(f.Path, 0o755)
}

// Rel expresses f's path relative to the project folder.
func (b *Builder) Rel(f *Folder) string {
	rel, err := filepath.Rel(b.root.Path, f.Path)
	if err != nil {
		return f.Path
	}
	return filepath.ToSlash(rel)
}

// String renders the tree, one folder per line, for debugging and plans.
func (b *Builder) String() string {
	var sb strings.Builder
	var walk func(f *Folder, depth int)
	walk = func(f *Folder, depth int) {
		fmt.Fprintf(&sb, "%s%s (%s)\n", strings.Repeat("  ", depth), f.Name, b.Rel(f))
		for _, c := range f.Children {
			walk(c, depth+1)
		}
	}
	walk(b.root, 0)
	return sb.String()
}
