// Package artifact defines the materialization unit: one generated file,
// its parameter table, and the child artifacts it includes.
package artifact

import (
	"path/filepath"

	"github.com/specialistvlad/artifactsmith/internal/fsutil"
	"github.com/specialistvlad/artifactsmith/internal/merge"
	"github.com/specialistvlad/artifactsmith/internal/nodeid"
	"github.com/specialistvlad/artifactsmith/internal/param"
)

// Spec is what a node is constructed from.
type Spec struct {
	ID          nodeid.Address
	Kind        string
	TemplateRef string
	TargetPath  string
	// RelocatedFrom is an absolute earlier location consulted when nothing
	// exists at TargetPath.
	RelocatedFrom string
	Override      bool
}

// Node is one artifact in a configure pass.
type Node struct {
	ID          nodeid.Address
	Kind        string
	TemplateRef string
	TargetPath  string
	// PersistedPath is where prior values are read from: TargetPath when it
	// exists, else the relocation source when that exists, else empty.
	PersistedPath     string
	OverrideRequested bool

	exists bool

	// Params is owned by the node and set once by Apply.
	Params   *param.Table
	State    merge.State
	Degraded bool
	resolved bool

	// Children are included artifacts; they may be shared with other parents.
	Children []*Node
}

// New builds a node and performs its one existence check.
func New(spec Spec) *Node {
	n := &Node{
		ID:                spec.ID,
		Kind:              spec.Kind,
		TemplateRef:       spec.TemplateRef,
		TargetPath:        spec.TargetPath,
		OverrideRequested: spec.Override,
		exists:            fsutil.Exists(spec.TargetPath),
	}

	switch {
	case n.exists:
		n.PersistedPath = spec.TargetPath
	case spec.RelocatedFrom != "" && fsutil.Exists(spec.RelocatedFrom):
		n.PersistedPath = spec.RelocatedFrom
	}
	return n
}

// Exists reports whether TargetPath was on disk when the node was built.
// A relocation source does not count. It never changes afterwards, even once
// the file has been written.
func (n *Node) Exists() bool { return n.exists }

// HasPersisted reports whether prior values can be read from somewhere.
func (n *Node) HasPersisted() bool { return n.PersistedPath != "" }

// Dir is the directory the artifact is written to.
func (n *Node) Dir() string { return filepath.Dir(n.TargetPath) }

// PersistedDir is the directory prior values were stored relative to.
func (n *Node) PersistedDir() string { return filepath.Dir(n.PersistedPath) }

// Relocated reports whether prior values come from an earlier location.
func (n *Node) Relocated() bool { return n.HasPersisted() && n.PersistedPath != n.TargetPath }

// Include appends child to the node's includes, once.
func (n *Node) Include(child *Node) {
	for _, c := range n.Children {
		if c == child {
			return
		}
	}
	n.Children = append(n.Children, child)
}

// Apply records the resolver's outcome. Only the first call has effect, so a
// node shared by several parents is resolved once.
func (n *Node) Apply(out merge.Output) bool {
	if n.resolved {
		return false
	}
	n.Params = out.Params
	n.State = out.State
	n.Degraded = out.Degraded
	n.resolved = true
	return true
}

// Resolved reports whether Apply has run.
func (n *Node) Resolved() bool { return n.resolved }

// Hotspot reports whether the node should be surfaced as a fresh scaffold.
func (n *Node) Hotspot() bool { return n.resolved && n.State == merge.StateNew }

// Child returns the included child with the given artifact name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.ID.Name == name {
			return c, true
		}
	}
	return nil, false
}
