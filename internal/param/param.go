// Package param holds the parameter types shared by the provider, the merge
// resolver and the renderer: per-kind descriptors and the ordered table an
// artifact owns once its values are resolved.
package param

import "fmt"

// Source records where a resolved value came from.
type Source int

const (
	SourceDefault Source = iota
	SourcePersisted
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourcePersisted:
		return "persisted"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Descriptor is one row of an artifact kind's schema.
type Descriptor struct {
	Name         string
	PathRelative bool
	// Emit is false for parameters that are resolved but kept out of the
	// emitted property list (e.g. ANT_BASEDIR in some kinds).
	Emit bool
}

// Parameter is a descriptor paired with its default and resolved values.
type Parameter struct {
	Descriptor
	Default  string
	Resolved string
	Source   Source
}

// Table is an ordered map of parameters keyed by name.
type Table struct {
	order  []string
	byName map[string]*Parameter
}

// NewTable returns a table holding params in the given order. Later
// duplicates replace earlier ones but keep the first position.
func NewTable(params ...Parameter) *Table {
	t := &Table{byName: make(map[string]*Parameter, len(params))}
	for _, p := range params {
		t.Put(p)
	}
	return t
}

// Put inserts or replaces a parameter.
func (t *Table) Put(p Parameter) {
	if _, ok := t.byName[p.Name]; !ok {
		t.order = append(t.order, p.Name)
	}
	cp := p
	t.byName[p.Name] = &cp
}

// Get returns the named parameter.
func (t *Table) Get(name string) (*Parameter, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := t.byName[name]
	return p, ok
}

// Len returns the number of parameters.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Names returns parameter names in declaration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// All returns the parameters in declaration order.
func (t *Table) All() []*Parameter {
	if t == nil {
		return nil
	}
	out := make([]*Parameter, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Emitted returns the parameters that belong in generated output.
func (t *Table) Emitted() []*Parameter {
	var out []*Parameter
	for _, p := range t.All() {
		if p.Emit {
			out = append(out, p)
		}
	}
	return out
}

// Resolved returns name -> resolved value.
func (t *Table) Resolved() map[string]string {
	out := make(map[string]string, t.Len())
	for _, p := range t.All() {
		out[p.Name] = p.Resolved
	}
	return out
}
