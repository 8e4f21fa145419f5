package config

import "github.com/hashicorp/hcl/v2"

// Model is the unified representation of every blueprint file loaded for a
// configure pass.
type Model struct {
	Kinds   map[string]*KindDefinition
	Folders map[string]*FolderDefinition
	// Artifacts keeps declaration order, which fixes the generation order of
	// unrelated artifacts.
	Artifacts []*ArtifactDefinition
	// Files lists every blueprint and template file the model was built from.
	Files []string
}

// NewModel returns an empty model ready to be populated.
func NewModel() *Model {
	return &Model{
		Kinds:   make(map[string]*KindDefinition),
		Folders: make(map[string]*FolderDefinition),
	}
}

// Artifact returns the named artifact definition.
func (m *Model) Artifact(name string) (*ArtifactDefinition, bool) {
	for _, a := range m.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// KindDefinition is the schema of one artifact kind.
type KindDefinition struct {
	Name        string
	Description string
	// TemplatePath is an absolute path to a text/template file. It is empty
	// when TemplateBody holds an inline template.
	TemplatePath string
	TemplateBody string
	Params       []*ParamDefinition
}

// TemplateRef names the template for logs and caches.
func (k *KindDefinition) TemplateRef() string {
	if k.TemplatePath != "" {
		return k.TemplatePath
	}
	return "kind." + k.Name + ".body"
}

// ParamDefinition declares one parameter of a kind.
type ParamDefinition struct {
	Name        string
	Description string
	// Default is evaluated against workspace state by the provider.
	// Nil means the empty string.
	Default      hcl.Expression
	PathRelative bool
	Emit         bool
}

// FolderDefinition places a logical folder in the directory hierarchy.
type FolderDefinition struct {
	Name string
	// Parent is another folder's name; empty means the project directory.
	Parent string
	// Up climbs this many levels from the parent before applying Path.
	Up   int
	Path string
}

// ArtifactDefinition is one artifact slot.
type ArtifactDefinition struct {
	Name     string
	Kind     string
	Folder   string
	File     string
	Override bool
	// Includes names child artifacts whose resolved paths this artifact's
	// content references.
	Includes []string
	// RelocatedFrom is an earlier location of this artifact, relative to its
	// folder, consulted when nothing exists at the target yet.
	RelocatedFrom string
}
