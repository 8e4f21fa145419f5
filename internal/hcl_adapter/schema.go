package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a blueprint file may contain.
type fileRoot struct {
	Kinds     []*Kind     `hcl:"kind,block"`
	Folders   []*Folder   `hcl:"folder,block"`
	Artifacts []*Artifact `hcl:"artifact,block"`
	Remain    hcl.Body    `hcl:",remain"`
}

// Kind is the HCL shape of a `kind` block.
type Kind struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Template    string   `hcl:"template,optional"`
	Body        string   `hcl:"body,optional"`
	Params      []*Param `hcl:"param,block"`
}

// Param is the HCL shape of a `param` block inside a kind.
type Param struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Path        bool           `hcl:"path,optional"`
	Emit        *bool          `hcl:"emit,optional"`
}

// Folder is the HCL shape of a `folder` block.
type Folder struct {
	Name   string `hcl:"name,label"`
	Parent string `hcl:"parent,optional"`
	Up     int    `hcl:"up,optional"`
	Path   string `hcl:"path,optional"`
}

// Artifact is the HCL shape of an `artifact` block.
type Artifact struct {
	Name          string   `hcl:"name,label"`
	Kind          string   `hcl:"kind"`
	Folder        string   `hcl:"folder,optional"`
	File          string   `hcl:"file"`
	Override      bool     `hcl:"override,optional"`
	Includes      []string `hcl:"includes,optional"`
	RelocatedFrom string   `hcl:"relocated_from,optional"`
}
