// Package render turns a resolved artifact node into file content using its
// kind's text/template.
//
// Templates see a *Data value. Besides the plain fields they can call
//
//	{{ .Param "name" }}      resolved value, error if the kind lacks it
//	{{ range .Emitted }}     parameters with emit = true, in declaration order
//	{{ .Include "child" }}   the child's target path relative to this artifact
//	{{ range .Includes }}    every included child as {Name, ID, Path}
//
// plus the helper functions xml, upper, lower and title.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/specialistvlad/artifactsmith/internal/artifact"
	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/param"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer parses each kind's template once and executes it per artifact.
type Renderer struct {
	mu    sync.Mutex
	cache map[string]*template.Template
	funcs template.FuncMap
}

// New returns a renderer with an empty template cache.
func New() *Renderer {
	return &Renderer{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			"xml":   escapeXML,
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": func(s string) string { return cases.Title(language.Und).String(s) },
		},
	}
}

// Render executes kind's template for n. n must be resolved, and every child
// it includes must be resolved too.
func (r *Renderer) Render(kind *config.KindDefinition, n *artifact.Node) ([]byte, error) {
	if !n.Resolved() {
		return nil, fmt.Errorf("%w: %s is not resolved", errs.ErrRenderFailure, n.ID)
	}

	tmpl, err := r.template(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrRenderFailure, n.ID, err)
	}

	data, err := newData(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrRenderFailure, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrRenderFailure, n.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) template(kind *config.KindDefinition) (*template.Template, error) {
	ref := kind.TemplateRef()

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[ref]; ok {
		return t, nil
	}

	body := kind.TemplateBody
	if kind.TemplatePath != "" {
		raw, err := os.ReadFile(kind.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", ref, err)
		}
		body = string(raw)
	}

	t, err := template.New(ref).Funcs(r.funcs).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", ref, err)
	}
	r.cache[ref] = t
	return t, nil
}

// Data is the value templates execute against.
type Data struct {
	ID     string
	Name   string
	Kind   string
	File   string
	Params map[string]string
	// Includes lists the included children in declaration order.
	Includes []Included

	node *artifact.Node
}

// Included is one child reference as seen from the including artifact.
type Included struct {
	Name string
	ID   string
	// Path is the child's target relative to the including artifact's
	// directory, slash-separated.
	Path string
}

func newData(n *artifact.Node) (*Data, error) {
	d := &Data{
		ID:     n.ID.String(),
		Name:   n.ID.Name,
		Kind:   n.Kind,
		File:   filepath.Base(n.TargetPath),
		Params: n.Params.Resolved(),
		node:   n,
	}
	for _, c := range n.Children {
		path, err := d.Include(c.ID.Name)
		if err != nil {
			return nil, err
		}
		d.Includes = append(d.Includes, Included{Name: c.ID.Name, ID: c.ID.String(), Path: path})
	}
	return d, nil
}

// Param returns a resolved parameter value.
func (d *Data) Param(name string) (string, error) {
	p, ok := d.node.Params.Get(name)
	if !ok {
		return "", fmt.Errorf("artifact %s has no parameter %q", d.ID, name)
	}
	return p.Resolved, nil
}

// Emitted returns the parameters written into the property list.
func (d *Data) Emitted() []*param.Parameter {
	return d.node.Params.Emitted()
}

// Include returns the included child's target, relative to this artifact's
// directory and slash-separated.
func (d *Data) Include(name string) (string, error) {
	child, ok := d.node.Child(name)
	if !ok {
		return "", fmt.Errorf("artifact %s does not include %q", d.ID, name)
	}
	if !child.Resolved() {
		return "", fmt.Errorf("included artifact %s is not resolved", child.ID)
	}
	rel, err := filepath.Rel(d.node.Dir(), child.TargetPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
