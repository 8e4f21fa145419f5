// Package provider computes the authoritative default value of every
// parameter of an artifact kind from current workspace state.
//
// Defaults are HCL expressions evaluated against two variables:
//
//	workspace.<key>   the workspace model
//	artifact.<attr>   id, name, dir, file and folder of the artifact slot
//	env.<NAME>        the environment snapshot taken when the pass started
//
// Evaluation is deterministic and side-effect free. When the workspace
// lacks state an expression needs, the artifact fails with
// errs.ErrModelIncomplete; sibling artifacts are unaffected.
package provider

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/param"
	"github.com/specialistvlad/artifactsmith/internal/workspace"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Scope describes the artifact slot defaults are computed for.
type Scope struct {
	ID     string
	Name   string
	Folder string
	// Dir is the absolute directory the artifact will be written to.
	Dir  string
	File string
}

// Provider evaluates parameter defaults.
type Provider struct {
	functions map[string]function.Function
}

// New returns a provider exposing a small set of string functions to
// default expressions.
func New() *Provider {
	return &Provider{
		functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"join":      stdlib.JoinFunc,
			"format":    stdlib.FormatFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"replace":   stdlib.ReplaceFunc,
			"coalesce":  stdlib.CoalesceFunc,
		},
	}
}

// Provide returns kind's parameters, in declaration order, with Default
// computed and Resolved still empty.
func (p *Provider) Provide(ctx context.Context, kind *config.KindDefinition, ws *workspace.Workspace, scope Scope) ([]param.Parameter, error) {
	logger := ctxlog.FromContext(ctx)
	if ws == nil {
		return nil, errs.ModelIncomplete("no workspace loaded")
	}
	evalCtx := p.evalContext(ws, scope)

	params := make([]param.Parameter, 0, len(kind.Params))
	var problems []error
	for _, def := range kind.Params {
		value, err := p.evaluate(def, evalCtx)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if def.PathRelative {
			value = relativeTo(scope.Dir, value)
		}
		params = append(params, param.Parameter{
			Descriptor: param.Descriptor{Name: def.Name, PathRelative: def.PathRelative, Emit: def.Emit},
			Default:    value,
		})
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	logger.Debug("Computed parameter defaults.", "kind", kind.Name, "count", len(params))
	return params, nil
}

func (p *Provider) evalContext(ws *workspace.Workspace, scope Scope) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"workspace": ws.Object(),
			"env":       ws.Env(),
			"artifact": cty.ObjectVal(map[string]cty.Value{
				"id":     cty.StringVal(scope.ID),
				"name":   cty.StringVal(scope.Name),
				"folder": cty.StringVal(scope.Folder),
				"dir":    cty.StringVal(filepath.ToSlash(scope.Dir)),
				"file":   cty.StringVal(scope.File),
			}),
		},
		Functions: p.functions,
	}
}

func (p *Provider) evaluate(def *config.ParamDefinition, evalCtx *hcl.EvalContext) (string, error) {
	if def.Default == nil {
		return "", nil
	}

	val, diags := def.Default.Value(evalCtx)
	if diags.HasErrors() {
		return "", errs.ModelIncomplete("parameter %q: %s", def.Name, diags.Error())
	}
	if val.IsNull() {
		return "", errs.ModelIncomplete("parameter %q: default evaluated to null", def.Name)
	}
	if !val.IsWhollyKnown() {
		return "", errs.ModelIncomplete("parameter %q: default is not fully known", def.Name)
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", errs.ModelIncomplete("parameter %q: default is not a string: %s", def.Name, err)
	}
	return str.AsString(), nil
}

// relativeTo expresses value in the artifact's frame. Relative defaults are
// already in that frame and only get normalised.
func relativeTo(dir, value string) string {
	if value == "" {
		return value
	}
	native := filepath.FromSlash(value)
	if !filepath.IsAbs(native) {
		return filepath.ToSlash(filepath.Clean(native))
	}
	rel, err := filepath.Rel(dir, native)
	if err != nil {
		return filepath.ToSlash(native)
	}
	return filepath.ToSlash(rel)
}

// String renders a scope for log lines.
func (s Scope) String() string {
	return fmt.Sprintf("%s (%s)", s.ID, filepath.Join(s.Dir, s.File))
}
