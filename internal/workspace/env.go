package workspace

import (
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Environ snapshots the process environment. Entries without '=' are
// dropped.
func Environ() map[string]string {
	return parseEnviron(os.Environ())
}

func parseEnviron(entries []string) map[string]string {
	env := make(map[string]string, len(entries))
	for _, e := range entries {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			env[pair[0]] = pair[1]
		}
	}
	return env
}

// WithEnv returns a copy of w whose blueprint expressions can read env as
// `env.<NAME>`. The copy shares the model values, which are never mutated.
func (w *Workspace) WithEnv(env map[string]string) *Workspace {
	cp := *w
	cp.env = cty.EmptyObjectVal
	if len(env) == 0 {
		return &cp
	}
	vals := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vals[k] = cty.StringVal(v)
	}
	cp.env = cty.ObjectVal(vals)
	return &cp
}

// Env returns the environment snapshot as a cty object. Without WithEnv it
// is an empty object, so `env.X` fails like any other missing state.
func (w *Workspace) Env() cty.Value {
	if w.env.IsKnown() && !w.env.IsNull() {
		return w.env
	}
	return cty.EmptyObjectVal
}
