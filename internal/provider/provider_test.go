package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/artifactsmith/internal/config"
	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/param"
	"github.com/specialistvlad/artifactsmith/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return e
}

func newWorkspace(t *testing.T, values map[string]any) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New("/work/demo/workspace.yaml", values, "")
	require.NoError(t, err)
	return ws
}

func TestProvide_LibraryBuild(t *testing.T) {
	kind := &config.KindDefinition{
		Name: "library_build",
		Params: []*config.ParamDefinition{
			{Name: "project", Default: expr(t, "workspace.project_name"), Emit: true},
			{Name: "description", Emit: true},
			{Name: "target", Default: expr(t, `"build"`), Emit: true},
			{Name: "src_dir", Default: expr(t, `"${workspace.project_dir}/src"`), PathRelative: true, Emit: true},
			{Name: "ANT_BASEDIR", Default: expr(t, `"./"`), PathRelative: true},
			{Name: "jar", Default: expr(t, `format("%s-%s.jar", lower(workspace.project_name), artifact.name)`), Emit: true},
		},
	}
	ws := newWorkspace(t, map[string]any{"project_name": "Demo"})
	scope := Scope{ID: "artifact.lib", Name: "lib", Dir: filepath.FromSlash("/work/demo/lib"), File: "build.xml"}

	params, err := New().Provide(context.Background(), kind, ws, scope)
	require.NoError(t, err)

	want := []param.Parameter{
		{Descriptor: param.Descriptor{Name: "project", Emit: true}, Default: "Demo"},
		{Descriptor: param.Descriptor{Name: "description", Emit: true}, Default: ""},
		{Descriptor: param.Descriptor{Name: "target", Emit: true}, Default: "build"},
		{Descriptor: param.Descriptor{Name: "src_dir", PathRelative: true, Emit: true}, Default: "../src"},
		{Descriptor: param.Descriptor{Name: "ANT_BASEDIR", PathRelative: true}, Default: "."},
		{Descriptor: param.Descriptor{Name: "jar", Emit: true}, Default: "demo-lib.jar"},
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("Provide() mismatch (-want +got):\n%s", diff)
	}
}

func TestProvide_Deterministic(t *testing.T) {
	kind := &config.KindDefinition{
		Name:   "k",
		Params: []*config.ParamDefinition{{Name: "p", Default: expr(t, `join(",", workspace.modules)`)}},
	}
	ws := newWorkspace(t, map[string]any{"modules": []any{"core", "web"}})

	first, err := New().Provide(context.Background(), kind, ws, Scope{Dir: "/work/demo"})
	require.NoError(t, err)
	second, err := New().Provide(context.Background(), kind, ws, Scope{Dir: "/work/demo"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "core,web", first[0].Default)
}

func TestProvide_ModelIncomplete(t *testing.T) {
	testCases := []struct {
		name   string
		values map[string]any
		src    string
	}{
		{name: "missing key", values: map[string]any{}, src: "workspace.project_name"},
		{name: "null value", values: map[string]any{"project_name": nil}, src: "workspace.project_name"},
		{name: "not a string", values: map[string]any{"server": map[string]any{"host": "h"}}, src: "workspace.server"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind := &config.KindDefinition{
				Name: "k",
				Params: []*config.ParamDefinition{
					{Name: "ok", Default: expr(t, `"fine"`)},
					{Name: "project", Default: expr(t, tc.src)},
				},
			}
			_, err := New().Provide(context.Background(), kind, newWorkspace(t, tc.values), Scope{Dir: "/work/demo"})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrModelIncomplete)
			assert.Contains(t, err.Error(), `"project"`)
		})
	}
}

func TestProvide_NoWorkspace(t *testing.T) {
	_, err := New().Provide(context.Background(), &config.KindDefinition{Name: "k"}, nil, Scope{})
	assert.ErrorIs(t, err, errs.ErrModelIncomplete)
}

func TestRelativeTo(t *testing.T) {
	dir := filepath.FromSlash("/work/demo/lib")
	assert.Equal(t, "", relativeTo(dir, ""))
	assert.Equal(t, "src", relativeTo(dir, "./src"))
	assert.Equal(t, "../src", relativeTo(dir, "/work/demo/src"))
	assert.Equal(t, ".", relativeTo(dir, "/work/demo/lib"))
}

func TestProvide_Env(t *testing.T) {
	kind := &config.KindDefinition{
		Name: "tooling",
		Params: []*config.ParamDefinition{
			{Name: "ant_home", Default: expr(t, `coalesce(env.ANT_HOME, "/usr/share/ant")`), Emit: true},
		},
	}
	ws := newWorkspace(t, map[string]any{}).WithEnv(map[string]string{"ANT_HOME": "/opt/ant"})

	params, err := New().Provide(context.Background(), kind, ws, Scope{Dir: "/work/demo"})
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "/opt/ant", params[0].Default)

	// Without a snapshot, env is empty and references count as missing state.
	_, err = New().Provide(context.Background(), kind, newWorkspace(t, map[string]any{}), Scope{Dir: "/work/demo"})
	assert.ErrorIs(t, err, errs.ErrModelIncomplete)
}
