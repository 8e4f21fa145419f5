package error_handling

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/generator"
	"github.com/specialistvlad/artifactsmith/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propsKind = `
kind "props" {
  body = "{{ range .Emitted }}{{ .Name }}={{ .Resolved }}\n{{ end }}"
  param "name" {
    default = workspace.name
  }
}
`

func TestErrorHandling_IncludeCycleAbortsPass(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"blueprint/main.hcl": propsKind + `
artifact "a" {
  kind     = "props"
  file     = "a.properties"
  includes = ["b"]
}
artifact "b" {
  kind     = "props"
  file     = "b.properties"
  includes = ["c"]
}
artifact "c" {
  kind     = "props"
  file     = "c.properties"
  includes = ["a"]
}
`,
		"workspace.yaml": "name: cyc\n",
	}

	// --- Act ---
	result := testutil.RunConfigure(t, files)

	// --- Assert ---
	var mErr *errs.MaterializationError
	require.ErrorAs(t, result.Err, &mErr)
	assert.Equal(t, []string{"artifact.a", "artifact.b", "artifact.c", "artifact.a"}, mErr.Chain)
	assert.ErrorContains(t, result.Err, "include cycle: artifact.a -> artifact.b -> artifact.c -> artifact.a")
	assert.NoFileExists(t, filepath.Join(result.Dir, "a.properties"))
}

func TestErrorHandling_CorruptFileIsRegenerated(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"blueprint/main.hcl": propsKind + `
artifact "settings" {
  kind = "props"
  file = "settings.properties"
}
`,
		"workspace.yaml":      "name: fresh\n",
		// A blank file left behind by an interrupted editor save.
		"settings.properties": "  \n\n",
	}

	result := testutil.RunConfigure(t, files)
	require.NoError(t, result.Err)

	e := testutil.Entry(t, result, "settings")
	assert.True(t, e.Degraded)
	assert.Equal(t, "new", e.State)
	assert.Equal(t, generator.OutcomeRegenerated, e.Outcome)
	assert.Equal(t, "name=fresh\n", testutil.ReadFile(t, result, "settings.properties"))
	assert.Contains(t, result.LogOutput, "Existing artifact is unreadable")
}

func TestErrorHandling_MissingWorkspaceStateFailsOnlyThatArtifact(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"blueprint/main.hcl": propsKind + `
kind "vendor" {
  body = "vendor={{ .Param \"vendor\" }}\n"
  param "vendor" {
    default = workspace.vendor
  }
}
artifact "good" {
  kind = "props"
  file = "good.properties"
}
artifact "bad" {
  kind = "vendor"
  file = "bad.properties"
}
`,
		"workspace.yaml": "name: partial\n",
	}

	result := testutil.RunConfigure(t, files)
	require.NoError(t, result.Err)

	bad := testutil.Entry(t, result, "bad")
	assert.Equal(t, generator.OutcomeFailed, bad.Outcome)
	assert.Equal(t, "model_incomplete", bad.Class)
	testutil.AssertOutcome(t, result, "good", generator.OutcomeCreated)
	assert.True(t, result.Report.HasFailures())
}

func TestErrorHandling_InvalidBlueprintIsRejected(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"blueprint/main.hcl": `artifact "x" { kind = `,
		"workspace.yaml":     "name: x\n",
	}

	result := testutil.RunConfigure(t, files)
	require.Error(t, result.Err)
	assert.Nil(t, result.Report)
	assert.ErrorContains(t, result.Err, "failed to load blueprint")
}

func TestErrorHandling_UnknownIncludeIsRejected(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"blueprint/main.hcl": propsKind + `
artifact "x" {
  kind     = "props"
  file     = "x.properties"
  includes = ["ghost"]
}
`,
		"workspace.yaml": "name: x\n",
	}

	result := testutil.RunConfigure(t, files)
	assert.ErrorContains(t, result.Err, `includes unknown artifact "ghost"`)
}

func TestErrorHandling_MissingWorkspaceFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"blueprint/main.hcl": propsKind,
	}

	result := testutil.RunConfigure(t, files)
	assert.ErrorContains(t, result.Err, "read workspace file")
}
