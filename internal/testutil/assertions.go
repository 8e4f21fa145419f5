package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/artifactsmith/internal/generator"
	"github.com/stretchr/testify/require"
)

// Entry returns the report entry for the named artifact, failing the test
// if the pass produced no report or no such entry.
func Entry(t *testing.T, result *HarnessResult, name string) generator.Entry {
	t.Helper()
	require.NoError(t, result.Err, "configure pass failed")
	require.NotNil(t, result.Report)
	e, ok := result.Report.Entry("artifact." + name)
	require.True(t, ok, "no report entry for artifact %q", name)
	return e
}

// AssertOutcome checks what happened to one artifact.
func AssertOutcome(t *testing.T, result *HarnessResult, name string, want generator.Outcome) {
	t.Helper()
	e := Entry(t, result, name)
	require.Equal(t, want, e.Outcome, "artifact %q: %s", name, e.Error)
}

// ReadFile returns the content of a file under the harness root.
func ReadFile(t *testing.T, result *HarnessResult, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(result.Dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// AssertLogged checks that the pass logged a line containing substr for the
// named artifact.
func AssertLogged(t *testing.T, result *HarnessResult, name, substr string) {
	t.Helper()
	key := "artifact=artifact." + name
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, key) && strings.Contains(line, substr) {
			return
		}
	}
	require.Failf(t, "log line not found", "no log line for %s containing %q", key, substr)
}
