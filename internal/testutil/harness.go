// Package testutil provides a harness that runs full configure passes
// against a throwaway project directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/artifactsmith/internal/app"
	"github.com/specialistvlad/artifactsmith/internal/generator"
	"github.com/specialistvlad/artifactsmith/internal/hcl_adapter"
	"github.com/stretchr/testify/require"
)

const (
	// BlueprintDir is where blueprint files are looked up, relative to the
	// harness root.
	BlueprintDir = "blueprint"
	// WorkspaceFile is the workspace model, relative to the harness root.
	WorkspaceFile = "workspace.yaml"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of one configure pass.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Report    *generator.Report
	Err       error
	App       *app.App
}

// WriteFiles writes files (relative path -> content) under root.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// RunConfigure writes files into a fresh temp dir and runs one pass there.
// Blueprints go under "blueprint/", the workspace model is "workspace.yaml".
func RunConfigure(t *testing.T, files map[string]string, opts ...func(*app.Config)) *HarnessResult {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, files)
	return RunConfigureIn(context.Background(), t, dir, opts...)
}

// RunConfigureIn runs one pass against an existing harness directory, e.g.
// a second time to check idempotence.
func RunConfigureIn(ctx context.Context, t *testing.T, dir string, opts ...func(*app.Config)) *HarnessResult {
	t.Helper()

	cfg := app.Config{
		BlueprintPaths: []string{filepath.Join(dir, BlueprintDir)},
		WorkspacePath:  filepath.Join(dir, WorkspaceFile),
		LogLevel:       "debug",
		LogFormat:      "text",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig, hcl_adapter.NewLoader())
	report, runErr := testApp.Run(ctx)

	if os.Getenv("ASMITH_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Dir:       dir,
		LogOutput: logBuffer.String(),
		Report:    report,
		Err:       runErr,
		App:       testApp,
	}
}

// DryRun is an option for RunConfigure that enables plan mode.
func DryRun(cfg *app.Config) { cfg.DryRun = true }

// Override is an option for RunConfigure that forces defaults for kinds.
func Override(kinds ...string) func(*app.Config) {
	return func(cfg *app.Config) { cfg.OverrideKinds = kinds }
}
