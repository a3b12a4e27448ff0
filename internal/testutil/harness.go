package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/filepickgo/internal/app"
	"github.com/vk/filepickgo/internal/hcl"
	"github.com/vk/filepickgo/internal/registry"
)

// HarnessResult holds the outcomes of a harness build.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// BuildApp provides a standardized harness for constructing an app from
// in-memory manifest files and test modules. Startup panics are captured
// in the result instead of failing the test, so validation failures can
// be asserted on.
func BuildApp(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-picker-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	modulesDir := filepath.Join(tmpDir, "modules")
	require.NoError(t, os.Mkdir(modulesDir, 0755))

	// The test provides relative paths (e.g. "modules/camera.hcl"), which
	// naturally creates the subdirectory structure within the root tmpDir.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(app.Config{
		ModulesPath: modulesDir,
		Site:        "test",
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	buf := &SafeBuffer{}

	var testApp *app.App
	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("startup panic: %v", r)
			}
		}()
		testApp = app.NewApp(buf, appConfig, hcl.NewLoader(), modules...)
	}()

	return &HarnessResult{
		Output: buf.String(),
		Err:    panicErr,
		App:    testApp,
	}
}

// EnableAll enables every registered source and fails the test on error.
func EnableAll(t *testing.T, reg *registry.Registry) {
	t.Helper()
	for _, name := range reg.Names() {
		require.NoError(t, reg.Enable(name))
	}
}
