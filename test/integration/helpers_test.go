//go:build integration

package integration_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/verbkit-labs/verbkit/internal/branding"
)

// setupHome sandboxes $HOME so config and plugin lookups never touch the
// developer's real dot-directory.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// writePlugin installs an external plugin under the sandboxed home.
func writePlugin(t *testing.T, home, dir, manifest, script string) {
	t.Helper()

	pluginDir := filepath.Join(home, branding.HomeDir(), "plugins", dir)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("creating plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	if script != "" {
		if err := os.WriteFile(filepath.Join(pluginDir, "run.sh"), []byte(script), 0755); err != nil {
			t.Fatalf("writing script: %v", err)
		}
	}
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = w

	fn()

	os.Stdout = old
	w.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured output: %v", err)
	}
	return string(b)
}
