package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/verbkit-labs/verbkit/internal/command"
)

type builtinStub struct {
	verb string
}

func (h *builtinStub) Meta() command.Meta {
	return command.Meta{Verb: h.verb, Summary: "stub", Source: "builtin"}
}

func (h *builtinStub) Run(context.Context, *command.Invocation) error { return nil }

// writePlugin creates root/<dir>/plugin.yaml with the given content.
func writePlugin(t *testing.T, root, dir, manifest string) {
	t.Helper()
	pluginDir := filepath.Join(root, dir)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("creating plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, ManifestFileName), []byte(manifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
}

func manifestFor(verb string) string {
	return `name: ` + verb + `-plugin
verb: ` + verb + `
version: "1.0.0"
summary: Test plugin
entry: ["./run.sh"]
`
}

func TestLoad_BuiltinsOnly(t *testing.T) {
	reg := command.NewRegistry()
	report, err := Load(reg, Options{
		Builtins: []command.Handler{&builtinStub{verb: "greet"}},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("registry len = %d, want 1", reg.Len())
	}
	if len(report.Entries) != 0 {
		t.Fatalf("report entries = %d, want 0", len(report.Entries))
	}
}

func TestLoad_ZeroHandlersFailsFast(t *testing.T) {
	reg := command.NewRegistry()
	_, err := Load(reg, Options{Root: t.TempDir()})
	if !errors.Is(err, ErrNoHandlers) {
		t.Fatalf("err = %v, want ErrNoHandlers", err)
	}
}

func TestLoad_MissingRootIsNotAnError(t *testing.T) {
	reg := command.NewRegistry()
	_, err := Load(reg, Options{
		Root:     filepath.Join(t.TempDir(), "does-not-exist"),
		Builtins: []command.Handler{&builtinStub{verb: "greet"}},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_DiscoversExternalPlugins(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "pB", manifestFor("bravo"))
	writePlugin(t, root, "pA", manifestFor("alpha"))

	// A directory without a manifest is skipped silently.
	if err := os.MkdirAll(filepath.Join(root, "pEmpty"), 0755); err != nil {
		t.Fatal(err)
	}

	reg := command.NewRegistry()
	report, err := Load(reg, Options{Root: root})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want := []string{"alpha", "bravo"}; !reflect.DeepEqual(reg.Verbs(), want) {
		t.Fatalf("Verbs() = %v, want %v", reg.Verbs(), want)
	}

	// Report order follows sorted directory names, not verb names.
	if len(report.Entries) != 2 {
		t.Fatalf("report entries = %d, want 2", len(report.Entries))
	}
	if report.Entries[0].Dir != "pA" || report.Entries[0].Verb != "alpha" {
		t.Errorf("entry 0 = %+v, want pA/alpha", report.Entries[0])
	}
	if report.Entries[1].Dir != "pB" || report.Entries[1].Verb != "bravo" {
		t.Errorf("entry 1 = %+v, want pB/bravo", report.Entries[1])
	}
}

func TestLoad_InvalidManifestSkippedWithWarning(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "pGood", manifestFor("good"))
	writePlugin(t, root, "pBad", "name: bad\n") // missing verb, version, entry

	var warnings strings.Builder
	reg := command.NewRegistry()
	report, err := Load(reg, Options{Root: root, Warnings: &warnings})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if reg.Len() != 1 {
		t.Fatalf("registry len = %d, want 1", reg.Len())
	}
	if !strings.Contains(warnings.String(), "pBad") {
		t.Errorf("warnings = %q, want mention of pBad", warnings.String())
	}

	var bad *Entry
	for i := range report.Entries {
		if report.Entries[i].Dir == "pBad" {
			bad = &report.Entries[i]
		}
	}
	if bad == nil {
		t.Fatal("pBad missing from report")
	}
	if bad.Skipped == "" {
		t.Error("pBad has no skip reason")
	}
}

func TestLoad_DuplicateVerbIsFatal(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "pDup", manifestFor("greet"))

	reg := command.NewRegistry()
	_, err := Load(reg, Options{
		Root:     root,
		Builtins: []command.Handler{&builtinStub{verb: "greet"}},
	})

	var dup *command.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *command.DuplicateError", err)
	}
	if dup.Verb != "greet" {
		t.Errorf("Verb = %q, want greet", dup.Verb)
	}
}

func TestLoad_MinCLIVersionGate(t *testing.T) {
	gated := `name: gated
verb: gated
version: "1.0.0"
min_cli_version: "2.0.0"
entry: ["./run.sh"]
`
	cases := []struct {
		name       string
		cliVersion string
		wantLoaded bool
	}{
		{name: "older CLI skipped", cliVersion: "1.4.0", wantLoaded: false},
		{name: "equal CLI loaded", cliVersion: "2.0.0", wantLoaded: true},
		{name: "newer CLI loaded", cliVersion: "2.1.3", wantLoaded: true},
		{name: "dev build bypasses gate", cliVersion: "dev", wantLoaded: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			writePlugin(t, root, "pGated", gated)

			var warnings strings.Builder
			reg := command.NewRegistry()
			_, err := Load(reg, Options{
				Root:     root,
				Version:  tc.cliVersion,
				Builtins: []command.Handler{&builtinStub{verb: "other"}},
				Warnings: &warnings,
			})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			_, getErr := reg.Get("gated")
			loaded := getErr == nil
			if loaded != tc.wantLoaded {
				t.Fatalf("loaded = %v, want %v (warnings: %s)", loaded, tc.wantLoaded, warnings.String())
			}
		})
	}
}

func TestCompatible_BadVersions(t *testing.T) {
	if _, err := compatible("not-semver", "1.0.0"); err == nil {
		t.Error("compatible with bad CLI version succeeded, want error")
	}
	if _, err := compatible("1.0.0", "not-semver"); err == nil {
		t.Error("compatible with bad min version succeeded, want error")
	}
}
