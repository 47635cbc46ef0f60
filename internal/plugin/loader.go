// Package plugin populates the verb registry at startup. Built-in handlers
// come from an explicit provider list; external handlers are discovered from
// plugin directories, each described by a schema-validated YAML manifest and
// executed through its declared entrypoint.
package plugin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/verbkit-labs/verbkit/internal/command"
)

// ErrNoHandlers is returned when loading finishes with an empty registry.
// A CLI with no verbs is a configuration error, so startup fails fast.
var ErrNoHandlers = errors.New("no commands registered")

// Options configures a Load call.
type Options struct {
	// Root is the external plugins directory. A missing directory is not an
	// error; it simply contributes no plugins.
	Root string

	// Version is the CLI build version, checked against each manifest's
	// min_cli_version. The value "dev" (or empty) disables the gate.
	Version string

	// Builtins are registered before external plugins are scanned.
	Builtins []command.Handler

	// Warnings receives one line per skipped plugin. Defaults to io.Discard.
	Warnings io.Writer
}

// Entry records the outcome for one external plugin directory.
type Entry struct {
	Dir     string `json:"dir"`
	Verb    string `json:"verb,omitempty"`
	Version string `json:"version,omitempty"`
	Skipped string `json:"skipped,omitempty"` // reason; empty means loaded
}

// Report summarizes what the loader found, for the `plugins` command.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Load populates the registry from built-ins and the external plugins root.
//
// Behavior:
//   - Built-in registration errors are fatal.
//   - Directories without a manifest are skipped silently.
//   - Invalid or incompatible manifests are skipped with a warning line and a
//     report entry; loading continues (best effort).
//   - A duplicate verb across any providers is fatal (*command.DuplicateError).
//   - An empty registry after loading is fatal (ErrNoHandlers).
func Load(reg *command.Registry, opts Options) (*Report, error) {
	warn := opts.Warnings
	if warn == nil {
		warn = io.Discard
	}

	for _, h := range opts.Builtins {
		if err := reg.Register(h); err != nil {
			return nil, err
		}
	}

	report := &Report{}
	if opts.Root != "" {
		if err := loadExternal(reg, opts, warn, report); err != nil {
			return nil, err
		}
	}

	if reg.Len() == 0 {
		return nil, ErrNoHandlers
	}
	return report, nil
}

func loadExternal(reg *command.Registry, opts Options, warn io.Writer, report *Report) error {
	entries, err := os.ReadDir(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		fmt.Fprintf(warn, "warning: reading plugins root %s: %v\n", opts.Root, err)
		return nil
	}

	// Deterministic discovery order.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		dir := filepath.Join(opts.Root, ent.Name())
		manifestPath := filepath.Join(dir, ManifestFileName)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		m, reason := loadManifest(manifestPath, opts.Version)
		if reason != "" {
			fmt.Fprintf(warn, "warning: plugin %s skipped: %s\n", ent.Name(), reason)
			report.Entries = append(report.Entries, Entry{Dir: ent.Name(), Skipped: reason})
			continue
		}

		if err := reg.Register(&ExecHandler{dir: dir, manifest: m}); err != nil {
			// A verb collision is a configuration error, not a bad plugin.
			return err
		}
		report.Entries = append(report.Entries, Entry{
			Dir:     ent.Name(),
			Verb:    m.Verb,
			Version: m.Version,
		})
	}
	return nil
}

// loadManifest validates and parses one manifest. A non-empty reason means
// the plugin must be skipped.
func loadManifest(path, cliVersion string) (*Manifest, string) {
	res, err := ValidateFile(path)
	if err != nil {
		return nil, err.Error()
	}
	if !res.Valid {
		return nil, "invalid manifest: " + res.Issues[0].String()
	}

	m, err := ParseManifest(path)
	if err != nil {
		return nil, err.Error()
	}

	ok, err := compatible(cliVersion, m.MinCLIVersion)
	if err != nil {
		return nil, err.Error()
	}
	if !ok {
		return nil, fmt.Sprintf("requires CLI >= %s, have %s", m.MinCLIVersion, cliVersion)
	}
	return m, ""
}

// compatible reports whether the CLI version satisfies the manifest's
// min_cli_version. Dev builds bypass the gate.
func compatible(cliVersion, min string) (bool, error) {
	if min == "" || cliVersion == "" || cliVersion == "dev" {
		return true, nil
	}
	cur, err := semver.NewVersion(cliVersion)
	if err != nil {
		return false, fmt.Errorf("parsing CLI version %q: %w", cliVersion, err)
	}
	floor, err := semver.NewVersion(min)
	if err != nil {
		return false, fmt.Errorf("parsing min_cli_version %q: %w", min, err)
	}
	return !cur.LessThan(floor), nil
}
