package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/verbkit-labs/verbkit/internal/branding"
	"github.com/verbkit-labs/verbkit/internal/command"
	"github.com/verbkit-labs/verbkit/internal/errcode"
)

// ExecHandler runs an external plugin by spawning its manifest entrypoint.
// Parsed parameter values are passed as VERBKIT_ARG_<NAME> environment
// variables; remaining positional arguments are appended to the entry argv.
type ExecHandler struct {
	dir      string
	manifest *Manifest
}

// NewExecHandler builds a handler for a plugin directory with an already
// validated manifest.
func NewExecHandler(dir string, m *Manifest) *ExecHandler {
	return &ExecHandler{dir: dir, manifest: m}
}

func (h *ExecHandler) Meta() command.Meta {
	return command.Meta{
		Verb:    h.manifest.Verb,
		Summary: h.manifest.Summary,
		Source:  h.dir,
		Params:  h.manifest.CommandParams(),
	}
}

func (h *ExecHandler) Run(ctx context.Context, inv *command.Invocation) error {
	entry := h.manifest.Entry
	argv := append(append([]string{}, entry[1:]...), inv.Argv...)

	cmd := exec.CommandContext(ctx, entry[0], argv...)
	cmd.Dir = h.dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	cmd.Env = h.environ(inv)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errcode.New(errcode.DomainConstraint, "plugin %s exited with code %d", h.manifest.Name, exitErr.ExitCode()).
				With("verb", h.manifest.Verb).
				With("exit_code", exitErr.ExitCode())
		}
		return errcode.New(errcode.EnvIO, "running plugin %s: %v", h.manifest.Name, err).
			With("verb", h.manifest.Verb)
	}

	inv.Result.AddCoded("plugin", fmt.Sprintf("%s completed", h.manifest.Name), errcode.OK, map[string]any{
		"verb":    h.manifest.Verb,
		"version": h.manifest.Version,
	})
	return nil
}

// environ extends the process environment with the plugin contract variables.
func (h *ExecHandler) environ(inv *command.Invocation) []string {
	env := os.Environ()
	env = append(env,
		branding.EnvVar("VERB")+"="+h.manifest.Verb,
		branding.EnvVar("PLUGIN_DIR")+"="+h.dir,
	)
	for name, value := range inv.Values() {
		env = append(env, branding.EnvVar("ARG_"+strings.ToUpper(name))+"="+value)
	}
	return env
}
