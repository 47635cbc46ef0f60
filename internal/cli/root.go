package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verbkit-labs/verbkit/internal/branding"
	"github.com/verbkit-labs/verbkit/internal/command"
	"github.com/verbkit-labs/verbkit/internal/config"
	"github.com/verbkit-labs/verbkit/internal/errcode"
	"github.com/verbkit-labs/verbkit/internal/plugin"
	"github.com/verbkit-labs/verbkit/internal/plugins"
	"github.com/verbkit-labs/verbkit/internal/result"
)

// app holds the per-invocation wiring: the populated registry, the loader
// report, build info, and the resolved global flags.
type app struct {
	reg    *command.Registry
	report *plugin.Report

	buildVersion string
	buildCommit  string
	buildDate    string

	output string
	quiet  bool

	stdout io.Writer
	stderr io.Writer
}

// Execute loads plugins, builds the command tree, runs it, and returns the
// process exit code. Startup failures (duplicate verb, empty registry) are
// fatal and return the generic failure code.
func Execute(ctx context.Context, version, commit, date string, argv []string) int {
	config.Load()

	reg := command.NewRegistry()
	report, err := plugin.Load(reg, plugin.Options{
		Root:     config.PluginsDir(),
		Version:  version,
		Builtins: plugins.Providers(),
		Warnings: os.Stderr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return errcode.ExitFailure
	}

	a := &app{
		reg:          reg,
		report:       report,
		buildVersion: version,
		buildCommit:  commit,
		buildDate:    date,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
	return a.run(ctx, argv)
}

// run resolves the requested verb and executes the command tree. Resolution
// goes through the registry first: an unknown verb never reaches any handler.
func (a *app) run(ctx context.Context, argv []string) int {
	root := a.rootCommand()

	if _, _, findErr := root.Find(argv); findErr != nil {
		verb, _ := firstPositional(argv)
		if _, err := a.reg.Get(verb); err != nil {
			var unknown *command.UnknownError
			if errors.As(err, &unknown) {
				a.printUnknown(unknown)
				return errcode.ExitUsage
			}
		}
	}

	root.SetArgs(argv)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return errcode.ExitSuccess
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return errcode.ExitInterrupt
	}

	// Anything else is a usage-level error surfaced by Cobra (bad flags,
	// wrong argument count).
	fmt.Fprintln(a.stderr, "Error:", err)
	return errcode.ExitUsage
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` dispatches subcommands to registered handlers.
Verbs come from built-in providers and from external plugins discovered
under the plugins directory at startup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultOutput := config.Get(config.KeyOutput)
	if defaultOutput == "" {
		defaultOutput = result.FormatText
	}
	root.PersistentFlags().StringVar(&a.output, "output", defaultOutput, "Output format: text or json")
	root.PersistentFlags().BoolVar(&a.quiet, "quiet", config.GetBool(config.KeyQuiet), "Suppress event output")

	for _, verb := range a.reg.Verbs() {
		h, err := a.reg.Get(verb)
		if err != nil {
			continue
		}
		root.AddCommand(a.commandFor(h))
	}

	root.AddCommand(a.versionCommand())
	root.AddCommand(a.pluginsCommand())

	return root
}

// printUnknown writes the unknown-command diagnostic with the sorted verb
// list, the usage surface promised for dispatch misses.
func (a *app) printUnknown(unknown *command.UnknownError) {
	fmt.Fprintf(a.stderr, "Error: %s\n\nAvailable commands:\n", unknown.Error())
	for _, v := range unknown.Available {
		fmt.Fprintf(a.stderr, "  %s\n", v)
	}
	fmt.Fprintf(a.stderr, "\nRun '%s --help' for usage.\n", branding.CLIName())
}

// firstPositional returns the first token that is not a flag or a flag value.
func firstPositional(argv []string) (string, bool) {
	skipNext := false
	for _, arg := range argv {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			// --output takes a separate value; --output=json does not.
			if arg == "--output" {
				skipNext = true
			}
			continue
		}
		return arg, true
	}
	return "", false
}

// exitError carries a handler-derived exit code through Cobra's error return.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
