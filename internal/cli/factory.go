package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verbkit-labs/verbkit/internal/command"
	"github.com/verbkit-labs/verbkit/internal/errcode"
	"github.com/verbkit-labs/verbkit/internal/result"
)

// commandFor generates the Cobra command for one registered verb. Required
// non-bool parameters become positional arguments in declaration order;
// optional parameters and bools become flags.
func (a *app) commandFor(h command.Handler) *cobra.Command {
	m := h.Meta()
	positional := positionalParams(m)

	use := m.Verb
	for _, p := range positional {
		use += " <" + flagName(p.Name) + ">"
	}

	c := &cobra.Command{
		Use:   use,
		Short: m.Summary,
		// Extra arguments beyond the declared positionals are allowed and
		// passed through to the handler untouched.
		Args: cobra.MinimumNArgs(len(positional)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd.Context(), h, m, positional, cmd, args)
		},
	}

	for _, p := range m.Params {
		if isPositional(p) {
			continue
		}
		name := flagName(p.Name)
		switch p.Kind {
		case command.KindBool:
			def, _ := strconv.ParseBool(p.Default)
			c.Flags().Bool(name, def, usageFor(p))
		case command.KindInt:
			def, _ := strconv.Atoi(p.Default)
			c.Flags().Int(name, def, usageFor(p))
		case command.KindFloat:
			def, _ := strconv.ParseFloat(p.Default, 64)
			c.Flags().Float64(name, def, usageFor(p))
		default:
			c.Flags().String(name, p.Default, usageFor(p))
		}
	}

	return c
}

// dispatch binds the parsed arguments, runs the handler exactly once, renders
// the result, and converts the outcome to an exit code.
func (a *app) dispatch(ctx context.Context, h command.Handler, m command.Meta, positional []command.Param, cmd *cobra.Command, args []string) error {
	if !result.ValidFormat(a.output) {
		fmt.Fprintf(a.stderr, "Error: invalid --output %q: expected %s or %s\n", a.output, result.FormatText, result.FormatJSON)
		return &exitError{code: errcode.ExitUsage}
	}

	values, rest, err := bindParams(m, positional, cmd, args)
	if err != nil {
		fmt.Fprintln(a.stderr, "Error:", err)
		return &exitError{code: errcode.ExitUsage}
	}

	res := result.New()
	inv := command.NewInvocation(values, rest, res)
	inv.Stdout = a.stdout
	inv.Stderr = a.stderr

	code := a.invoke(ctx, h, inv)

	if renderErr := res.Render(a.stdout, a.output, a.quiet); renderErr != nil {
		fmt.Fprintln(a.stderr, "Error:", renderErr)
		if code == errcode.ExitSuccess {
			code = errcode.ExitFailure
		}
	}

	if code != errcode.ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

// invoke runs the handler, mapping returned errors onto the result and
// recovering panics as bugs. Failures are recorded, never swallowed.
func (a *app) invoke(ctx context.Context, h command.Handler, inv *command.Invocation) (code int) {
	defer func() {
		if p := recover(); p != nil {
			inv.Result.Fail("unhandled panic", errcode.BugUnhandled, map[string]any{
				"panic": fmt.Sprint(p),
			})
			code = inv.Result.ExitCode()
		}
	}()

	if err := h.Run(ctx, inv); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return errcode.ExitInterrupt
		}
		inv.Result.FailErr(err)
	}
	return inv.Result.ExitCode()
}

// bindParams maps positional arguments and flag values onto parameter names,
// enforcing each parameter's declared kind. The returned rest slice holds the
// arguments after the declared positionals, unmodified.
func bindParams(m command.Meta, positional []command.Param, cmd *cobra.Command, args []string) (map[string]string, []string, error) {
	values := make(map[string]string)

	for i, p := range positional {
		v := args[i]
		if err := checkKind(p, v); err != nil {
			return nil, nil, err
		}
		values[p.Name] = v
	}
	rest := args[len(positional):]

	for _, p := range m.Params {
		if isPositional(p) {
			continue
		}
		f := cmd.Flags().Lookup(flagName(p.Name))
		if f == nil {
			continue
		}
		v := f.Value.String()
		if p.Kind == command.KindChoice && v != "" && !hasChoice(p.Choices, v) {
			return nil, nil, fmt.Errorf("invalid value %q for --%s: expected one of %s",
				v, flagName(p.Name), strings.Join(p.Choices, ", "))
		}
		values[p.Name] = v
	}

	return values, rest, nil
}

// checkKind validates a positional argument against its parameter kind.
// Typed flags are validated by pflag; positionals arrive as raw strings.
func checkKind(p command.Param, v string) error {
	switch p.Kind {
	case command.KindInt:
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid integer %q for <%s>", v, flagName(p.Name))
		}
	case command.KindFloat:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid number %q for <%s>", v, flagName(p.Name))
		}
	case command.KindChoice:
		if !hasChoice(p.Choices, v) {
			return fmt.Errorf("invalid value %q for <%s>: expected one of %s",
				v, flagName(p.Name), strings.Join(p.Choices, ", "))
		}
	}
	return nil
}

func positionalParams(m command.Meta) []command.Param {
	var out []command.Param
	for _, p := range m.Params {
		if isPositional(p) {
			out = append(out, p)
		}
	}
	return out
}

func isPositional(p command.Param) bool {
	return p.Required && p.Kind != command.KindBool
}

func hasChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

func flagName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}

func usageFor(p command.Param) string {
	if p.Kind == command.KindChoice && len(p.Choices) > 0 {
		if p.Usage != "" {
			return p.Usage + " (one of: " + strings.Join(p.Choices, ", ") + ")"
		}
		return "One of: " + strings.Join(p.Choices, ", ")
	}
	return p.Usage
}
