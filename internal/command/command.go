// Package command defines the handler contract and the verb registry that
// backs command dispatch. Handlers declare their parameters in Meta; the CLI
// layer turns required non-bool parameters into positional arguments and
// everything else into flags, then hands the parsed values to Run through an
// Invocation.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/verbkit-labs/verbkit/internal/result"
)

// Kind enumerates the value types a parameter can take.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindChoice Kind = "choice"
	KindFile   Kind = "file" // a path; the handler opens it
)

// Param describes one parameter of a verb. Required non-bool parameters are
// exposed as positional CLI arguments in declaration order; optional
// parameters and bools become --kebab-case flags.
type Param struct {
	Name     string
	Kind     Kind
	Required bool
	Default  string
	Choices  []string // KindChoice only
	Usage    string
}

// Meta describes a registered verb.
type Meta struct {
	Verb    string
	Summary string
	Source  string // provider that registered the verb, e.g. "builtin" or a plugin dir
	Params  []Param
}

// Handler is one CLI verb. Implementations must be safe to call once per
// process; the registry never invokes a handler twice in one invocation.
type Handler interface {
	Meta() Meta
	Run(ctx context.Context, inv *Invocation) error
}

// Invocation carries the per-call state a handler needs: parsed parameter
// values, the raw remaining arguments, stdio, and the Result to record
// events into. It is created per dispatch and discarded at process exit.
type Invocation struct {
	// Argv holds the remaining positional arguments exactly as they
	// followed the verb, after flag parsing.
	Argv []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Result *result.Result

	values map[string]string
}

// NewInvocation builds an Invocation with stdio defaulted to the process
// streams. values maps parameter names to their parsed string form.
func NewInvocation(values map[string]string, argv []string, res *result.Result) *Invocation {
	if values == nil {
		values = make(map[string]string)
	}
	if res == nil {
		res = result.New()
	}
	return &Invocation{
		Argv:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Result: res,
		values: values,
	}
}

// Has reports whether the parameter was provided or defaulted.
func (inv *Invocation) Has(name string) bool {
	_, ok := inv.values[name]
	return ok
}

// String returns the parameter value, or "" when absent.
func (inv *Invocation) String(name string) string {
	return inv.values[name]
}

// Int parses the parameter as an integer.
func (inv *Invocation) Int(name string) (int, error) {
	v, ok := inv.values[name]
	if !ok {
		return 0, fmt.Errorf("parameter %q not provided", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return n, nil
}

// Float parses the parameter as a float64.
func (inv *Invocation) Float(name string) (float64, error) {
	v, ok := inv.values[name]
	if !ok {
		return 0, fmt.Errorf("parameter %q not provided", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return f, nil
}

// Bool returns the parameter as a boolean; absent or unparseable is false.
func (inv *Invocation) Bool(name string) bool {
	b, err := strconv.ParseBool(inv.values[name])
	if err != nil {
		return false
	}
	return b
}

// Values returns a copy of the parsed parameter map.
func (inv *Invocation) Values() map[string]string {
	out := make(map[string]string, len(inv.values))
	for k, v := range inv.values {
		out[k] = v
	}
	return out
}
