// Package errcode defines the stable numeric error catalog and the process
// exit codes derived from it. Numeric values are part of the tool's contract
// (they appear in JSON output) and must never be reassigned.
package errcode

import "fmt"

// Code is a stable numeric error identifier. Codes are grouped by thousands:
// 1xxx input, 2xxx config, 3xxx environment, 4xxx plugins, 5xxx domain,
// 9xxx bugs.
type Code int

const (
	OK Code = 0

	InputNotFound Code = 1001
	InputInvalid  Code = 1002

	ConfigMissing Code = 2001
	ConfigInvalid Code = 2002

	EnvPermission Code = 3001
	EnvIO         Code = 3002

	PluginImport   Code = 4001
	PluginConflict Code = 4002

	DomainConstraint Code = 5001
	DomainNotReady   Code = 5002

	BugUnhandled Code = 9001
	BugAssert    Code = 9002
)

var names = map[Code]string{
	OK:               "OK",
	InputNotFound:    "E_INPUT_NOT_FOUND",
	InputInvalid:     "E_INPUT_INVALID",
	ConfigMissing:    "E_CONFIG_MISSING",
	ConfigInvalid:    "E_CONFIG_INVALID",
	EnvPermission:    "E_ENV_PERMISSION",
	EnvIO:            "E_ENV_IO",
	PluginImport:     "E_PLUGIN_IMPORT",
	PluginConflict:   "E_PLUGIN_CONFLICT",
	DomainConstraint: "E_DOMAIN_CONSTRAINT",
	DomainNotReady:   "E_DOMAIN_NOT_READY",
	BugUnhandled:     "E_BUG_UNHANDLED",
	BugAssert:        "E_BUG_ASSERT",
}

// Name returns the stable symbolic name for the code (e.g., "E_CONFIG_MISSING").
func (c Code) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("E_UNKNOWN_%d", int(c))
}

// Process exit codes. Usage errors and environment/plugin/domain failures
// share the value 2; the two names exist because they mean different things
// at the call site.
const (
	ExitSuccess     = 0
	ExitFailure     = 1 // input/config failures and generic failures
	ExitUsage       = 2 // unknown command, bad flags, bad positional args
	ExitEnvironment = 2 // environment, plugin, and domain failures
	ExitBug         = 70
	ExitInterrupt   = 130
)

// Error is a typed command failure carrying a catalog code. Handlers return
// it (directly or wrapped) to control the reported code and exit status.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

// New builds a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// With attaches a detail key/value pair and returns the error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s:%d)", e.Message, e.Code.Name(), int(e.Code))
}
