// Package cli builds the Cobra command tree from the verb registry. The
// registry is the source of truth for dispatch: the loader populates it at
// startup and the factory generates one Cobra command per registered verb,
// the way the rest of the tool's surface (version, plugins) is declared
// statically. Command execution renders the invocation Result and maps it to
// a process exit code.
package cli
