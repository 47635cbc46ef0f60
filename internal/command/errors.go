package command

import "fmt"

// DuplicateError reports two providers claiming the same verb. It is a
// load-time configuration error and fails startup.
type DuplicateError struct {
	Verb   string
	First  string // source that registered the verb first
	Second string // source that attempted to re-register it
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate verb %q: registered by %s, then by %s", e.Verb, e.First, e.Second)
}

// UnknownError reports a dispatch against a verb that is not in the registry.
type UnknownError struct {
	Verb      string
	Available []string // sorted registry verbs, for the usage message
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Verb)
}
