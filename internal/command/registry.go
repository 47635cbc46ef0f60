package command

import (
	"fmt"
	"sort"
)

// Registry maps verbs to handlers. It is populated once at startup by the
// plugin loader and read-only afterwards; there is no re-registration within
// a single invocation.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under its declared verb. A duplicate verb fails
// with *DuplicateError; duplicates are detected here, at load time, never at
// dispatch time.
func (r *Registry) Register(h Handler) error {
	m := h.Meta()
	if m.Verb == "" {
		return fmt.Errorf("handler from %s declares an empty verb", sourceOrUnknown(m.Source))
	}
	if prev, ok := r.handlers[m.Verb]; ok {
		return &DuplicateError{
			Verb:   m.Verb,
			First:  sourceOrUnknown(prev.Meta().Source),
			Second: sourceOrUnknown(m.Source),
		}
	}
	r.handlers[m.Verb] = h
	return nil
}

// Get returns the handler registered under verb, or *UnknownError.
func (r *Registry) Get(verb string) (Handler, error) {
	h, ok := r.handlers[verb]
	if !ok {
		return nil, &UnknownError{Verb: verb, Available: r.Verbs()}
	}
	return h, nil
}

// Verbs returns the registered verbs sorted lexicographically, regardless of
// registration order.
func (r *Registry) Verbs() []string {
	verbs := make([]string, 0, len(r.handlers))
	for v := range r.handlers {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

// Len returns the number of registered verbs.
func (r *Registry) Len() int {
	return len(r.handlers)
}

func sourceOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
