// Package result implements the per-invocation result object. Handlers append
// events to a Result instead of printing; the dispatcher renders the events
// as text or JSON and derives the process exit code from them.
package result

import (
	"errors"
	"time"

	"github.com/verbkit-labs/verbkit/internal/errcode"
)

func asCoded(err error) (*errcode.Error, bool) {
	var ce *errcode.Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Event is one entry in the result stream. Code and CodeNum are both present
// for coded events so text output can show the symbolic name while JSON
// consumers match on the number.
type Event struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message,omitempty"`
	Code    string         `json:"code,omitempty"`
	CodeNum *int           `json:"code_num,omitempty"`
	Time    time.Time      `json:"ts"`
	Details map[string]any `json:"details,omitempty"`
}

// Result accumulates the outcome of one command invocation.
type Result struct {
	OK     bool    `json:"ok"`
	Events []Event `json:"events"`
}

// New returns a Result in the success state.
func New() *Result {
	return &Result{OK: true}
}

// Add appends an uncoded event.
func (r *Result) Add(kind, message string, details map[string]any) {
	r.Events = append(r.Events, Event{
		Kind:    kind,
		Message: message,
		Time:    time.Now().UTC(),
		Details: details,
	})
}

// AddCoded appends an event tagged with a catalog code.
func (r *Result) AddCoded(kind, message string, code errcode.Code, details map[string]any) {
	n := int(code)
	r.Events = append(r.Events, Event{
		Kind:    kind,
		Message: message,
		Code:    code.Name(),
		CodeNum: &n,
		Time:    time.Now().UTC(),
		Details: details,
	})
}

// Fail marks the result failed and records a coded error event.
func (r *Result) Fail(message string, code errcode.Code, details map[string]any) {
	r.OK = false
	r.AddCoded("error", message, code, details)
}

// FailErr marks the result failed from a handler error. A *errcode.Error
// keeps its code and details; any other error becomes an uncoded error event
// (which maps to the generic failure exit code).
func (r *Result) FailErr(err error) {
	if ce, ok := asCoded(err); ok {
		r.Fail(ce.Message, ce.Code, ce.Details)
		return
	}
	r.OK = false
	r.Add("error", err.Error(), nil)
}

// ExitCode derives the process exit code from the recorded events:
// success 0; any bug-range code 70; any input/config-range code 1;
// failure with no coded error events 1; otherwise 2.
func (r *Result) ExitCode() int {
	if r.OK {
		return errcode.ExitSuccess
	}

	var nums []int
	for _, ev := range r.Events {
		if ev.Kind != "error" || ev.CodeNum == nil {
			continue
		}
		nums = append(nums, *ev.CodeNum)
	}

	for _, n := range nums {
		if n >= 9000 {
			return errcode.ExitBug
		}
	}
	for _, n := range nums {
		if n >= 1000 && n < 3000 {
			return errcode.ExitFailure
		}
	}
	if len(nums) == 0 {
		return errcode.ExitFailure
	}
	return errcode.ExitEnvironment
}
