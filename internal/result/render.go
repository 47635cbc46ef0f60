package result

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormat reports whether s names a supported output format.
func ValidFormat(s string) bool {
	return s == FormatText || s == FormatJSON
}

// Render writes the result to w in the given format. Quiet suppresses all
// output; the exit code still reflects the recorded events.
func (r *Result) Render(w io.Writer, format string, quiet bool) error {
	if quiet {
		return nil
	}
	if format == FormatJSON {
		return r.renderJSON(w)
	}
	return r.renderText(w)
}

// renderText prints one line per event:
//
//	[kind] (E_CONFIG_MISSING:2001) message key=value
//
// Detail keys are sorted so output is deterministic.
func (r *Result) renderText(w io.Writer) error {
	for _, ev := range r.Events {
		var b strings.Builder
		b.WriteString("[" + ev.Kind + "]")
		if ev.CodeNum != nil {
			fmt.Fprintf(&b, " (%s:%d)", ev.Code, *ev.CodeNum)
		}
		if ev.Message != "" {
			b.WriteString(" " + ev.Message)
		}
		keys := make([]string, 0, len(ev.Details))
		for k := range ev.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, ev.Details[k])
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) renderJSON(w io.Writer) error {
	// Events marshals to [] rather than null when empty.
	out := struct {
		OK     bool    `json:"ok"`
		Events []Event `json:"events"`
	}{OK: r.OK, Events: r.Events}
	if out.Events == nil {
		out.Events = []Event{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
