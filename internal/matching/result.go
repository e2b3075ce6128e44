package matching

import (
	"fmt"
	"strings"
)

// Fields a mismatch can be reported against.
const (
	FieldMethod = "method"
	FieldPath   = "path"
	FieldStatus = "status"
	FieldHeader = "header"
	FieldQuery  = "query"
	FieldBody   = "body"
)

// missing is shown as the actual value of an absent member, header or
// query parameter.
const missing = "(missing)"

// Mismatch describes one expectation the actual traffic did not meet.
type Mismatch struct {
	Field    string `json:"field"`
	Path     string `json:"path,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Reason   string `json:"reason"`
}

func (m Mismatch) String() string {
	if m.Path == "" {
		return m.Field + ": " + m.Reason
	}
	return m.Field + " " + m.Path + ": " + m.Reason
}

// Result is the outcome of a comparison.
type Result struct {
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Matched reports whether no mismatch was found.
func (r Result) Matched() bool {
	return len(r.Mismatches) == 0
}

// Merge appends the mismatches of other.
func (r *Result) Merge(other Result) {
	r.Mismatches = append(r.Mismatches, other.Mismatches...)
}

// Fields returns the distinct fields that did not match, in report order.
func (r Result) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, m := range r.Mismatches {
		if !seen[m.Field] {
			seen[m.Field] = true
			fields = append(fields, m.Field)
		}
	}
	return fields
}

// String lists every mismatch, one per line.
func (r Result) String() string {
	if r.Matched() {
		return "all specified fields matched"
	}
	lines := make([]string, len(r.Mismatches))
	for i, m := range r.Mismatches {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}

// Summary gives a one-line explanation, naming the mismatched fields and the
// first mismatch.
func (r Result) Summary() string {
	if r.Matched() {
		return "all specified fields matched"
	}
	return fmt.Sprintf("%s did not match: %s", joinFields(r.Fields()), r.Mismatches[0])
}

// joinFields joins field names with commas and "and".
func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}

// truncate shortens a string to maxLen, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
