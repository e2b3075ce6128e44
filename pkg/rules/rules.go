// Package rules defines path-addressed matching rules.
//
// A RuleSet maps a root-relative path ("$", "$.user", "$.items[0].id") to the
// Rule that governs the value found there. Rule sets are produced by the
// element compiler when a contract is authored and consumed by the matcher
// when a provider is verified.
package rules

import (
	"regexp"
	"sort"
)

// MatchKind is the tolerance a rule declares.
type MatchKind string

// Supported match kinds.
const (
	MatchExact MatchKind = "exact"
	MatchType  MatchKind = "type"
	MatchRegex MatchKind = "regex"
)

// Root is the path of the document root.
const Root = "$"

// Rule governs how the value at one path is matched.
type Rule struct {
	Match MatchKind `json:"match"`

	// Regex is the pattern for MatchRegex rules.
	Regex string `json:"regex,omitempty"`

	// Min is the minimum array length for MatchType rules on arrays.
	Min *uint `json:"min,omitempty"`
}

// Exact returns an exact-value rule.
func Exact() Rule { return Rule{Match: MatchExact} }

// Type returns a type-only rule.
func Type() Rule { return Rule{Match: MatchType} }

// MinType returns a type rule for arrays with at least min elements.
func MinType(min uint) Rule { return Rule{Match: MatchType, Min: &min} }

// Regex returns a rule requiring a string that fully matches pattern.
func Regex(pattern string) Rule { return Rule{Match: MatchRegex, Regex: pattern} }

// MinCount returns the declared minimum array length, or 0.
func (r Rule) MinCount() uint {
	if r.Min == nil {
		return 0
	}
	return *r.Min
}

// HasMin reports whether the rule declares a minimum array length.
func (r Rule) HasMin() bool { return r.Min != nil }

// RuleSet maps paths to rules.
type RuleSet map[string]Rule

// Get returns the rule at path.
func (rs RuleSet) Get(path string) (Rule, bool) {
	r, ok := rs[path]
	return r, ok
}

// Paths returns the paths of the rule set in sorted order.
func (rs RuleSet) Paths() []string {
	paths := make([]string, 0, len(rs))
	for p := range rs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// CompilePattern compiles a regex rule pattern so that it must match the
// whole string.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// FullMatch reports whether s fully matches pattern. An invalid pattern
// matches nothing.
func FullMatch(pattern, s string) bool {
	re, err := CompilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
