package matching

import (
	"fmt"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/contract"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// MatchHeaders checks that every expected header is present in actual.
// Names are case-insensitive (per HTTP spec) and extra actual headers are
// ignored. A regex rule keyed by the header name replaces the exact value
// comparison; a type rule only requires presence.
func MatchHeaders(expected, actual contract.Headers, rs rules.RuleSet) []Mismatch {
	var mismatches []Mismatch
	for _, name := range expected.Names() {
		want := expected[name]
		got, ok := actual.Get(name)
		if !ok {
			mismatches = append(mismatches, Mismatch{
				Field:    FieldHeader,
				Path:     name,
				Expected: want,
				Actual:   missing,
				Reason:   "missing header " + name,
			})
			continue
		}

		if rule, ok := headerRule(rs, name); ok {
			switch rule.Match {
			case rules.MatchRegex:
				if !rules.FullMatch(rule.Regex, got) {
					mismatches = append(mismatches, Mismatch{
						Field:    FieldHeader,
						Path:     name,
						Expected: "a value matching " + rule.Regex,
						Actual:   got,
						Reason:   fmt.Sprintf("expected a value matching %s but got %q", rule.Regex, got),
					})
				}
				continue
			case rules.MatchType:
				continue
			}
		}

		if !MatchHeaderValue(want, got) {
			mismatches = append(mismatches, Mismatch{
				Field:    FieldHeader,
				Path:     name,
				Expected: want,
				Actual:   got,
				Reason:   fmt.Sprintf("expected %q but got %q", want, got),
			})
		}
	}
	return mismatches
}

// MatchHeaderValue compares two header values, ignoring whitespace around
// comma-separated list items.
func MatchHeaderValue(expected, actual string) bool {
	if expected == actual {
		return true
	}
	want := splitList(expected)
	got := splitList(actual)
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// headerRule finds the rule for a header, comparing names case-insensitively.
// Rules written as "$.headers.Name" are accepted too. When several keys fold
// to the same name the first in sorted order wins.
func headerRule(rs rules.RuleSet, name string) (rules.Rule, bool) {
	if r, ok := rs[name]; ok {
		return r, true
	}
	for _, key := range rs.Paths() {
		if strings.EqualFold(strings.TrimPrefix(key, "$.headers."), name) {
			return rs[key], true
		}
	}
	return rules.Rule{}, false
}
