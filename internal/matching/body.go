package matching

import (
	"fmt"

	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// maxShown bounds the length of values quoted in mismatch reports.
const maxShown = 200

// mode is the comparison inherited from the nearest ancestor rule.
type mode int

const (
	// modeDefault applies when no ancestor carries a rule.
	modeDefault mode = iota
	// modeExact compares values and rejects extra object members.
	modeExact
	// modeType compares JSON kinds only.
	modeType
)

// MatchBody matches actual against expected from the document root.
func MatchBody(actual, expected jsonvalue.Value, rs rules.RuleSet) Result {
	return Match(actual, expected, rs, rules.Root)
}

// Match matches actual against expected starting at path, which names
// expected's position within its document. An empty path means the root.
func Match(actual, expected jsonvalue.Value, rs rules.RuleSet, path string) Result {
	if path == "" {
		path = rules.Root
	}
	w := &walker{rules: newRuleIndex(rs)}
	w.match(actual, expected, path, modeDefault)
	return Result{Mismatches: w.mismatches}
}

type walker struct {
	rules      *ruleIndex
	mismatches []Mismatch
}

func (w *walker) fail(path, expected, actual, reason string) {
	w.mismatches = append(w.mismatches, Mismatch{
		Field:    FieldBody,
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Reason:   reason,
	})
}

func (w *walker) match(actual, expected jsonvalue.Value, path string, inherited mode) {
	rule, ok := w.rules.lookup(path)
	if !ok {
		w.compare(actual, expected, path, inherited)
		return
	}

	switch rule.Match {
	case rules.MatchRegex:
		w.matchRegex(actual, path, rule.Regex)
	case rules.MatchType:
		if expected.Kind() == jsonvalue.KindArray {
			w.matchMinArray(actual, expected, path, rule.MinCount())
			return
		}
		w.compare(actual, expected, path, modeType)
	case rules.MatchExact:
		w.compare(actual, expected, path, modeExact)
	default:
		w.compare(actual, expected, path, inherited)
	}
}

func (w *walker) matchRegex(actual jsonvalue.Value, path, pattern string) {
	want := "a string matching " + pattern
	if actual.Kind() != jsonvalue.KindString {
		w.fail(path, want, describe(actual),
			fmt.Sprintf("expected a string matching %s but got %s", pattern, actual.TypeName()))
		return
	}
	if !rules.FullMatch(pattern, actual.AsString()) {
		w.fail(path, want, describe(actual),
			fmt.Sprintf("expected a string matching %s but got %s", pattern, describe(actual)))
	}
}

func (w *walker) compare(actual, expected jsonvalue.Value, path string, m mode) {
	if actual.Kind() != expected.Kind() {
		w.fail(path, describe(expected), describe(actual),
			fmt.Sprintf("expected %s but got %s", expected.TypeName(), actual.TypeName()))
		return
	}

	switch expected.Kind() {
	case jsonvalue.KindObject:
		w.matchObject(actual, expected, path, m)
	case jsonvalue.KindArray:
		if m == modeType {
			w.matchMinArray(actual, expected, path, 0)
			return
		}
		w.matchArray(actual, expected, path, m)
	default:
		if m == modeType {
			return
		}
		if !jsonvalue.Equal(actual, expected) {
			w.fail(path, describe(expected), describe(actual),
				fmt.Sprintf("expected %s but got %s", describe(expected), describe(actual)))
		}
	}
}

func (w *walker) matchObject(actual, expected jsonvalue.Value, path string, m mode) {
	for _, member := range expected.Members() {
		child := rules.Member(path, member.Key)
		got, ok := actual.Get(member.Key)
		if !ok {
			w.fail(child, describe(member.Value), missing, "missing member "+member.Key)
			continue
		}
		w.match(got, member.Value, child, m)
	}

	if m != modeExact {
		return
	}
	for _, member := range actual.Members() {
		if _, ok := expected.Get(member.Key); !ok {
			w.fail(rules.Member(path, member.Key), "", describe(member.Value), "unexpected member "+member.Key)
		}
	}
}

func (w *walker) matchArray(actual, expected jsonvalue.Value, path string, m mode) {
	if actual.Len() != expected.Len() {
		w.fail(path, describe(expected), describe(actual),
			fmt.Sprintf("expected %s but got %s", elements(expected.Len()), elements(actual.Len())))
		return
	}
	for i, item := range expected.Items() {
		w.match(actual.Index(i), item, rules.Index(path, i), m)
	}
}

// matchMinArray checks the minimum length, then matches the actual elements
// at the template's indices. Elements beyond the template only count
// towards the length.
func (w *walker) matchMinArray(actual, expected jsonvalue.Value, path string, minCount uint) {
	if actual.Kind() != jsonvalue.KindArray {
		w.fail(path, describe(expected), describe(actual),
			fmt.Sprintf("expected array but got %s", actual.TypeName()))
		return
	}
	if uint(actual.Len()) < minCount {
		w.fail(path, "at least "+elements(int(minCount)), describe(actual),
			fmt.Sprintf("expected at least %s but got %d", elements(int(minCount)), actual.Len()))
		return
	}

	n := min(actual.Len(), expected.Len())
	for i := 0; i < n; i++ {
		w.match(actual.Index(i), expected.Index(i), rules.Index(path, i), modeType)
	}
}

func describe(v jsonvalue.Value) string {
	return truncate(v.String(), maxShown)
}

func elements(n int) string {
	if n == 1 {
		return "1 element"
	}
	return fmt.Sprintf("%d elements", n)
}
