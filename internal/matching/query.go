package matching

import (
	"slices"
	"sort"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/contract"
)

// MatchQuery checks that every expected query parameter is present in
// actual with the same set of values. Extra actual parameters are
// tolerated.
func MatchQuery(expected, actual contract.Query) []Mismatch {
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	var mismatches []Mismatch
	for _, name := range names {
		want := expected[name]
		got, ok := actual[name]
		if !ok {
			mismatches = append(mismatches, Mismatch{
				Field:    FieldQuery,
				Path:     name,
				Expected: strings.Join(want, ","),
				Actual:   missing,
				Reason:   "missing query parameter " + name,
			})
			continue
		}
		if !sameValues(want, got) {
			mismatches = append(mismatches, Mismatch{
				Field:    FieldQuery,
				Path:     name,
				Expected: strings.Join(want, ","),
				Actual:   strings.Join(got, ","),
				Reason:   "query parameter " + name + " has different values",
			})
		}
	}
	return mismatches
}

func sameValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	sort.Strings(x)
	sort.Strings(y)
	return slices.Equal(x, y)
}
