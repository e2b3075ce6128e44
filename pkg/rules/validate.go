package rules

import (
	"github.com/ohler55/ojg/jp"

	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

// Validate checks that every path is a JSONPath expression rooted at $, that
// every rule has a known match kind, and that regex patterns compile.
func (rs RuleSet) Validate() error {
	for _, path := range rs.Paths() {
		if err := ValidatePath(path); err != nil {
			return err
		}
		if err := rs[path].Validate(); err != nil {
			return pacterr.Newf("Matching rule at %s is invalid: %s", path, err.Error())
		}
	}
	return nil
}

// ValidatePath checks that path is a JSONPath expression rooted at $.
func ValidatePath(path string) error {
	if path == "" || path[0] != '$' {
		return pacterr.Newf("Matching rule path %q must start with $.", path)
	}
	if _, err := jp.ParseString(path); err != nil {
		return pacterr.Wrap(err, "Matching rule path "+path+" is not a valid JSONPath: "+err.Error())
	}
	return nil
}

// Validate checks a single rule.
func (r Rule) Validate() error {
	switch r.Match {
	case MatchExact, MatchType:
		return nil
	case MatchRegex:
		if r.Regex == "" {
			return pacterr.New("regex rule has no pattern")
		}
		if _, err := CompilePattern(r.Regex); err != nil {
			return pacterr.Wrap(err, "regex "+r.Regex+" does not compile: "+err.Error())
		}
		return nil
	default:
		return pacterr.Newf("unknown match kind %q", r.Match)
	}
}
