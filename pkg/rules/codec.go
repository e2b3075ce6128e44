package rules

import (
	"encoding/json"
	"fmt"
)

// ruleEntry is the persisted form of one path's rules. Pact V3 files wrap
// rules in a matchers list; V2 files store the rule fields directly.
type ruleEntry struct {
	Matchers []Rule `json:"matchers,omitempty"`
	Combine  string `json:"combine,omitempty"`

	Match MatchKind `json:"match,omitempty"`
	Regex string    `json:"regex,omitempty"`
	Min   *uint     `json:"min,omitempty"`
}

// MarshalJSON writes the V3 layout.
func (rs RuleSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]ruleEntry, len(rs))
	for path, r := range rs {
		out[path] = ruleEntry{Matchers: []Rule{r}}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads both the V3 and the flat V2 layouts. When a V3 entry
// lists several matchers only the first is kept.
func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	var raw map[string]ruleEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(RuleSet, len(raw))
	for path, entry := range raw {
		switch {
		case len(entry.Matchers) > 0:
			out[path] = entry.Matchers[0]
		case entry.Match != "":
			out[path] = Rule{Match: entry.Match, Regex: entry.Regex, Min: entry.Min}
		default:
			return fmt.Errorf("matching rule at %s has no matchers", path)
		}
	}
	*rs = out
	return nil
}
