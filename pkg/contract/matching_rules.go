package contract

import (
	"encoding/json"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/rules"
)

// MatchingRules holds the rule tables of one request or response. Body rules
// are keyed by JSON path from "$"; header rules are keyed by header name.
type MatchingRules struct {
	Body   rules.RuleSet `json:"body,omitempty"`
	Header rules.RuleSet `json:"header,omitempty"`
}

// BodyRules returns the body rules, or nil.
func (m *MatchingRules) BodyRules() rules.RuleSet {
	if m == nil {
		return nil
	}
	return m.Body
}

// HeaderRules returns the header rules, or nil.
func (m *MatchingRules) HeaderRules() rules.RuleSet {
	if m == nil {
		return nil
	}
	return m.Header
}

// IsEmpty reports whether no rules are declared.
func (m *MatchingRules) IsEmpty() bool {
	return m == nil || (len(m.Body) == 0 && len(m.Header) == 0)
}

// Validate checks body rule paths and every rule's definition.
func (m *MatchingRules) Validate() error {
	if m == nil {
		return nil
	}
	if err := m.Body.Validate(); err != nil {
		return err
	}
	for _, name := range m.Header.Paths() {
		if err := m.Header[name].Validate(); err != nil {
			return err
		}
	}
	return nil
}

const (
	v2BodyPrefix   = "$.body"
	v2HeaderPrefix = "$.headers."
)

// UnmarshalJSON reads the V3 categorised layout and the flat V2 layout where
// every key is a path such as "$.body.id" or "$.headers.Accept". Path and
// query rules are not supported and are dropped.
func (m *MatchingRules) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	isV2 := false
	for key := range probe {
		if strings.HasPrefix(key, "$") {
			isV2 = true
			break
		}
	}

	if !isV2 {
		type plain MatchingRules
		var out plain
		if err := json.Unmarshal(data, &out); err != nil {
			return err
		}
		*m = MatchingRules(out)
		return nil
	}

	var flat rules.RuleSet
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	out := MatchingRules{}
	for path, rule := range flat {
		switch {
		case path == v2BodyPrefix || strings.HasPrefix(path, v2BodyPrefix+".") || strings.HasPrefix(path, v2BodyPrefix+"["):
			if out.Body == nil {
				out.Body = rules.RuleSet{}
			}
			out.Body[rules.Root+strings.TrimPrefix(path, v2BodyPrefix)] = rule
		case strings.HasPrefix(path, v2HeaderPrefix):
			if out.Header == nil {
				out.Header = rules.RuleSet{}
			}
			out.Header[strings.TrimPrefix(path, v2HeaderPrefix)] = rule
		}
	}
	*m = out
	return nil
}
