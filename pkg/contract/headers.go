package contract

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Headers maps header names to values. Names are compared
// case-insensitively.
type Headers map[string]string

// Get returns the value of the header name, ignoring case.
func (h Headers) Get(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Names returns the header names in sorted order.
func (h Headers) Names() []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Query maps query parameter names to their values.
type Query map[string][]string

// Encode returns the query in URL-encoded form, sorted by key.
func (q Query) Encode() string {
	return url.Values(q).Encode()
}

// UnmarshalJSON accepts the V3 object form ({"a": ["1"]} or {"a": "1"}) and
// the V2 query-string form ("a=1&b=2").
func (q *Query) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case nil:
		*q = nil
	case string:
		values, err := url.ParseQuery(t)
		if err != nil {
			return fmt.Errorf("invalid query string %q: %w", t, err)
		}
		*q = Query(values)
	case map[string]any:
		out := make(Query, len(t))
		for key, val := range t {
			switch v := val.(type) {
			case string:
				out[key] = []string{v}
			case []any:
				for _, item := range v {
					s, ok := item.(string)
					if !ok {
						return fmt.Errorf("query parameter %s has a non-string value", key)
					}
					out[key] = append(out[key], s)
				}
			default:
				return fmt.Errorf("query parameter %s has a non-string value", key)
			}
		}
		*q = out
	default:
		return fmt.Errorf("query must be an object or a string")
	}
	return nil
}
