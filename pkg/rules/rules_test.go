package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

func TestPaths(t *testing.T) {
	assert.Equal(t, "$.user", Member(Root, "user"))
	assert.Equal(t, "$.items[2]", Index(Member(Root, "items"), 2))
	assert.Equal(t, "$[0].id", Member(Index(Root, 0), "id"))
}

func TestMember_NonIdentifierKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "identifier", key: "user_id", want: "$.user_id"},
		{name: "hyphen", key: "first-name", want: "$['first-name']"},
		{name: "space", key: "first name", want: "$['first name']"},
		{name: "dot", key: "a.b", want: "$['a.b']"},
		{name: "at sign", key: "@type", want: "$['@type']"},
		{name: "dollar", key: "$ref", want: "$['$ref']"},
		{name: "leading digit", key: "1st", want: "$['1st']"},
		{name: "quote", key: "it's", want: `$['it\'s']`},
		{name: "backslash", key: `a\b`, want: `$['a\\b']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Member(Root, tt.key)
			assert.Equal(t, tt.want, got)
			require.NoError(t, ValidatePath(got))
			assert.Equal(t, got, Canonical(got))
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "$", want: "$"},
		{path: "$.id", want: "$.id"},
		{path: "$['id']", want: "$.id"},
		{path: `$["first-name"]`, want: "$['first-name']"},
		{path: "$.items[*].id", want: "$.items[*].id"},
		{path: "$.meta.*", want: "$.meta[*]"},
		{path: "$['a.b'][0]", want: "$['a.b'][0]"},
		{path: "$..id", want: "$..id"},
		{path: "$[", want: "$["},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.path))
		})
	}
}

func TestMinType(t *testing.T) {
	r := MinType(2)
	assert.Equal(t, MatchType, r.Match)
	assert.True(t, r.HasMin())
	assert.Equal(t, uint(2), r.MinCount())

	assert.False(t, Type().HasMin())
	assert.Equal(t, uint(0), Type().MinCount())
}

func TestFullMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{pattern: `\d+`, input: "123", want: true},
		{pattern: `\d+`, input: "a123", want: false},
		{pattern: `^\d+$`, input: "123", want: true},
		{pattern: `a|b`, input: "b", want: true},
		{pattern: `a|b`, input: "ab", want: false},
		{pattern: `[invalid`, input: "x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FullMatch(tt.pattern, tt.input))
		})
	}
}

func TestRuleSet_JSONRoundTrip(t *testing.T) {
	rs := RuleSet{
		"$.id":    Type(),
		"$.email": Regex(`.+@.+`),
		"$.items": MinType(1),
	}

	data, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$.id": {"matchers": [{"match": "type"}]},
		"$.email": {"matchers": [{"match": "regex", "regex": ".+@.+"}]},
		"$.items": {"matchers": [{"match": "type", "min": 1}]}
	}`, string(data))

	var back RuleSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rs, back)
}

func TestRuleSet_UnmarshalV2Layout(t *testing.T) {
	var rs RuleSet
	err := json.Unmarshal([]byte(`{"$.body.id": {"match": "type"}, "$.body.tags": {"match": "type", "min": 0}}`), &rs)
	require.NoError(t, err)

	assert.Equal(t, Type(), rs["$.body.id"])
	assert.Equal(t, MinType(0), rs["$.body.tags"])
}

func TestRuleSet_UnmarshalRejectsEmptyEntry(t *testing.T) {
	var rs RuleSet
	err := json.Unmarshal([]byte(`{"$.id": {}}`), &rs)
	assert.Error(t, err)
}

func TestRuleSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rs      RuleSet
		wantErr string
	}{
		{name: "valid", rs: RuleSet{"$": Type(), "$.a[0].b": Regex(`x`)}},
		{name: "missing root", rs: RuleSet{"a.b": Type()}, wantErr: `must start with $`},
		{name: "bad jsonpath", rs: RuleSet{"$.a[": Type()}, wantErr: "not a valid JSONPath"},
		{name: "unknown kind", rs: RuleSet{"$.a": {Match: "fuzzy"}}, wantErr: `unknown match kind "fuzzy"`},
		{name: "empty regex", rs: RuleSet{"$.a": {Match: MatchRegex}}, wantErr: "regex rule has no pattern"},
		{name: "broken regex", rs: RuleSet{"$.a": Regex(`(`)}, wantErr: "does not compile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rs.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pacterr.Is(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
