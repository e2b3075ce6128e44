package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaticanUK/com-pact/pkg/contract"
	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

func body(s string) *jsonvalue.Value {
	v := jsonvalue.MustParse(s)
	return &v
}

func TestMatchMethod(t *testing.T) {
	assert.True(t, MatchMethod("GET", "get"))
	assert.False(t, MatchMethod("GET", "POST"))
}

func TestMatchRequest(t *testing.T) {
	expected := &contract.Request{
		Method:  contract.MethodPost,
		Path:    "/orders",
		Headers: contract.Headers{"Content-Type": "application/json"},
		Query:   contract.Query{"tag": {"a", "b"}},
		Body:    body(`{"sku": "A", "qty": 1}`),
		MatchingRules: &contract.MatchingRules{
			Body: rules.RuleSet{"$.qty": rules.Type()},
		},
	}

	tests := []struct {
		name       string
		actual     *contract.Request
		wantFields []string
	}{
		{
			name: "matching request",
			actual: &contract.Request{
				Method:  "post",
				Path:    "/orders",
				Headers: contract.Headers{"content-type": "application/json", "X-Extra": "1"},
				Query:   contract.Query{"tag": {"b", "a"}, "page": {"2"}},
				Body:    body(`{"sku": "A", "qty": 7, "note": "x"}`),
			},
		},
		{
			name: "everything wrong",
			actual: &contract.Request{
				Method: contract.MethodPut,
				Path:   "/orders/1",
				Query:  contract.Query{"tag": {"a"}},
				Body:   body(`{"sku": "B", "qty": 7}`),
			},
			wantFields: []string{FieldMethod, FieldPath, FieldHeader, FieldQuery, FieldBody},
		},
		{
			name: "missing body",
			actual: &contract.Request{
				Method:  contract.MethodPost,
				Path:    "/orders",
				Headers: contract.Headers{"Content-Type": "application/json"},
				Query:   contract.Query{"tag": {"a", "b"}},
			},
			wantFields: []string{FieldBody},
		},
		{
			name:       "nil actual",
			actual:     nil,
			wantFields: []string{"request"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchRequest(expected, tt.actual)
			assert.Equal(t, tt.wantFields, result.Fields(), result.String())
		})
	}
}

func TestMatchRequest_NoExpectedBodyAcceptsAnyBody(t *testing.T) {
	expected := &contract.Request{Method: contract.MethodGet, Path: "/"}
	actual := &contract.Request{Method: contract.MethodGet, Path: "/", Body: body(`{"any": true}`)}
	assert.True(t, MatchRequest(expected, actual).Matched())
}

func TestMatchResponse_DeclaredNullBody(t *testing.T) {
	null := jsonvalue.Null()
	tests := []struct {
		name   string
		actual *jsonvalue.Value
		want   bool
	}{
		{name: "no body", want: true},
		{name: "null body", actual: body(`null`), want: true},
		{name: "object body", actual: body(`{"id": 1}`)},
		{name: "empty string body", actual: body(`""`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := &contract.Response{Status: 200, Body: &null}
			actual := &contract.Response{Status: 200, Body: tt.actual}
			assert.Equal(t, tt.want, MatchResponse(expected, actual).Matched())
		})
	}
}

func TestMatchResponse(t *testing.T) {
	expected := &contract.Response{
		Status:  200,
		Headers: contract.Headers{"Content-Type": "application/json"},
		Body:    body(`{"id": 42}`),
		MatchingRules: &contract.MatchingRules{
			Body:   rules.RuleSet{"$.id": rules.Type()},
			Header: rules.RuleSet{"Content-Type": rules.Regex(`application/json(;.*)?`)},
		},
	}

	tests := []struct {
		name       string
		actual     *contract.Response
		wantFields []string
	}{
		{
			name: "type and superset tolerance",
			actual: &contract.Response{
				Status:  200,
				Headers: contract.Headers{"Content-Type": "application/json; charset=utf-8"},
				Body:    body(`{"id": 99, "extra": true}`),
			},
		},
		{
			name: "missing required member",
			actual: &contract.Response{
				Status:  200,
				Headers: contract.Headers{"Content-Type": "application/json"},
				Body:    body(`{"extra": true}`),
			},
			wantFields: []string{FieldBody},
		},
		{
			name: "status and header",
			actual: &contract.Response{
				Status:  500,
				Headers: contract.Headers{"Content-Type": "text/plain"},
				Body:    body(`{"id": 1}`),
			},
			wantFields: []string{FieldStatus, FieldHeader},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchResponse(expected, tt.actual)
			assert.Equal(t, tt.wantFields, result.Fields(), result.String())
		})
	}
}

func TestMatchHeaders(t *testing.T) {
	tests := []struct {
		name     string
		expected contract.Headers
		actual   contract.Headers
		rules    rules.RuleSet
		want     int
	}{
		{name: "case insensitive names", expected: contract.Headers{"ACCEPT": "a"}, actual: contract.Headers{"accept": "a"}},
		{name: "list whitespace ignored", expected: contract.Headers{"Accept": "a,b"}, actual: contract.Headers{"Accept": "a, b"}},
		{name: "missing", expected: contract.Headers{"Accept": "a"}, actual: contract.Headers{}, want: 1},
		{name: "different value", expected: contract.Headers{"Accept": "a"}, actual: contract.Headers{"Accept": "b"}, want: 1},
		{name: "type rule needs presence only", expected: contract.Headers{"X-Id": "1"}, actual: contract.Headers{"X-Id": "2"},
			rules: rules.RuleSet{"x-id": rules.Type()}},
		{name: "v2 style rule key", expected: contract.Headers{"X-Id": "1"}, actual: contract.Headers{"X-Id": "22"},
			rules: rules.RuleSet{"$.headers.X-Id": rules.Regex(`\d+`)}},
		{name: "regex rule mismatch", expected: contract.Headers{"X-Id": "1"}, actual: contract.Headers{"X-Id": "a1"},
			rules: rules.RuleSet{"X-Id": rules.Regex(`\d+`)}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, MatchHeaders(tt.expected, tt.actual, tt.rules), tt.want)
		})
	}
}

func TestHeaderRule_CaseFoldedKeys(t *testing.T) {
	rs := rules.RuleSet{
		"x-id":            rules.Type(),
		"X-ID":            rules.Regex(`\d+`),
		"$.headers.X-Req": rules.Exact(),
		"x-req":           rules.Type(),
	}

	tests := []struct {
		name string
		want rules.Rule
	}{
		{name: "x-id", want: rules.Type()},
		{name: "X-Id", want: rules.Regex(`\d+`)},
		{name: "X-REQ", want: rules.Exact()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got, ok := headerRule(rs, tt.name)
				require.True(t, ok)
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchQuery(t *testing.T) {
	mismatches := MatchQuery(
		contract.Query{"a": {"1"}, "b": {"2", "3"}, "c": {"x"}},
		contract.Query{"a": {"1"}, "b": {"3"}, "d": {"y"}},
	)
	require.Len(t, mismatches, 2)
	assert.Equal(t, "b", mismatches[0].Path)
	assert.Equal(t, "c", mismatches[1].Path)
	assert.Equal(t, missing, mismatches[1].Actual)
}

func TestMatchQuery_ValuelessParameter(t *testing.T) {
	assert.Empty(t, MatchQuery(contract.Query{"flag": {}}, contract.Query{"flag": {}}))

	mismatches := MatchQuery(contract.Query{"flag": {}}, contract.Query{"other": {"1"}})
	require.Len(t, mismatches, 1)
	assert.Equal(t, "missing query parameter flag", mismatches[0].Reason)
}
