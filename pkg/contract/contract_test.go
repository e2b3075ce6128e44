package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaticanUK/com-pact/pkg/pacterr"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

const v3Contract = `{
  "consumer": {"name": "web"},
  "provider": {"name": "orders"},
  "interactions": [
    {
      "description": "a request for order 1",
      "providerState": "order 1 exists",
      "request": {
        "method": "get",
        "path": "/orders/1",
        "query": {"expand": ["items"]},
        "headers": {"Accept": "application/json"}
      },
      "response": {
        "status": 200,
        "headers": {"Content-Type": "application/json"},
        "body": {"id": 1, "items": [{"sku": "A"}]},
        "matchingRules": {
          "body": {
            "$.id": {"matchers": [{"match": "type"}]},
            "$.items": {"matchers": [{"match": "type", "min": 1}]}
          },
          "header": {
            "Content-Type": {"matchers": [{"match": "regex", "regex": "application/json.*"}]}
          }
        }
      }
    }
  ],
  "metadata": {"pactSpecification": {"version": "3.0.0"}}
}`

const v2Contract = `{
  "consumer": {"name": "web"},
  "provider": {"name": "orders"},
  "interactions": [
    {
      "description": "a search",
      "request": {"method": "GET", "path": "/orders", "query": "status=open&status=paid"},
      "response": {
        "status": 200,
        "body": {"orders": [{"id": 1}]},
        "matchingRules": {
          "$.body.orders": {"min": 1, "match": "type"},
          "$.body.orders[*].id": {"match": "type"},
          "$.headers.Content-Type": {"match": "regex", "regex": "application/json"}
        }
      }
    }
  ],
  "metadata": {"pactSpecification": {"version": "2.0.0"}}
}`

func TestParse_V3(t *testing.T) {
	c, err := Parse([]byte(v3Contract))
	require.NoError(t, err)

	assert.Equal(t, "web", c.Consumer.Name)
	assert.Equal(t, "orders", c.Provider.Name)
	require.Len(t, c.Interactions, 1)

	in := c.Interactions[0]
	assert.Equal(t, []string{"order 1 exists"}, in.States())
	assert.Equal(t, MethodGet, in.Request.Method)
	assert.Equal(t, Query{"expand": {"items"}}, in.Request.Query)

	body := in.Response.MatchingRules.BodyRules()
	assert.Equal(t, rules.Type(), body["$.id"])
	assert.Equal(t, uint(1), body["$.items"].MinCount())
	assert.Equal(t, rules.Regex("application/json.*"), in.Response.MatchingRules.HeaderRules()["Content-Type"])

	require.NotNil(t, in.Response.Body)
	assert.JSONEq(t, `{"id": 1, "items": [{"sku": "A"}]}`, in.Response.Body.String())
}

func TestParse_V2(t *testing.T) {
	c, err := Parse([]byte(v2Contract))
	require.NoError(t, err)

	in := c.Interactions[0]
	assert.Equal(t, Query{"status": {"open", "paid"}}, in.Request.Query)

	mr := in.Response.MatchingRules
	require.NotNil(t, mr)
	assert.Equal(t, rules.MinType(1), mr.Body["$.orders"])
	assert.Equal(t, rules.Type(), mr.Body["$.orders[*].id"])
	assert.Equal(t, rules.Regex("application/json"), mr.Header["Content-Type"])
}

func TestResponse_UnmarshalBodyPresence(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantNil  bool
		wantBody string
	}{
		{name: "absent", doc: `{"status": 204}`, wantNil: true},
		{name: "declared null", doc: `{"status": 200, "body": null}`, wantBody: `null`},
		{name: "object", doc: `{"status": 200, "body": {"id": 1}}`, wantBody: `{"id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp Response
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &resp))
			if tt.wantNil {
				assert.Nil(t, resp.Body)
				return
			}
			require.NotNil(t, resp.Body)
			assert.Equal(t, tt.wantBody, resp.Body.String())

			out, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.doc, string(out))
		})
	}
}

func TestRequest_UnmarshalDeclaredNullBody(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"method": "POST", "path": "/a", "body": null, "query": "x=1"}`), &req))
	require.NotNil(t, req.Body)
	assert.True(t, req.Body.IsNull())
	assert.Equal(t, MethodPost, req.Method)
	assert.Equal(t, Query{"x": {"1"}}, req.Query)

	req = Request{}
	require.NoError(t, json.Unmarshal([]byte(`{"method": "GET", "path": "/a"}`), &req))
	assert.Nil(t, req.Body)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not json",
			doc:     `{"consumer":`,
			wantErr: "The pact contract is not valid JSON",
		},
		{
			name:    "missing provider",
			doc:     `{"consumer": {"name": "web"}, "interactions": []}`,
			wantErr: "The pact contract does not match the contract schema",
		},
		{
			name: "status out of range",
			doc: `{"consumer": {"name": "web"}, "provider": {"name": "orders"}, "interactions": [
				{"description": "x", "request": {"method": "GET", "path": "/"}, "response": {"status": 700}}]}`,
			wantErr: "The pact contract does not match the contract schema",
		},
		{
			name: "unsupported method",
			doc: `{"consumer": {"name": "web"}, "provider": {"name": "orders"}, "interactions": [
				{"description": "x", "request": {"method": "BREW", "path": "/"}, "response": {"status": 200}}]}`,
			wantErr: "Received method BREW is not allowed in Pact contracts.",
		},
		{
			name: "invalid rule path",
			doc: `{"consumer": {"name": "web"}, "provider": {"name": "orders"}, "interactions": [
				{"description": "x", "request": {"method": "GET", "path": "/"}, "response": {"status": 200,
				"matchingRules": {"body": {"id": {"matchers": [{"match": "type"}]}}}}}]}`,
			wantErr: `must start with $.`,
		},
		{
			name: "invalid regex rule",
			doc: `{"consumer": {"name": "web"}, "provider": {"name": "orders"}, "interactions": [
				{"description": "x", "request": {"method": "GET", "path": "/"}, "response": {"status": 200,
				"matchingRules": {"body": {"$.id": {"matchers": [{"match": "regex", "regex": "("}]}}}}}]}`,
			wantErr: "Matching rule at $.id is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, pacterr.Is(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestContract_MarshalRoundTrip(t *testing.T) {
	c, err := Parse([]byte(v3Contract))
	require.NoError(t, err)

	data, err := c.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c.Interactions[0].Response.MatchingRules, again.Interactions[0].Response.MatchingRules)
	assert.Equal(t, c.Interactions[0].Response.Body.String(), again.Interactions[0].Response.Body.String())
}

func TestContract_FileName(t *testing.T) {
	c := &Contract{Consumer: Pacticipant{Name: "Web App"}, Provider: Pacticipant{Name: "Orders/API"}}
	assert.Equal(t, "web_app-orders_api.json", c.FileName())
}

func TestInteraction_States(t *testing.T) {
	in := Interaction{
		ProviderState:  "legacy",
		ProviderStates: []ProviderState{{Name: "a"}, {Name: ""}, {Name: "b"}},
	}
	assert.Equal(t, []string{"legacy", "a", "b"}, in.States())
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("patch")
	require.NoError(t, err)
	assert.Equal(t, MethodPatch, m)

	_, err = ParseMethod("FETCH")
	require.Error(t, err)
	assert.Equal(t, "Received method FETCH is not allowed in Pact contracts.", err.Error())
}

func TestHeaders_Get(t *testing.T) {
	h := Headers{"Content-Type": "application/json"}

	v, ok := h.Get("content-type")
	assert.True(t, ok)
	assert.Equal(t, "application/json", v)

	_, ok = h.Get("Accept")
	assert.False(t, ok)
}
