package verifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaticanUK/com-pact/pkg/contract"
)

func TestHTTPProvider_Invoke(t *testing.T) {
	var gotMethod, gotQuery, gotTenant string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotTenant = r.Header.Get("X-Tenant")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(srv.Close)

	p := &HTTPProvider{BaseURL: srv.URL, Client: srv.Client()}
	resp, err := p.Invoke(context.Background(), "", &contract.Request{
		Method:  contract.MethodDelete,
		Path:    "/orders/1",
		Headers: contract.Headers{"X-Tenant": "acme"},
		Query:   contract.Query{"force": {"true"}},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "force=true", gotQuery)
	assert.Equal(t, "acme", gotTenant)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	require.NotNil(t, resp.Body)
	assert.JSONEq(t, `{"ok": true}`, resp.Body.String())
}

func TestHTTPProvider_SetupState(t *testing.T) {
	var got stateSetupRequest
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(int(status.Load()))
	}))
	t.Cleanup(srv.Close)

	p := &HTTPProvider{StateSetupURL: srv.URL, Client: srv.Client()}
	require.NoError(t, p.SetupState(context.Background(), "web", []string{"a", "b"}))
	assert.Equal(t, stateSetupRequest{Consumer: "web", State: "a", States: []string{"a", "b"}}, got)

	status.Store(http.StatusInternalServerError)
	err := p.SetupState(context.Background(), "web", []string{"a"})
	require.Error(t, err)
	assert.Equal(t, "state setup returned status 500", err.Error())
}

func TestHTTPProvider_SetupStateWithoutURL(t *testing.T) {
	p := &HTTPProvider{}
	assert.NoError(t, p.SetupState(context.Background(), "web", []string{"a"}))
}
