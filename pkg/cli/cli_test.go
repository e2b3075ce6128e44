package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testscript run compact in a subprocess of the test binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"compact": Execute,
	}))
}

func TestScripts(t *testing.T) {
	provider := httptest.NewServer(newFakeProvider())
	t.Cleanup(provider.Close)

	broker := newFakeBroker(t)
	t.Cleanup(broker.Close)

	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("PROVIDER_URL", provider.URL)
			env.Setenv("BROKER_URL", broker.URL)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("XDG_DATA_HOME", filepath.Join(env.WorkDir, ".data"))
			return nil
		},
	})
}

// newFakeProvider serves the orders API the script contracts describe.
// Order 2 only exists once its provider state has been set up.
func newFakeProvider() http.Handler {
	var (
		mu     sync.Mutex
		states = map[string]bool{}
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /_pact/state", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			States []string `json:"states"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		for _, s := range body.States {
			states[s] = true
		}
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /orders/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"id":1,"status":"shipped","items":[{"sku":"A-1","qty":2}],"total":19.5}`)
	})
	mux.HandleFunc("GET /orders/2", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ok := states["order 2 exists"]
		mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":2,"status":"pending","items":[]}`)
	})
	return mux
}

// newFakeBroker serves one contract and accepts published results.
func newFakeBroker(t *testing.T) *httptest.Server {
	t.Helper()

	contract, err := os.ReadFile(filepath.Join("testdata", "broker_contract.json"))
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	srv := httptest.NewUnstartedServer(mux)
	mux.HandleFunc("GET /pacts/provider/orders_api/consumer/web_app/latest", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal(contract, &doc); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		doc["_links"] = map[string]any{
			"pb:publish-verification-results": map[string]string{
				"href": srv.URL + "/results",
			},
		}
		w.Header().Set("Content-Type", "application/hal+json")
		_ = json.NewEncoder(w).Encode(doc)
	})
	mux.HandleFunc("POST /results", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	srv.Start()
	return srv
}
