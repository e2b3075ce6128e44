package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/VaticanUK/com-pact/pkg/contract"
)

// HTTPProvider invokes a provider over HTTP.
type HTTPProvider struct {
	// BaseURL is prepended to every interaction path.
	BaseURL string

	// StateSetupURL, when set, receives a POST describing the provider
	// states before each interaction that declares any.
	StateSetupURL string

	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// stateSetupRequest is the body posted to StateSetupURL.
type stateSetupRequest struct {
	Consumer string   `json:"consumer"`
	State    string   `json:"state"`
	States   []string `json:"states"`
}

func (p *HTTPProvider) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

// Invoke replays req against BaseURL and reads the response.
func (p *HTTPProvider) Invoke(ctx context.Context, _ string, req *contract.Request) (*contract.Response, error) {
	httpReq, err := req.NewHTTPRequest(ctx, p.BaseURL)
	if err != nil {
		return nil, err
	}

	resp, err := p.client().Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return contract.ResponseFromHTTP(resp)
}

// SetupState posts the states to StateSetupURL. Without a URL it does
// nothing.
func (p *HTTPProvider) SetupState(ctx context.Context, consumer string, states []string) error {
	if p.StateSetupURL == "" || len(states) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(stateSetupRequest{
		Consumer: consumer,
		State:    states[0],
		States:   states,
	}); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.StateSetupURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("state setup returned status %d", resp.StatusCode)
	}
	return nil
}
