package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

// maxBodySize bounds how much of an inbound or provider body is read.
const maxBodySize = 10 * 1024 * 1024

// Request is the request a consumer sends.
type Request struct {
	Method        Method           `json:"method"`
	Path          string           `json:"path"`
	Headers       Headers          `json:"headers,omitempty"`
	Query         Query            `json:"query,omitempty"`
	Body          *jsonvalue.Value `json:"body,omitempty"`
	MatchingRules *MatchingRules   `json:"matchingRules,omitempty"`
}

// UnmarshalJSON keeps a declared "body": null as a JSON null body, so it is
// told apart from a request with no body field at all.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	body, err := declaredBody(data, out.Body)
	if err != nil {
		return err
	}
	out.Body = body
	*r = Request(out)
	return nil
}

// RequestFromHTTP adapts an inbound HTTP request. The method must be one of
// the allowed methods, the path must be present, and a non-empty body must
// be JSON.
func RequestFromHTTP(r *http.Request) (*Request, error) {
	if r == nil {
		return nil, pacterr.New("Received request must not be nil.")
	}

	method, err := ParseMethod(r.Method)
	if err != nil {
		return nil, err
	}
	if r.URL == nil || r.URL.Path == "" {
		return nil, pacterr.New("Received path must have a value.")
	}

	req := &Request{
		Method: method,
		Path:   r.URL.Path,
	}

	if len(r.Header) > 0 {
		req.Headers = make(Headers, len(r.Header))
		for name, values := range r.Header {
			req.Headers[name] = strings.Join(values, ", ")
		}
	}

	if values := r.URL.Query(); len(values) > 0 {
		req.Query = Query(values)
	}

	if r.Body != nil {
		body, err := readJSONBody(r.Body)
		if err != nil {
			return nil, pacterr.Wrap(err, "Received body cannot be read: "+err.Error())
		}
		req.Body = body
	}

	return req, nil
}

// NewHTTPRequest builds the HTTP request that replays r against baseURL.
func (r *Request) NewHTTPRequest(ctx context.Context, baseURL string) (*http.Request, error) {
	target := strings.TrimRight(baseURL, "/") + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := r.Body.MarshalJSON()
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.Method), target, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", r.Method, r.Path, err)
	}
	for name, value := range r.Headers {
		req.Header.Set(name, value)
	}
	if r.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// readJSONBody reads a body and parses it as JSON. An empty body yields nil.
func readJSONBody(rc io.Reader) (*jsonvalue.Value, error) {
	data, err := readAll(rc)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// declaredBody returns body, or a JSON null when data carries "body": null.
func declaredBody(data []byte, body *jsonvalue.Value) (*jsonvalue.Value, error) {
	if body != nil {
		return body, nil
	}
	var fields struct {
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields.Body == nil {
		return nil, nil
	}
	null := jsonvalue.Null()
	return &null, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(data), nil
}
