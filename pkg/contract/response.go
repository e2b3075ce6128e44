package contract

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

// Response is the response a consumer expects, or the one a provider
// actually returned.
type Response struct {
	Status        int              `json:"status"`
	Headers       Headers          `json:"headers,omitempty"`
	Body          *jsonvalue.Value `json:"body,omitempty"`
	MatchingRules *MatchingRules   `json:"matchingRules,omitempty"`
}

// UnmarshalJSON keeps a declared "body": null as a JSON null body.
func (r *Response) UnmarshalJSON(data []byte) error {
	type plain Response
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	body, err := declaredBody(data, out.Body)
	if err != nil {
		return err
	}
	out.Body = body
	*r = Response(out)
	return nil
}

// ResponseFromHTTP reads an HTTP response into a Response. The body is
// parsed as JSON when it is not empty; a non-JSON body is reported as a
// string value so that it can still be compared.
func ResponseFromHTTP(resp *http.Response) (*Response, error) {
	if resp == nil {
		return nil, pacterr.New("Received response must not be nil.")
	}

	out := &Response{Status: resp.StatusCode}
	if len(resp.Header) > 0 {
		out.Headers = make(Headers, len(resp.Header))
		for name, values := range resp.Header {
			out.Headers[name] = strings.Join(values, ", ")
		}
	}

	if resp.Body == nil {
		return out, nil
	}
	data, err := readAll(resp.Body)
	if err != nil {
		return nil, pacterr.Wrap(err, "Provider response body cannot be read: "+err.Error())
	}
	if len(data) == 0 {
		return out, nil
	}
	v, err := jsonvalue.Parse(data)
	if err != nil {
		v = jsonvalue.String(string(data))
	}
	out.Body = &v
	return out, nil
}
