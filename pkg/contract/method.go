package contract

import (
	"encoding/json"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

// Method is an HTTP method allowed in contracts.
type Method string

// Allowed methods.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodPatch   Method = "PATCH"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

var allowedMethods = map[Method]struct{}{
	MethodGet: {}, MethodPost: {}, MethodPut: {}, MethodDelete: {}, MethodHead: {},
	MethodOptions: {}, MethodPatch: {}, MethodTrace: {}, MethodConnect: {},
}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := allowedMethods[m]; !ok {
		return "", pacterr.Newf("Received method %s is not allowed in Pact contracts.", s)
	}
	return m, nil
}

// UnmarshalJSON accepts any casing of an allowed method.
func (m *Method) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
