package contract

import (
	"github.com/VaticanUK/com-pact/pkg/element"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// Builder assembles a contract on the consumer side.
//
//	c, err := contract.NewBuilder("web", "orders").
//	    Interaction(contract.UponReceiving("a request for order 1").
//	        Given("order 1 exists").
//	        With(contract.NewRequestBuilder("GET", "/orders/1")).
//	        WillRespondWith(contract.NewResponseBuilder(200).
//	            WithBody(element.ObjectWith(element.Named("id").Like(1))))).
//	    Build()
type Builder struct {
	consumer     string
	provider     string
	interactions []*InteractionBuilder
}

// NewBuilder starts a contract between consumer and provider.
func NewBuilder(consumer, provider string) *Builder {
	return &Builder{consumer: consumer, provider: provider}
}

// Interaction appends an interaction.
func (b *Builder) Interaction(i *InteractionBuilder) *Builder {
	b.interactions = append(b.interactions, i)
	return b
}

// Build compiles every interaction and validates the result.
func (b *Builder) Build() (*Contract, error) {
	c := &Contract{
		Consumer:     Pacticipant{Name: b.consumer},
		Provider:     Pacticipant{Name: b.provider},
		Interactions: make([]Interaction, 0, len(b.interactions)),
		Metadata:     Metadata{PactSpecification: PactSpecification{Version: SpecificationVersion}},
	}

	type key struct{ description, state string }
	seen := make(map[key]struct{}, len(b.interactions))
	for _, ib := range b.interactions {
		in, err := ib.Build()
		if err != nil {
			return nil, err
		}
		k := key{in.Description, in.ProviderState}
		if _, dup := seen[k]; dup {
			return nil, pacterr.Newf("An interaction with description %q and provider state %q is already defined.", in.Description, in.ProviderState)
		}
		seen[k] = struct{}{}
		c.Interactions = append(c.Interactions, in)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// InteractionBuilder assembles one interaction.
type InteractionBuilder struct {
	description string
	state       string
	request     *RequestBuilder
	response    *ResponseBuilder
}

// UponReceiving starts an interaction with its description.
func UponReceiving(description string) *InteractionBuilder {
	return &InteractionBuilder{description: description}
}

// Given sets the provider state the interaction relies on.
func (i *InteractionBuilder) Given(state string) *InteractionBuilder {
	i.state = state
	return i
}

// With sets the expected request.
func (i *InteractionBuilder) With(req *RequestBuilder) *InteractionBuilder {
	i.request = req
	return i
}

// WillRespondWith sets the expected response.
func (i *InteractionBuilder) WillRespondWith(resp *ResponseBuilder) *InteractionBuilder {
	i.response = resp
	return i
}

// Build compiles the interaction.
func (i *InteractionBuilder) Build() (Interaction, error) {
	if i.request == nil {
		return Interaction{}, pacterr.Newf("The interaction %q has no request.", i.description)
	}
	if i.response == nil {
		return Interaction{}, pacterr.Newf("The interaction %q has no response.", i.description)
	}

	req, err := i.request.Build()
	if err != nil {
		return Interaction{}, err
	}
	resp, err := i.response.Build()
	if err != nil {
		return Interaction{}, err
	}
	return Interaction{
		Description:   i.description,
		ProviderState: i.state,
		Request:       *req,
		Response:      *resp,
	}, nil
}

// RequestBuilder assembles an expected request.
type RequestBuilder struct {
	method  string
	path    string
	headers Headers
	query   Query
	body    element.Body
}

// NewRequestBuilder starts a request with its method and path.
func NewRequestBuilder(method, path string) *RequestBuilder {
	return &RequestBuilder{method: method, path: path}
}

// WithHeader adds a header.
func (r *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	if r.headers == nil {
		r.headers = Headers{}
	}
	r.headers[name] = value
	return r
}

// WithQuery adds a query parameter.
func (r *RequestBuilder) WithQuery(name string, values ...string) *RequestBuilder {
	if r.query == nil {
		r.query = Query{}
	}
	r.query[name] = append(r.query[name], values...)
	return r
}

// WithBody sets the request body.
func (r *RequestBuilder) WithBody(body element.Element) *RequestBuilder {
	r.body = element.With(body)
	return r
}

// WithContent sets the request body from a prepared Body.
func (r *RequestBuilder) WithContent(body element.Body) *RequestBuilder {
	r.body = body
	return r
}

// Build compiles the request.
func (r *RequestBuilder) Build() (*Request, error) {
	method, err := ParseMethod(r.method)
	if err != nil {
		return nil, err
	}
	if r.path == "" {
		return nil, pacterr.New("Received path must have a value.")
	}

	body, bodyRules, err := r.body.Compile()
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:        method,
		Path:          r.path,
		Headers:       r.headers,
		Query:         r.query,
		Body:          body,
		MatchingRules: newMatchingRules(bodyRules, nil),
	}, nil
}

// ResponseBuilder assembles an expected response.
type ResponseBuilder struct {
	status      int
	headers     Headers
	headerRules rules.RuleSet
	body        element.Body
	err         error
}

// NewResponseBuilder starts a response with its status code.
func NewResponseBuilder(status int) *ResponseBuilder {
	return &ResponseBuilder{status: status}
}

// WithHeader adds a header that must be returned with exactly this value.
func (r *ResponseBuilder) WithHeader(name, value string) *ResponseBuilder {
	if r.headers == nil {
		r.headers = Headers{}
	}
	r.headers[name] = value
	return r
}

// WithHeaderRegex adds a header whose value must fully match pattern.
func (r *ResponseBuilder) WithHeaderRegex(name, example, pattern string) *ResponseBuilder {
	if _, err := element.Regex(example, pattern); err != nil {
		if r.err == nil {
			r.err = err
		}
		return r
	}
	r.WithHeader(name, example)
	if r.headerRules == nil {
		r.headerRules = rules.RuleSet{}
	}
	r.headerRules[name] = rules.Regex(pattern)
	return r
}

// WithBody sets the response body.
func (r *ResponseBuilder) WithBody(body element.Element) *ResponseBuilder {
	r.body = element.With(body)
	return r
}

// WithContent sets the response body from a prepared Body.
func (r *ResponseBuilder) WithContent(body element.Body) *ResponseBuilder {
	r.body = body
	return r
}

// Build compiles the response.
func (r *ResponseBuilder) Build() (*Response, error) {
	if r.err != nil {
		return nil, r.err
	}
	body, bodyRules, err := r.body.Compile()
	if err != nil {
		return nil, err
	}
	return &Response{
		Status:        r.status,
		Headers:       r.headers,
		Body:          body,
		MatchingRules: newMatchingRules(bodyRules, r.headerRules),
	}, nil
}

func newMatchingRules(body, header rules.RuleSet) *MatchingRules {
	m := &MatchingRules{Body: body, Header: header}
	if m.IsEmpty() {
		return nil
	}
	return m
}
