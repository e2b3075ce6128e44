package contract

import (
	"encoding/json"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

// SpecificationVersion is the Pact specification version written to metadata.
const SpecificationVersion = "3.0.0"

// Contract is a consumer/provider contract.
type Contract struct {
	Consumer     Pacticipant   `json:"consumer"`
	Provider     Pacticipant   `json:"provider"`
	Interactions []Interaction `json:"interactions"`
	Metadata     Metadata      `json:"metadata"`
}

// Pacticipant names one side of a contract.
type Pacticipant struct {
	Name string `json:"name"`
}

// Metadata describes the contract document itself.
type Metadata struct {
	PactSpecification PactSpecification `json:"pactSpecification"`
}

// PactSpecification holds the specification version of the document.
type PactSpecification struct {
	Version string `json:"version"`
}

// Interaction is one request/response pair.
type Interaction struct {
	Description   string `json:"description"`
	ProviderState string `json:"providerState,omitempty"`

	// ProviderStates is the V3 list form of provider states.
	ProviderStates []ProviderState `json:"providerStates,omitempty"`

	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// ProviderState is a named provider state with optional parameters.
type ProviderState struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// States returns every provider state declared by the interaction, in
// declaration order.
func (i *Interaction) States() []string {
	var states []string
	if i.ProviderState != "" {
		states = append(states, i.ProviderState)
	}
	for _, s := range i.ProviderStates {
		if s.Name != "" {
			states = append(states, s.Name)
		}
	}
	return states
}

// Parse decodes and validates a contract document.
func Parse(data []byte) (*Contract, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, pacterr.Wrap(err, "The pact contract cannot be read: "+err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Marshal encodes the contract as indented JSON.
func (c *Contract) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Validate checks the invariants the JSON schema cannot express.
func (c *Contract) Validate() error {
	if strings.TrimSpace(c.Consumer.Name) == "" {
		return pacterr.New("The pact contract must name its consumer.")
	}
	if strings.TrimSpace(c.Provider.Name) == "" {
		return pacterr.New("The pact contract must name its provider.")
	}

	for i := range c.Interactions {
		in := &c.Interactions[i]
		if strings.TrimSpace(in.Description) == "" {
			return pacterr.Newf("Interaction %d has no description.", i)
		}
		if in.Request.Path == "" {
			return pacterr.Newf("Interaction %q has a request without a path.", in.Description)
		}
		if in.Response.Status < 100 || in.Response.Status > 599 {
			return pacterr.Newf("Interaction %q has an invalid response status %d.", in.Description, in.Response.Status)
		}
		if err := in.Request.MatchingRules.Validate(); err != nil {
			return pacterr.Wrap(err, "Interaction "+quote(in.Description)+" request: "+err.Error())
		}
		if err := in.Response.MatchingRules.Validate(); err != nil {
			return pacterr.Wrap(err, "Interaction "+quote(in.Description)+" response: "+err.Error())
		}
	}
	return nil
}

// FileName returns the conventional file name for the contract.
func (c *Contract) FileName() string {
	return fileSafe(c.Consumer.Name) + "-" + fileSafe(c.Provider.Name) + ".json"
}

func fileSafe(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
