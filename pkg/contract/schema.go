package contract

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/VaticanUK/com-pact/pkg/pacterr"
)

//go:embed schema/contract.schema.json
var contractSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("contract.schema.json", strings.NewReader(contractSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to add contract schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("contract.schema.json")
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a raw document against the embedded contract schema.
func validateSchema(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return pacterr.Wrap(err, "The pact contract is not valid JSON: "+err.Error())
	}

	schema, err := loadSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return pacterr.Wrap(err, "The pact contract does not match the contract schema: "+strings.Join(schemaMessages(verr), "; "))
		}
		return pacterr.Wrap(err, "The pact contract does not match the contract schema: "+err.Error())
	}
	return nil
}

// schemaMessages flattens the leaf causes of a validation error.
func schemaMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{location + ": " + err.Message}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, schemaMessages(cause)...)
	}
	return out
}
