package element

import (
	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// Compile walks root depth first and returns its canonical example document
// and the rules keyed by path from "$".
func Compile(root Element) (jsonvalue.Value, rules.RuleSet, error) {
	if root == nil {
		return jsonvalue.Value{}, nil, pacterr.New("Cannot compile an empty element.")
	}
	rs := rules.RuleSet{}
	v, err := root.emit(rules.Root, rs)
	if err != nil {
		return jsonvalue.Value{}, nil, err
	}
	return v, rs, nil
}

// ToJSON returns only the canonical example document of root.
func ToJSON(root Element) (jsonvalue.Value, error) {
	v, _, err := Compile(root)
	return v, err
}

// ToRules returns only the rules of root.
func ToRules(root Element) (rules.RuleSet, error) {
	_, rs, err := Compile(root)
	return rs, err
}
