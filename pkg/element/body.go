package element

import (
	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// Body is the expected body of a request or response. The zero Body is
// empty: no body is written and none is required.
type Body struct {
	root Element
	err  error
}

// With makes root the whole body.
func With(root Element) Body {
	return Body{root: root}
}

// WithMembers makes a JSON object body. Duplicate member names are reported
// by Compile.
func WithMembers(members ...Member) Body {
	o, err := NewObject(members...)
	if err != nil {
		return Body{err: err}
	}
	return Body{root: o}
}

// Empty is a body without content.
func Empty() Body {
	return Body{}
}

// IsEmpty reports whether the body has no content.
func (b Body) IsEmpty() bool {
	return b.root == nil && b.err == nil
}

// Compile returns the example document and rules of the body, or nils when
// it is empty.
func (b Body) Compile() (*jsonvalue.Value, rules.RuleSet, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	if b.root == nil {
		return nil, nil, nil
	}
	v, rs, err := Compile(b.root)
	if err != nil {
		return nil, nil, err
	}
	return &v, rs, nil
}
