package element

import (
	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// GUIDPattern matches lowercase RFC 4122 GUIDs of versions 1 to 5.
const GUIDPattern = `^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`

// Element describes one expected JSON value. The set of implementations is
// closed: *SimpleValue, *RegexString, *Object and *Array.
type Element interface {
	emit(path string, rs rules.RuleSet) (jsonvalue.Value, error)
}

// SimpleValue is a value matched either by JSON type or exactly.
type SimpleValue struct {
	Example any
	Match   rules.MatchKind
}

// Like describes a value of the same JSON type as example.
func Like(example any) *SimpleValue {
	return &SimpleValue{Example: example, Match: rules.MatchType}
}

// Exact describes a value equal to example.
func Exact(example any) *SimpleValue {
	return &SimpleValue{Example: example, Match: rules.MatchExact}
}

func (s *SimpleValue) emit(path string, rs rules.RuleSet) (jsonvalue.Value, error) {
	v, err := jsonvalue.FromAny(s.Example)
	if err != nil {
		return jsonvalue.Value{}, pacterr.Wrap(err, "The example at "+path+" cannot be represented as JSON: "+err.Error())
	}
	if s.Match == rules.MatchExact {
		rs[path] = rules.Exact()
	} else {
		rs[path] = rules.Type()
	}
	return v, nil
}

// RegexString is a string matched by a regular expression.
type RegexString struct {
	Example string
	Pattern string
}

// Regex describes a string fully matching pattern. It fails when example
// itself does not fully match.
func Regex(example, pattern string) (*RegexString, error) {
	re, err := rules.CompilePattern(pattern)
	if err != nil {
		return nil, pacterr.Wrap(err, "The regular expression "+pattern+" is invalid: "+err.Error())
	}
	if !re.MatchString(example) {
		return nil, pacterr.Newf("The provided example %s does not match the regular expression %s.", example, pattern)
	}
	return &RegexString{Example: example, Pattern: pattern}, nil
}

// MustRegex is like Regex but panics on error.
func MustRegex(example, pattern string) *RegexString {
	r, err := Regex(example, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// GUID describes a string matching GUIDPattern.
func GUID(example string) (*RegexString, error) {
	return Regex(example, GUIDPattern)
}

// MustGUID is like GUID but panics on error.
func MustGUID(example string) *RegexString {
	return MustRegex(example, GUIDPattern)
}

func (r *RegexString) emit(path string, rs rules.RuleSet) (jsonvalue.Value, error) {
	rs[path] = rules.Regex(r.Pattern)
	return jsonvalue.String(r.Example), nil
}

// Member is a named child of an Object.
type Member struct {
	Name    string
	Element Element
}

// Field pairs a member name with an element.
func Field(name string, el Element) Member {
	return Member{Name: name, Element: el}
}

// Object is an ordered set of uniquely named members. Objects contribute no
// rule of their own; only their members do.
type Object struct {
	Members []Member
}

// NewObject builds an Object and rejects duplicate member names.
func NewObject(members ...Member) (*Object, error) {
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.Name]; dup {
			return nil, pacterr.Newf("An object cannot contain the member %s more than once.", m.Name)
		}
		if m.Element == nil {
			return nil, pacterr.Newf("The member %s has no element.", m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return &Object{Members: members}, nil
}

// ObjectWith is like NewObject but panics on error.
func ObjectWith(members ...Member) *Object {
	o, err := NewObject(members...)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Object) emit(path string, rs rules.RuleSet) (jsonvalue.Value, error) {
	members := make([]jsonvalue.Member, 0, len(o.Members))
	for _, m := range o.Members {
		v, err := m.Element.emit(rules.Member(path, m.Name), rs)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		members = append(members, jsonvalue.Member{Key: m.Name, Value: v})
	}
	return jsonvalue.Object(members...), nil
}

// Array is an ordered sequence of elements.
type Array struct {
	Elements []Element
	Match    rules.MatchKind
	Min      uint
}

// ArrayOf describes an array matched element by element: same length, same
// order, each element matched against its counterpart.
func ArrayOf(elements ...Element) *Array {
	return &Array{Elements: elements, Match: rules.MatchExact}
}

// AtLeast returns a copy of a that accepts any array with at least n
// elements, where the elements at the declared indices match the template.
func (a *Array) AtLeast(n uint) *Array {
	cp := *a
	cp.Match = rules.MatchType
	cp.Min = n
	return &cp
}

func (a *Array) emit(path string, rs rules.RuleSet) (jsonvalue.Value, error) {
	if a.Match == rules.MatchType {
		rs[path] = rules.MinType(a.Min)
	}

	items := make([]jsonvalue.Value, 0, len(a.Elements))
	for i, el := range a.Elements {
		if el == nil {
			return jsonvalue.Value{}, pacterr.Newf("The array element at %s is nil.", rules.Index(path, i))
		}
		v, err := el.emit(rules.Index(path, i), rs)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		items = append(items, v)
	}
	return jsonvalue.Array(items...), nil
}
