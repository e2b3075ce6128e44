package jsonvalue

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds. The zero Value is null.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a named object member.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value.
type Value struct {
	kind    Kind
	b       bool
	s       string // string contents, or the literal text of a number
	items   []Value
	members []Member
	index   map[string]int
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a JSON number from its literal text.
func Number(n json.Number) Value { return Value{kind: KindNumber, s: string(n)} }

// Int returns a JSON number holding an integer.
func Int(i int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(i, 10)} }

// Float returns a JSON number holding a float. NaN and infinities are not
// representable in JSON and become null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Array returns a JSON array holding items in order.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns a JSON object holding members in order. A repeated key
// replaces the earlier value but keeps the earlier position.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members)), index: make(map[string]int, len(members))}
	for _, m := range members {
		v.set(m.Key, m.Value)
	}
	return v
}

func (v *Value) set(key string, val Value) {
	if i, ok := v.index[key]; ok {
		v.members[i].Value = val
		return
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// TypeName returns the JSON type name of v.
func (v Value) TypeName() string { return v.kind.String() }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v, or false for other kinds.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsString returns the string held by v, or "" for other kinds.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// AsNumber returns the literal text of the number held by v, or "" for
// other kinds.
func (v Value) AsNumber() json.Number {
	if v.kind != KindNumber {
		return ""
	}
	return json.Number(v.s)
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns the items of an array. The slice must not be modified.
func (v Value) Items() []Value { return v.items }

// Index returns the i-th array item, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Null()
	}
	return v.items[i]
}

// Members returns the members of an object in order. The slice must not be
// modified.
func (v Value) Members() []Member { return v.members }

// Get returns the member named key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	i, ok := v.index[key]
	if !ok {
		return Null(), false
	}
	return v.members[i].Value, true
}

// Keys returns object member names in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Interface converts v into the plain Go representation used by
// encoding/json with UseNumber: nil, bool, json.Number, string, []any and
// map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// String returns the compact JSON text of v.
func (v Value) String() string {
	return string(v.appendJSON(nil))
}
