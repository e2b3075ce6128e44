package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
)

// Parse decodes a single JSON document. Numbers keep their literal text and
// object members keep document order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decode(dec)
	if err != nil {
		return Value{}, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("parse json: unexpected data after top-level value")
	}
	return v, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and package-level fixtures.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

func decode(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decode(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(items...), nil
		case '{':
			obj := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decode(dec)
				if err != nil {
					return Value{}, err
				}
				obj.set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return obj, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// FromAny converts a Go value into a Value. Scalars are converted directly;
// anything else goes through encoding/json.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return floatValue(t)
	case float32:
		return floatValue(float64(t))
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(json.Number(strconv.FormatUint(rv.Uint(), 10))), nil
	}

	data, err := json.Marshal(x)
	if err != nil {
		return Value{}, fmt.Errorf("convert %T to json: %w", x, err)
	}
	return Parse(data)
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("convert %v to json: unsupported number", f)
	}
	return Float(f), nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindBool:
		return strconv.AppendBool(buf, v.b)
	case KindNumber:
		return append(buf, v.s...)
	case KindString:
		return appendString(buf, v.s)
	case KindArray:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = item.appendJSON(buf)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range v.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendString(buf, m.Key)
			buf = append(buf, ':')
			buf = m.Value.appendJSON(buf)
		}
		return append(buf, '}')
	default:
		return append(buf, "null"...)
	}
}

func appendString(buf []byte, s string) []byte {
	// json.Marshal on a string cannot fail.
	quoted, _ := json.Marshal(s)
	return append(buf, quoted...)
}
