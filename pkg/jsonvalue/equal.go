package jsonvalue

import "math/big"

// numberPrecision is the mantissa size used to compare numbers by value.
const numberPrecision = 256

// Equal reports whether a and b are deeply equal under the package
// equality semantics.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return numbersEqual(a.s, b.s)
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	x, ok := new(big.Float).SetPrec(numberPrecision).SetString(a)
	if !ok {
		return false
	}
	y, ok := new(big.Float).SetPrec(numberPrecision).SetString(b)
	if !ok {
		return false
	}
	return x.Cmp(y) == 0
}
