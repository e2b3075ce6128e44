package rules

import (
	"strconv"

	"github.com/ohler55/ojg/jp"
)

// Member returns the path of member name below path. Names that are not
// plain identifiers are written in bracket notation, so "first-name" below
// the root is $['first-name'] and "a.b" stays distinct from $.a.b.
func Member(path, name string) string {
	if isIdentifier(name) {
		return path + "." + name
	}
	buf := append([]byte(path), '[')
	buf = jp.AppendString(buf, name, '\'')
	return string(append(buf, ']'))
}

// Index returns the path of array index i below path.
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// Canonical rewrites path into the form Member and Index produce, so
// $['id'] and $.id name the same key. Wildcards are written as [*]. A path
// that does not parse, or that uses filters or descent, is returned as is.
func Canonical(path string) string {
	expr, err := jp.ParseString(path)
	if err != nil {
		return path
	}
	out, ok := Format(Fragments(expr))
	if !ok {
		return path
	}
	return out
}

// Fragments drops the notation markers jp inserts for bracketed paths so
// that parsed forms of $['a'] and $.a compare equal.
func Fragments(expr jp.Expr) jp.Expr {
	out := make(jp.Expr, 0, len(expr))
	for _, frag := range expr {
		if _, ok := frag.(jp.Bracket); ok {
			continue
		}
		out = append(out, frag)
	}
	return out
}

// Format renders root, child, index and wildcard fragments in canonical
// form. It reports false for any other fragment.
func Format(expr jp.Expr) (string, bool) {
	path := ""
	for _, frag := range expr {
		switch f := frag.(type) {
		case jp.Root:
			path += Root
		case jp.Child:
			if path == "" {
				return "", false
			}
			path = Member(path, string(f))
		case jp.Nth:
			if path == "" {
				return "", false
			}
			path = Index(path, int(f))
		case jp.Wildcard:
			if path == "" {
				return "", false
			}
			path += "[*]"
		default:
			return "", false
		}
	}
	return path, path != ""
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
