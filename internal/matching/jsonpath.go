package matching

import (
	"github.com/ohler55/ojg/jp"

	"github.com/VaticanUK/com-pact/pkg/rules"
)

// ruleIndex resolves the rule that governs a concrete node path. Every rule
// key is indexed in canonical form, so $['id'] and $.id are the same key. A
// rule keyed by the exact path wins; otherwise rules with wildcard paths
// such as "$.items[*].id" are tried in sorted path order.
type ruleIndex struct {
	exact    map[string]rules.Rule
	wildcard []wildcardRule
}

type wildcardRule struct {
	rule rules.Rule
	expr jp.Expr
}

func newRuleIndex(rs rules.RuleSet) *ruleIndex {
	idx := &ruleIndex{exact: make(map[string]rules.Rule, len(rs))}
	for _, path := range rs.Paths() {
		expr, err := jp.ParseString(path)
		if err != nil {
			continue
		}
		expr = rules.Fragments(expr)
		if hasWildcard(expr) {
			idx.wildcard = append(idx.wildcard, wildcardRule{rule: rs[path], expr: expr})
			continue
		}
		key, ok := rules.Format(expr)
		if !ok {
			continue
		}
		if _, dup := idx.exact[key]; !dup {
			idx.exact[key] = rs[path]
		}
	}
	return idx
}

// lookup expects path in the form rules.Member and rules.Index build.
func (idx *ruleIndex) lookup(path string) (rules.Rule, bool) {
	if r, ok := idx.exact[path]; ok {
		return r, true
	}
	if len(idx.wildcard) == 0 {
		return rules.Rule{}, false
	}

	concrete, err := jp.ParseString(path)
	if err != nil {
		return rules.Rule{}, false
	}
	concrete = rules.Fragments(concrete)
	for _, w := range idx.wildcard {
		if fragmentsMatch(w.expr, concrete) {
			return w.rule, true
		}
	}
	return rules.Rule{}, false
}

func hasWildcard(expr jp.Expr) bool {
	for _, frag := range expr {
		if _, ok := frag.(jp.Wildcard); ok {
			return true
		}
	}
	return false
}

// fragmentsMatch reports whether a concrete path made of child and index
// fragments is selected by pattern.
func fragmentsMatch(pattern, concrete jp.Expr) bool {
	if len(pattern) != len(concrete) {
		return false
	}
	for i, frag := range pattern {
		switch p := frag.(type) {
		case jp.Root:
			if _, ok := concrete[i].(jp.Root); !ok {
				return false
			}
		case jp.Wildcard:
			switch concrete[i].(type) {
			case jp.Child, jp.Nth:
			default:
				return false
			}
		case jp.Child:
			c, ok := concrete[i].(jp.Child)
			if !ok || c != p {
				return false
			}
		case jp.Nth:
			c, ok := concrete[i].(jp.Nth)
			if !ok || c != p {
				return false
			}
		default:
			return false
		}
	}
	return true
}
