// Package element describes expected JSON values for contract bodies.
//
// An element tree is built from four variants:
//
//   - SimpleValue: any scalar (or plain Go value), matched by type (Like) or
//     by exact value (Exact)
//   - RegexString: a string example plus a pattern it must fully match
//   - Object: ordered, uniquely named members
//   - Array: ordered children, matched element by element, or by shape with a
//     minimum count once AtLeast is applied
//
// Compile walks a tree once, depth first, and produces the canonical example
// document together with the path-addressed rules the matcher uses:
//
//	body := element.ObjectWith(
//	    element.Named("id").Like(42),
//	    element.Named("ref").MustGUID("3f2c1a2e-1b2c-4d3e-8f4a-5b6c7d8e9f00"),
//	    element.Named("tags").Is(element.ArrayOf(element.Like("red")).AtLeast(1)),
//	)
//	example, rs, err := element.Compile(body)
package element
