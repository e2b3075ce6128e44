// Package jsonvalue provides a generic JSON value for request and response
// bodies.
//
// A Value is a tagged union over null, boolean, number, string, array and
// object. Objects keep their members in insertion order so that bodies
// compiled from element trees serialize deterministically, while equality
// ignores member order.
//
// Equality semantics (used by the matcher when no rule governs a node):
//
//   - values of different kinds are never equal
//   - numbers compare by numeric value, so 1, 1.0 and 1e0 are equal
//   - strings compare byte for byte
//   - arrays must have the same length and pairwise equal elements in order
//   - objects must have the same key set and pairwise equal member values
package jsonvalue
