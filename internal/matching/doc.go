// Package matching compares actual HTTP traffic against the expectations
// recorded in a contract.
//
// Bodies are walked depth first with the JSON path of every node tracked, so
// that the rule compiled for that path (exact, type, regex or type with a
// minimum count) decides how the node is compared. Without a rule:
//
//   - objects are superset tolerant: every expected member must be present,
//     extra actual members are ignored
//   - arrays must have the same length and order
//   - scalars must be equal, numbers compared by value
//
// Requests and responses add method, path, status, header and query checks
// on top of the body comparison. Every check runs; the outcome is a Result
// listing each mismatch with its field, path and a readable reason. Matching
// never returns an error and never panics on malformed input.
package matching
