package matching

import (
	"strconv"
	"strings"

	"github.com/VaticanUK/com-pact/pkg/contract"
	"github.com/VaticanUK/com-pact/pkg/jsonvalue"
	"github.com/VaticanUK/com-pact/pkg/rules"
)

// MatchMethod checks if the request method matches.
func MatchMethod(expected, actual string) bool {
	return strings.EqualFold(expected, actual)
}

// MatchRequest compares an actual request with the expected one: method,
// path, headers, query and body. Every field is compared, so the result
// lists all mismatches rather than the first.
func MatchRequest(expected, actual *contract.Request) Result {
	if expected == nil || actual == nil {
		return nilResult(expected == nil, "request")
	}

	var result Result
	if !MatchMethod(string(expected.Method), string(actual.Method)) {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:    FieldMethod,
			Expected: string(expected.Method),
			Actual:   string(actual.Method),
			Reason:   "expected method " + string(expected.Method) + " but got " + string(actual.Method),
		})
	}
	if expected.Path != actual.Path {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:    FieldPath,
			Expected: expected.Path,
			Actual:   actual.Path,
			Reason:   "expected path " + strconv.Quote(expected.Path) + " but got " + strconv.Quote(actual.Path),
		})
	}

	result.Mismatches = append(result.Mismatches, MatchHeaders(expected.Headers, actual.Headers, expected.MatchingRules.HeaderRules())...)
	result.Mismatches = append(result.Mismatches, MatchQuery(expected.Query, actual.Query)...)
	result.Merge(matchOptionalBody(expected.Body, actual.Body, expected.MatchingRules.BodyRules()))
	return result
}

// MatchResponse compares an actual response with the expected one: status,
// headers and body.
func MatchResponse(expected, actual *contract.Response) Result {
	if expected == nil || actual == nil {
		return nilResult(expected == nil, "response")
	}

	var result Result
	if expected.Status != actual.Status {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:    FieldStatus,
			Expected: strconv.Itoa(expected.Status),
			Actual:   strconv.Itoa(actual.Status),
			Reason:   "expected status " + strconv.Itoa(expected.Status) + " but got " + strconv.Itoa(actual.Status),
		})
	}

	result.Mismatches = append(result.Mismatches, MatchHeaders(expected.Headers, actual.Headers, expected.MatchingRules.HeaderRules())...)
	result.Merge(matchOptionalBody(expected.Body, actual.Body, expected.MatchingRules.BodyRules()))
	return result
}

// matchOptionalBody accepts any actual body when none is expected. An
// expected JSON null is met by a null body or by no body at all.
func matchOptionalBody(expected, actual *jsonvalue.Value, rs rules.RuleSet) Result {
	if expected == nil {
		return Result{}
	}
	if actual == nil {
		if expected.IsNull() {
			return Result{}
		}
		return Result{Mismatches: []Mismatch{{
			Field:    FieldBody,
			Path:     rules.Root,
			Expected: describe(*expected),
			Actual:   missing,
			Reason:   "expected a body but got none",
		}}}
	}
	return MatchBody(*actual, *expected, rs)
}

func nilResult(expectedNil bool, what string) Result {
	reason := "no actual " + what + " to compare"
	if expectedNil {
		reason = "no expected " + what + " to compare against"
	}
	return Result{Mismatches: []Mismatch{{Field: what, Reason: reason}}}
}
