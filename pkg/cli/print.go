package cli

import (
	"io"

	"github.com/VaticanUK/com-pact/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to w. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func()) error {
	if jsonOutput {
		return output.JSON(w, data)
	}
	textFn()
	return nil
}
