// Package verification holds the outcome of verifying a provider against a
// contract: one entry per interaction, in contract order, plus the overall
// verdict. The same document is published to the Pact Broker, stored in the
// local history and printed by the CLI.
package verification

import (
	"fmt"
	"time"

	"github.com/VaticanUK/com-pact/internal/matching"
)

// Implementation identifies this tool in published results.
const Implementation = "com-pact"

// Result is the outcome of one verification run.
type Result struct {
	RunID                      string              `json:"runId"`
	Consumer                   string              `json:"consumer,omitempty"`
	Provider                   string              `json:"provider,omitempty"`
	Source                     string              `json:"source,omitempty"`
	Success                    bool                `json:"success"`
	ProviderApplicationVersion string              `json:"providerApplicationVersion,omitempty"`
	VerifiedBy                 VerifiedBy          `json:"verifiedBy"`
	Interactions               []InteractionResult `json:"testResults"`
	StartedAt                  time.Time           `json:"startedAt"`
	FinishedAt                 time.Time           `json:"finishedAt"`
}

// VerifiedBy names the verifying tool.
type VerifiedBy struct {
	Implementation string `json:"implementation"`
	Version        string `json:"version,omitempty"`
}

// InteractionResult is the outcome of one interaction.
type InteractionResult struct {
	Description   string              `json:"description"`
	ProviderState string              `json:"providerState,omitempty"`
	Success       bool                `json:"success"`
	FailureDetail string              `json:"failureDetail,omitempty"`
	Mismatches    []matching.Mismatch `json:"mismatches,omitempty"`
}

// Add appends an interaction outcome and folds it into the overall verdict.
// A result with no interactions is successful.
func (r *Result) Add(ir InteractionResult) {
	if len(r.Interactions) == 0 {
		r.Success = true
	}
	r.Interactions = append(r.Interactions, ir)
	r.Success = r.Success && ir.Success
}

// Failed returns the interactions that did not verify.
func (r *Result) Failed() []InteractionResult {
	var failed []InteractionResult
	for _, ir := range r.Interactions {
		if !ir.Success {
			failed = append(failed, ir)
		}
	}
	return failed
}

// Duration is the wall time of the run.
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary describes the run in one line.
func (r *Result) Summary() string {
	verdict := "passed"
	if !r.Success {
		verdict = "failed"
	}
	return fmt.Sprintf("verification %s: %d interactions, %d failed", verdict, len(r.Interactions), len(r.Failed()))
}
