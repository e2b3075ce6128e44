package cli

import (
	"fmt"

	"github.com/VaticanUK/com-pact/pkg/cli/internal/output"
	"github.com/VaticanUK/com-pact/pkg/contract"
	"github.com/spf13/cobra"
)

// fileValidation is the JSON shape of one validated file.
type fileValidation struct {
	File         string `json:"file"`
	Valid        bool   `json:"valid"`
	Consumer     string `json:"consumer,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Interactions int    `json:"interactions,omitempty"`
	Error        string `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate contract files without running them",
	Long: `Validate contract files against the contract document schema, then
check that every matching rule path and regular expression is usable.
Arguments may be globs, including **.`,
	Example: `  compact validate pacts/web_app-orders_api.json
  compact validate 'pacts/**/*.json' --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := validateFiles(args)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		err = printResult(w, results, func() {
			t := output.Table(w)
			for _, r := range results {
				if r.Valid {
					fmt.Fprintf(t, "OK\t%s\t%s -> %s, %d interactions\n", r.File, r.Consumer, r.Provider, r.Interactions)
				} else {
					fmt.Fprintf(t, "INVALID\t%s\t%s\n", r.File, r.Error)
				}
			}
			_ = t.Flush()
		})
		if err != nil {
			return err
		}

		for _, r := range results {
			if !r.Valid {
				return ErrInvalidContracts
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFiles expands each argument and loads every file it names, so
// that every problem is reported rather than the first. A pattern matching
// nothing is reported as an invalid entry of its own.
func validateFiles(patterns []string) ([]fileValidation, error) {
	var results []fileValidation
	for _, pattern := range patterns {
		paths, err := contract.ExpandGlob(pattern)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			results = append(results, fileValidation{File: pattern, Error: "no such file"})
			continue
		}
		for _, p := range paths {
			c, err := contract.Load(p)
			if err != nil {
				results = append(results, fileValidation{File: p, Error: err.Error()})
				continue
			}
			results = append(results, fileValidation{
				File:         p,
				Valid:        true,
				Consumer:     c.Consumer.Name,
				Provider:     c.Provider.Name,
				Interactions: len(c.Interactions),
			})
		}
	}
	return results, nil
}
