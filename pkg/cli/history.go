package cli

import (
	"errors"
	"fmt"

	"github.com/VaticanUK/com-pact/pkg/cli/internal/output"
	"github.com/VaticanUK/com-pact/pkg/history"
	"github.com/spf13/cobra"
)

var (
	historyConsumer string
	historyProvider string
	historyLimit    int
	historyKeep     int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded verification runs",
	Long: `Inspect the verification runs recorded with 'compact verify --history'.
The store lives at historyPath (default ~/.local/share/compact/history.db).`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(history.Filter{
			Consumer: historyConsumer,
			Provider: historyProvider,
			Limit:    historyLimit,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, runs, func() {
			if len(runs) == 0 {
				fmt.Fprintln(w, "No verification runs recorded")
				return
			}
			t := output.Table(w)
			fmt.Fprintln(t, "RUN\tSTARTED\tCONSUMER\tPROVIDER\tRESULT\tINTERACTIONS")
			for _, r := range runs {
				fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%d\n",
					r.RunID, output.Timestamp(r.StartedAt), r.Consumer, r.Provider,
					output.Mark(r.Success), len(r.Interactions))
			}
			_ = t.Flush()
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the interactions of one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(args[0])
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no recorded run with id %s", args[0])
		}
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, run, func() {
			fmt.Fprintf(w, "Run %s at %s\n", run.RunID, output.Timestamp(run.StartedAt))
			writeResult(w, run)
		})
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Prune(historyKeep)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, map[string]int{"removed": removed}, func() {
			fmt.Fprintf(w, "Removed %d runs\n", removed)
		})
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historyConsumer, "consumer", "", "Only runs for this consumer")
	historyListCmd.Flags().StringVar(&historyProvider, "provider", "", "Only runs for this provider")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs (0 for all)")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 50, "Number of newest runs to keep")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
