package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/backmassage/batchmill/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		outputDir string
		failed    bool
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs and failed items",
		Long: `Reads the run index under <output_dir>/logs/history.db. Without flags it
lists recent runs; with --failed it lists the failed items of the most
recent run, one "<source>\t<error>" line each, suitable for driving a
manual retry pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := filepath.Join(outputDir, "logs", "history.db")
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("no run history under %s", outputDir)
			}
			store, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if failed {
				return printFailures(store)
			}
			return printRuns(store, limit)
		},
	}
	cmd.Flags().StringVar(&outputDir, "output_dir", "", "output directory of the runs to inspect")
	cmd.Flags().BoolVar(&failed, "failed", false, "list failed items of the most recent run")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list")
	cmd.MarkFlagRequired("output_dir")
	return cmd
}

func printFailures(store *history.Store) error {
	run, err := store.LatestRun()
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Println("No runs recorded.")
		return nil
	}
	entries, err := store.Failures(run.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("Run %s (%s): no failures.\n", run.ID, run.Pipeline)
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\n", e.Source, e.Detail)
	}
	return nil
}

func printRuns(store *history.Store, limit int) error {
	runs, err := store.Runs(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, r := range runs {
		finished := "running"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.UTC().Format(time.RFC3339)
		}
		fmt.Printf("%s  %-6s  total=%d ok=%d failed=%d  started=%s  finished=%s\n",
			r.ID, r.Pipeline, r.Total, r.Succeeded, r.Failed,
			r.StartedAt.UTC().Format(time.RFC3339), finished)
	}
	return nil
}
