// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/warn-extract/internal/store"
	"github.com/pdiddy/warn-extract/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived extraction runs or summarize one",
	Long: `Runs lists the extraction runs saved with --archive, newest first.
With --summary, it prints the aggregate view of one run: record count,
total employees affected, distinct companies, and the notice-date span.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().String("db", "", "archive database path (default warn-extract.db)")
	runsCmd.Flags().Int64("summary", 0, "summarize the run with this ID instead of listing")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(types.StoreConfig{DBPath: dbPathFromFlags(cmd)})
	if err != nil {
		return err
	}
	defer s.Close()

	if runID, _ := cmd.Flags().GetInt64("summary"); runID > 0 {
		summary, err := s.Summary(cmd.Context(), runID)
		if err != nil {
			return err
		}
		printSummary(summary)
		return nil
	}

	infos, err := s.Runs(cmd.Context())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no archived runs")
		return nil
	}

	fmt.Printf("%-5s %-12s %8s  %s\n", "ID", "EXTRACTED", "RECORDS", "SOURCE")
	for _, info := range infos {
		fmt.Printf("%-5d %-12s %8d  %s\n",
			info.ID, info.ExtractedAt.Format("2006-01-02"), info.RowCount, info.Source)
	}
	return nil
}

func printSummary(s types.RunSummary) {
	fmt.Printf("run %d\n", s.RunID)
	fmt.Printf("  records:          %d\n", s.Records)
	fmt.Printf("  total employees:  %.0f\n", s.TotalEmployees)
	fmt.Printf("  companies:        %d\n", s.Companies)
	if s.EarliestNotice != nil && s.LatestNotice != nil {
		fmt.Printf("  notice dates:     %s to %s\n",
			s.EarliestNotice.Format("2006-01-02"), s.LatestNotice.Format("2006-01-02"))
	} else {
		fmt.Printf("  notice dates:     none parsed\n")
	}
}
