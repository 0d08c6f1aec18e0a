package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history <level>",
	Short: "Show recent runs for a level",
	Long: `Display recent runs for a level, newest first, and its best grade.

Examples:
  collector history c01
  collector history c01 --limit 5
  collector history c01 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs for the level")
}

func runHistory(_ *cobra.Command, args []string) {
	levelID := args[0]

	a, err := loadApp(os.Stderr)
	exitOnError(err)

	// Unknown levels are still queryable: files may have been removed since
	if _, err := a.loader.LoadByID(levelID); err != nil {
		a.logger.Debug("level not loadable", "level", levelID, "error", err)
	}

	store := a.openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		exitOnError(store.ClearRuns(levelID))
		fmt.Printf("Cleared runs for %s.\n", levelID)
		return
	}

	runs, err := store.RecentRuns(levelID, flagHistoryLimit)
	exitOnError(err)

	if len(runs) == 0 {
		fmt.Printf("No runs recorded for %s yet.\n", levelID)
		fmt.Printf("Run 'collector run %s' to record one!\n", levelID)
		return
	}

	fmt.Printf("Recent runs for %s:\n\n", levelID)
	fmt.Printf("  %-16s  %-10s  %-22s  %-10s  %6s  %s\n", "Date", "Program", "Outcome", "Grade", "Blocks", "Player")
	fmt.Printf("  %-16s  %-10s  %-22s  %-10s  %6s  %s\n", "----", "-------", "-------", "-----", "------", "------")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-22s  %-10s  %6d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Program,
			r.Outcome,
			r.Grade,
			r.BlocksUsed,
			r.Player,
		)
	}

	best, err := store.BestRun(levelID)
	exitOnError(err)
	if best != nil {
		fmt.Printf("\nBest: %s with %d blocks (%s)\n", best.Grade, best.BlocksUsed, best.Program)
	}
}
