package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockrun/internal/runner"
	"github.com/vovakirdan/blockrun/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Print the best finished runs",
	Long: `Display the fastest finished runs, ties broken by fewer deaths.

With --seed only runs on that course are shown.

Examples:
  blockrun runs
  blockrun runs --limit 25
  blockrun runs --seed 42`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.Run
	if flagSeed != 0 {
		runs, err = store.BestRunsForSeed(flagSeed, flagRunsLimit)
	} else {
		runs, err = store.BestRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if flagSeed != 0 {
		fmt.Printf("Best Runs - seed %d\n", flagSeed)
	} else {
		fmt.Println("Best Runs")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockrun play' and reach the finish to set the first time!")
		return
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-20s  %-12s  %s\n", "Rank", "Time", "Deaths", "Seed", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %-20s  %-12s  %s\n", "----", "----", "------", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-6d  %-20d  %-12s  %s\n",
			i+1, runner.FormatDuration(r.Duration), r.Deaths, r.Seed, r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Courses: %d  Average: %s  Deaths: %d\n",
			stats.Runs, stats.Courses, runner.FormatDuration(stats.Average), stats.TotalDeaths)
	}
}
