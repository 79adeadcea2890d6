package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/lifelens/internal/collect"
	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/pipeline"
)

// --- collect command ---

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect posts from configured feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		periodID := database.GetToday()
		fmt.Println("Collecting posts from feeds...")

		collector := collect.NewCollector(cfg, db, 1, logger)
		result, err := collector.Collect(cmd.Context(), periodID)
		if err != nil {
			return err
		}

		fmt.Println("\nCollection complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  New posts: %d\n", result.NewPosts)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)

		if len(result.Sources) > 0 {
			fmt.Println("\nPosts by source:")
			type kv struct {
				key string
				val int
			}
			var sorted []kv
			for k, v := range result.Sources {
				sorted = append(sorted, kv{k, v})
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
			for _, s := range sorted {
				fmt.Printf("  %s: %d\n", s.key, s.val)
			}
		}
		return nil
	},
}

// --- run command ---

var (
	dryRun   bool
	daysBack int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect -> fetch -> compose",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		today := database.GetToday()
		periodID, effectiveDaysBack, err := resolvePeriod(db, today, daysBack)
		if err != nil {
			return err
		}

		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun(periodID)
		} else {
			result = pipe.Run(cmd.Context(), periodID, effectiveDaysBack)
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/3: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if result.Failed() {
			return errors.New("pipeline finished with errors")
		}
		if !dryRun {
			fmt.Println("\nPipeline complete! Run 'lifelens serve' to view the report.")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
	runCmd.Flags().IntVar(&daysBack, "days-back", 0, "Override lookback window (days)")
}

// resolvePeriod determines the period ID and effective days back based on
// explicit --days-back, catch-up detection, or daily run.
func resolvePeriod(db *database.DB, today string, explicitDaysBack int) (periodID string, effectiveDaysBack int, err error) {
	if explicitDaysBack > 0 {
		if explicitDaysBack == 1 {
			periodID = today
		} else {
			todayDate, _ := time.Parse("2006-01-02", today)
			start := todayDate.AddDate(0, 0, -(explicitDaysBack - 1)).Format("2006-01-02")
			periodID = database.MakePeriodID(start, today)
		}
		fmt.Printf("Collecting %d day(s) of posts (%s).\n", explicitDaysBack, periodID)
		return periodID, explicitDaysBack, nil
	}

	lastRun, _ := db.GetLastRunDate()
	if lastRun == "" {
		fmt.Println("First run detected, collecting today's posts.")
		return today, 1, nil
	}

	lastDate, _ := time.Parse("2006-01-02", lastRun)
	todayDate, _ := time.Parse("2006-01-02", today)
	missedDays := int(todayDate.Sub(lastDate).Hours() / 24)

	if missedDays <= 1 {
		fmt.Printf("Daily run for %s.\n", today)
		return today, 1, nil
	}

	startDate := lastDate.AddDate(0, 0, 1).Format("2006-01-02")
	periodID = database.MakePeriodID(startDate, today)

	if missedDays > 5 {
		fmt.Printf("Last report was %d days ago (%s).\n", missedDays, lastRun)
		fmt.Printf("Catch up %d days (%s) in one report? [y/N]: ", missedDays, periodID)

		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			return "", 0, errors.New("aborted")
		}
	} else {
		fmt.Printf("Catching up %d days (%s).\n", missedDays, periodID)
	}

	return periodID, missedDays, nil
}
