package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/pipeline"
	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

// --- analyze command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text...>",
	Short: "Score the sentiment of a piece of text",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := sentiment.Analyze(strings.Join(args, " "))

		fmt.Printf("Score: %.2f (%s)\n", r.Score, r.Label)
		if r.Intensity != nil {
			fmt.Printf("Intensity: %.2f (%s)\n", *r.Intensity, sentiment.IntensityBand(*r.Intensity))
		}
		if r.Emotion != nil && r.Emotion.Total() > 0 {
			fmt.Println("Emotions:")
			for _, e := range sentiment.AllEmotions {
				if v := r.Emotion.Get(e); v > 0 {
					fmt.Printf("  %-8s %3d%%\n", e, sentiment.Percent(v))
				}
			}
		}
		fmt.Println()
		fmt.Println(sentiment.Narrative(sentiment.Summarize([]sentiment.Result{r})))
	},
}

// --- report command ---

var reportPeriod string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose and print the report of a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}

		periodID := reportPeriod
		if periodID == "" {
			periodID = database.GetToday()
		}
		report, err := pipe.Composer().ComposeReport(cmd.Context(), periodID)
		if err != nil {
			return err
		}
		fmt.Print(report.BodyMarkdown)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportPeriod, "period", "", "Period to report on (default today)")
}

// --- daily command ---

var dailyDate string

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the one-paragraph recap of a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dailyDate == "" {
			dailyDate = database.GetToday()
		}
		date, err := time.ParseInLocation("2006-01-02", dailyDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dailyDate, err)
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}
		recap, err := pipe.Composer().DailyRecap(dailyDate, date)
		if err != nil {
			return err
		}
		fmt.Println(recap)
		return nil
	},
}

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "Day to recap as YYYY-MM-DD (default today)")
}

// --- correlations command ---

var correlationsPeriod string

var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Show how mood, places and activity relate",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}

		periodID := correlationsPeriod
		if periodID == "" {
			periodID = database.GetToday()
		}
		insights, err := pipe.Composer().Insights(periodID)
		if err != nil {
			return err
		}
		for _, in := range insights {
			fmt.Printf("%s (%d%%)\n  %s\n", in.Title, sentiment.Percent(in.Score), in.Description)
		}
		return nil
	},
}

func init() {
	correlationsCmd.Flags().StringVar(&correlationsPeriod, "period", "", "Period to correlate (default today)")
}

// --- places command ---

var placesPeriod string

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List the places visited in a period, grouping repeated stops",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}

		periodID := placesPeriod
		if periodID == "" {
			periodID = database.GetToday()
		}
		spots, err := pipe.Composer().Places(periodID)
		if err != nil {
			return err
		}
		if len(spots) == 0 {
			fmt.Println("No located visits for", database.FormatPeriodDisplay(periodID))
			return nil
		}
		for _, p := range spots {
			fmt.Printf("%-30s %-9s %2d visit(s) %5d min  (%.4f, %.4f)\n",
				p.Name, p.Type, p.Visits, p.Minutes, p.Center.Lat, p.Center.Lng)
		}
		return nil
	},
}

func init() {
	placesCmd.Flags().StringVar(&placesPeriod, "period", "", "Period to list (default today)")
}
