package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
	"github.com/TobiSchelling/lifelens/internal/pipeline"
)

// --- import command ---

var importPeriod string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import posts, location visits and activity days from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := lifedata.LoadDataset(args[0])
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		periodID := importPeriod
		if periodID == "" {
			periodID = database.GetToday()
		}
		if _, _, err := database.PeriodBounds(periodID); err != nil {
			return err
		}

		res, err := db.ImportDataset(periodID, *ds)
		if err != nil {
			return err
		}

		fmt.Printf("Imported into %s:\n", database.FormatPeriodDisplay(periodID))
		fmt.Printf("  New posts: %d\n", res.Posts)
		fmt.Printf("  Duplicates skipped: %d\n", res.Duplicates)
		fmt.Printf("  Location visits: %d\n", res.Locations)
		fmt.Printf("  Activity days: %d\n", res.Activities)

		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}
		if _, err := pipe.Composer().ComposeReport(cmd.Context(), periodID); err != nil {
			return fmt.Errorf("composing report: %w", err)
		}
		fmt.Printf("\nReport updated. Run 'lifelens report --period %s' to read it.\n", periodID)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importPeriod, "period", "", "Period to import into (YYYY-MM-DD or YYYY-MM-DD..YYYY-MM-DD, default today)")
}

// --- schema command ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the import format",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := lifedata.DatasetSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}
