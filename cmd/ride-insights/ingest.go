package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"ride-insights/internal/ingest"
)

var ingestFlags struct {
	sheet    string
	cleanCSV string
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [source]",
	Short: "Clean a bookings workbook or CSV and load it into the store",
	Long: `Reads the source (.xlsx sheet or .csv), cleans every row, derives the
customer, daily and vehicle summaries and replaces the stored dataset.
Without an argument INGEST_SOURCE is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFlags.sheet, "sheet", "", "Workbook sheet (defaults to INGEST_SHEET)")
	ingestCmd.Flags().StringVar(&ingestFlags.cleanCSV, "clean-csv", "", "Also write cleaned rides to this CSV (defaults to INGEST_CLEAN_CSV)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := current.cfg
	source := cfg.Ingest.Source
	if len(args) == 1 {
		source = args[0]
	}
	if source == "" {
		return errors.New("no source given and INGEST_SOURCE is empty")
	}
	sheet := cfg.Ingest.Sheet
	if ingestFlags.sheet != "" {
		sheet = ingestFlags.sheet
	}
	cleanCSV := cfg.Ingest.CleanCSV
	if ingestFlags.cleanCSV != "" {
		cleanCSV = ingestFlags.cleanCSV
	}

	database, err := openDB()
	if err != nil {
		return err
	}

	pipeline := ingest.NewPipeline(
		ingest.NewReader(sheet),
		ingest.NewCleaner(current.log),
		ingest.NewLoader(database, cfg.Ingest.BatchSize, current.log),
		cleanCSV,
		current.log,
	)
	result, err := pipeline.Run(cmd.Context(), source)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
