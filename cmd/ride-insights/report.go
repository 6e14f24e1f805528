package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ride-insights/internal/export"
	"ride-insights/internal/model"
	"ride-insights/internal/service"
)

var reportFlags struct {
	all    bool
	format string
	out    string
}

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run one report, or every report with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the report catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReportService(nil, current.log)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTABLES\tTITLE")
		for _, info := range svc.List(service.System) {
			fmt.Fprintf(w, "%s\t%v\t%s\n", info.Name, info.Sources, info.Title)
		}
		return w.Flush()
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportFlags.all, "all", false, "Run every report")
	reportCmd.Flags().StringVarP(&reportFlags.format, "format", "f", "csv", "Output format: csv or json")
	reportCmd.Flags().StringVarP(&reportFlags.out, "out", "o", "", "Write one file per report into this directory (defaults to EXPORT_DIR with --all)")

	rootCmd.AddCommand(reportCmd, listCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFlags.all == (len(args) == 1) {
		return errors.New("give exactly one report name or --all")
	}
	format, err := export.ParseFormat(reportFlags.format)
	if err != nil {
		return err
	}

	svc, err := reportService()
	if err != nil {
		return err
	}

	var tables []model.Table
	if reportFlags.all {
		tables, err = svc.RunAll(cmd.Context(), service.System)
	} else {
		var table model.Table
		table, err = svc.Run(cmd.Context(), service.System, args[0])
		tables = []model.Table{table}
	}
	if err != nil {
		return err
	}

	dir := reportFlags.out
	if dir == "" && reportFlags.all {
		dir = current.cfg.Export.Dir
	}
	if dir == "" {
		return export.Write(cmd.OutOrStdout(), tables[0], format)
	}

	paths, err := export.ToDir(dir, tables, format)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
