package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"procure.GO/config"
	catalogService "procure.GO/service/catalog"
)

var (
	importFile  string
	importBatch int
)

var partsImportCmd = &cobra.Command{
	Use:   "parts:import",
	Short: "Import catalog parts from a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open CSV: %w", err)
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		res, err := catalogService.ImportParts(context.Background(), db, filepath.Base(importFile), f, catalogService.ImportOptions{
			BatchSize: importBatch,
			Indexer:   catalogService.NewSearchService(db),
		})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, w := range res.Warnings {
			fmt.Fprintln(out, warnLine("%s", w))
		}
		for _, re := range res.Errors {
			fmt.Fprintln(out, errLine("%s", re))
		}
		fmt.Fprintln(out, renderReport("Import Report", []reportRow{
			{"CSV rows", fmt.Sprint(res.TotalRows)},
			{"Added", okStyle.Render(fmt.Sprint(res.Added))},
			{"Skipped", fmt.Sprint(res.Skipped)},
			{"Row errors", fmt.Sprint(len(res.Errors))},
			{"Total time", res.TotalTime.Round(time.Millisecond).String()},
		}))
		return nil
	},
}

var partsLookupCmd = &cobra.Command{
	Use:   "parts:lookup <part_number>",
	Short: "Show the catalog entry of a part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		res, err := catalogService.Lookup(context.Background(), db, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !res.Found {
			fmt.Fprintln(out, errLine("part %s not found", args[0]))
			return nil
		}
		fmt.Fprintln(out, renderReport(res.PartNumber, []reportRow{
			{"Supplier", res.Supplier},
			{"Description", res.Description},
			{"Unit price", fmt.Sprintf("%.2f", res.UnitPrice)},
			{"MOQ", fmt.Sprint(res.MOQ)},
			{"Unit", res.Unit},
		}))
		return nil
	},
}

func init() {
	partsImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	partsImportCmd.MarkFlagRequired("file")
	partsImportCmd.Flags().IntVar(&importBatch, "batch-size", 500, "Batch size for DB operations")
	rootCmd.AddCommand(partsImportCmd, partsLookupCmd)
}
