package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert graph-data JSON files to CSV",
	Long: `Reads the per-network episode outcome JSON files from the graph-data
directory and writes a single CSV with network, episode, and outcome
columns. Files with a "b" suffix hold the second half of a split
network and have their episode numbers shifted by 100.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		outPath, _ := cmd.Flags().GetString("out")

		rows, err := export.Collect(dataDir, os.Stderr)
		if err != nil {
			return err
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		if err := export.WriteCSV(f, rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Printf("\nWrote %d rows to %s\n", len(rows), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("data-dir", "data/graph_data", "directory with episode outcome JSON files")
	exportCmd.Flags().String("out", "episodes.csv", "output CSV path")
}
