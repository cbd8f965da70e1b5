package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/schema"
)

// sampleRecordLimit caps the pretty-printed first record.
const sampleRecordLimit = 2000

var schemaCmd = &cobra.Command{
	Use:   "schema FILES...",
	Short: "Inspect JSONL file structure",
	Long: `Samples records from each file and prints the field paths it finds,
the JSON types observed at each path, example values for scalar leaves,
and a truncated dump of the first record.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLines, _ := cmd.Flags().GetInt("max-lines")

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		for _, path := range files {
			r, err := schema.AnalyzeFile(path, maxLines)
			if err != nil {
				fmt.Printf("Error analyzing %s: %v\n", path, err)
				logger.Error("schema analysis of %s failed: %v", path, err)
				continue
			}
			printReport(r)
		}
		return nil
	},
}

func printReport(r *schema.FileReport) {
	bar := strings.Repeat("=", 80)

	fmt.Printf("\n%s\n", bar)
	fmt.Printf("Analyzing: %s\n", r.Path)
	fmt.Printf("%s\n\n", bar)

	fmt.Printf("Total lines in file: %d\n", r.TotalLines)
	fmt.Printf("Lines analyzed: %d\n", r.Analyzed)
	fmt.Printf("Parse errors: %d\n", r.ParseErrors)

	fmt.Printf("\n%s\n", bar)
	fmt.Println("SCHEMA STRUCTURE")
	fmt.Printf("%s\n\n", bar)

	for _, path := range r.SortedPaths() {
		labels := r.Paths[path].Labels()
		indent := strings.Repeat("  ", strings.Count(path, "."))
		parts := strings.Split(path, ".")
		key := parts[len(parts)-1]
		fmt.Printf("%s%s: %s\n", indent, key, strings.Join(labels, " | "))

		if len(labels) == 1 && isScalarLabel(labels[0]) {
			if v := r.SampleValue(path); v != nil {
				s := fmt.Sprintf("%v", v)
				if len(s) > 60 {
					s = s[:60] + "..."
				}
				fmt.Printf("%s  └─ example: %s\n", indent, s)
			}
		}
	}

	if len(r.Samples) > 0 {
		fmt.Printf("\n%s\n", bar)
		fmt.Println("SAMPLE RECORD (first entry)")
		fmt.Printf("%s\n\n", bar)

		pretty, err := json.MarshalIndent(r.Samples[0], "", "  ")
		if err == nil {
			if len(pretty) > sampleRecordLimit {
				fmt.Println(string(pretty[:sampleRecordLimit]))
				fmt.Println("\n... (truncated)")
			} else {
				fmt.Println(string(pretty))
			}
		}
	}
}

func isScalarLabel(label string) bool {
	switch label {
	case "string", "int", "float", "bool":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().Int("max-lines", schema.DefaultMaxLines, "maximum lines to analyze per file")
}
