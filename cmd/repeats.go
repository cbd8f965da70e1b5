package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/chart"
	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/report"
	"github.com/epilog-dev/epilog/pkg/stats"
)

var repeatsCmd = &cobra.Command{
	Use:   "repeats FILES...",
	Short: "Repeated-action analysis",
	Long: `Measures how often agents repeat the exact same action (parameters
included) within an episode, aggregated overall and split by outcome.
Optionally renders histogram, box plot, and scatter charts and exports
per-episode metrics as CSV or JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		collector := stats.NewRepeatCollector()
		ctx, err := stats.Run(files, opts, collector)
		if err != nil {
			return err
		}
		logger.Info("analyzed repeats for %d episodes", ctx.Episodes)

		if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", csvPath, err)
			}
			if err := report.WriteRepeatsCSV(f, collector.Episodes); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Printf("Wrote %d episodes to %s\n", len(collector.Episodes), csvPath)
		}

		title, _ := cmd.Flags().GetString("title")
		bins := cfg.HistogramBins
		if cmd.Flags().Changed("bins") {
			bins, _ = cmd.Flags().GetInt("bins")
		}

		if path, _ := cmd.Flags().GetString("histogram"); path != "" {
			groups := chart.OutcomeGroups(
				collector.All.Repeated.Values(),
				collector.Wins.Repeated.Values(),
				collector.Losses.Repeated.Values(),
			)
			histTitle := title
			if histTitle == "" {
				histTitle = "Distribution of Repeated Actions per Episode"
			}
			if err := chart.Histogram(path, histTitle, "Number of Repeated Actions", bins, groups); err != nil {
				return err
			}
			fmt.Printf("Wrote histogram to %s\n", path)
		}

		if path, _ := cmd.Flags().GetString("boxplot"); path != "" {
			groups := chart.OutcomeGroups(
				collector.All.Repeated.Values(),
				collector.Wins.Repeated.Values(),
				collector.Losses.Repeated.Values(),
			)
			boxTitle := title
			if boxTitle == "" {
				boxTitle = "Distribution of Repeated Actions by Episode Outcome"
			}
			if err := chart.BoxPlot(path, boxTitle, "Number of Repeated Actions", groups); err != nil {
				return err
			}
			fmt.Printf("Wrote box plot to %s\n", path)
		}

		if path, _ := cmd.Flags().GetString("scatter"); path != "" {
			points := make([]chart.Point, 0, len(collector.Episodes))
			for _, ep := range collector.Episodes {
				points = append(points, chart.Point{
					Steps:     float64(ep.TotalActions),
					RepeatPct: ep.RepeatPct,
					Win:       ep.Win,
				})
			}
			if err := chart.Scatter(path, title, points); err != nil {
				return err
			}
			fmt.Printf("Wrote scatter plot to %s\n", path)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.WriteRepeatsJSON(os.Stdout, collector)
		}

		report.WriteRepeats(os.Stdout, collector)
		if detailed, _ := cmd.Flags().GetBool("detailed"); detailed {
			report.WriteRepeatDetails(os.Stdout, collector)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repeatsCmd)
	repeatsCmd.Flags().String("histogram", "", "write histogram PNG to this path")
	repeatsCmd.Flags().String("boxplot", "", "write box plot PNG to this path")
	repeatsCmd.Flags().String("scatter", "", "write scatter PNG to this path")
	repeatsCmd.Flags().String("csv", "", "write per-episode metrics CSV to this path")
	repeatsCmd.Flags().Bool("json", false, "output JSON")
	repeatsCmd.Flags().Bool("detailed", false, "list per-episode metrics")
	repeatsCmd.Flags().Int("bins", 0, "histogram bin count (default from config)")
	repeatsCmd.Flags().String("title", "", "chart title override")
	repeatsCmd.Flags().Float64("win-threshold", stats.DefaultWinThreshold, "final reward needed to count as a win")
}
