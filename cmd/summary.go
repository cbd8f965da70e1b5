package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/report"
	"github.com/epilog-dev/epilog/pkg/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary FILES...",
	Short: "Episode win/loss summary",
	Long: `Computes the episode performance summary over one or more trajectory
files: win rate, loss categorization (step limit vs invalid actions),
step and reward statistics per outcome, and final-action breakdowns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}

		stepLimit := cfg.StepLimit
		if cmd.Flags().Changed("step-limit") {
			stepLimit, _ = cmd.Flags().GetInt("step-limit")
		}

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		collector := stats.NewSummaryCollector(stepLimit)
		ctx, err := stats.Run(files, opts, collector)
		if err != nil {
			return err
		}
		logger.Info("summarized %d episodes from %d files", ctx.Episodes, len(files))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.WriteSummaryJSON(os.Stdout, collector)
		}
		if compact, _ := cmd.Flags().GetBool("compact"); compact {
			report.WriteCompactSummary(os.Stdout, collector)
			return nil
		}
		report.WriteSummary(os.Stdout, collector)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().Bool("compact", false, "one-line summary")
	summaryCmd.Flags().Bool("json", false, "output JSON")
	summaryCmd.Flags().Int("step-limit", 0, "loss step limit (default from config)")
	summaryCmd.Flags().Float64("win-threshold", stats.DefaultWinThreshold, "final reward needed to count as a win")
}
