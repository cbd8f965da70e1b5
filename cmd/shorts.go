package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/report"
	"github.com/epilog-dev/epilog/pkg/stats"
)

var shortsCmd = &cobra.Command{
	Use:   "shorts FILES...",
	Short: "Inspect short losing episodes",
	Long: `Finds losses that ended within the step limit and dumps their last
actions, rewards, and final-state entity counts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}

		maxSteps, _ := cmd.Flags().GetInt("max-steps")

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		collector := stats.NewShortLossCollector(maxSteps)
		ctx, err := stats.Run(files, opts, collector)
		if err != nil {
			return err
		}
		logger.Info("short-loss scan matched %d of %d episodes", len(collector.Matches), ctx.Episodes)

		report.WriteShorts(os.Stdout, collector)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shortsCmd)
	shortsCmd.Flags().Int("max-steps", stats.DefaultShortLossSteps, "keep losses with at most this many actions")
	shortsCmd.Flags().Float64("win-threshold", stats.DefaultWinThreshold, "final reward needed to count as a win")
}
