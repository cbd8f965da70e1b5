package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/report"
	"github.com/epilog-dev/epilog/pkg/stats"
)

var earlyCmd = &cobra.Command{
	Use:   "early FILES...",
	Short: "Find early-terminating losses",
	Long: `Scans for non-win episodes that ended before the step threshold and
reports their end reasons and final actions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}

		threshold := cfg.EarlyActions
		if cmd.Flags().Changed("threshold") {
			threshold, _ = cmd.Flags().GetInt("threshold")
		}

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		collector := stats.NewEarlyCollector(threshold)
		ctx, err := stats.Run(files, opts, collector)
		if err != nil {
			return err
		}
		logger.Info("early-termination scan found %d of %d episodes", len(collector.Early), ctx.Episodes)

		report.WriteEarly(os.Stdout, collector)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(earlyCmd)
	earlyCmd.Flags().Int("threshold", 0, "step threshold (default from config)")
	earlyCmd.Flags().Float64("win-threshold", stats.DefaultWinThreshold, "final reward needed to count as a win")
}
