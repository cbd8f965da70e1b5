package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/report"
	"github.com/epilog-dev/epilog/pkg/stats"
)

var countCmd = &cobra.Command{
	Use:   "count FILES...",
	Short: "Count episodes and break them down",
	Long: `Counts episodes per file and across agents, roles, end reasons,
outcomes, and final actions. Zero-action episodes are included here
with outcome no_action, unlike the statistical reports.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		opts.IncludeEmpty = true

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		collector := stats.NewCountCollector()
		ctx, err := stats.Run(files, opts, collector)
		if err != nil {
			return err
		}
		logger.Info("counted %d episodes from %d files", ctx.Episodes, len(files))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.WriteCountsJSON(os.Stdout, collector)
		}
		details, _ := cmd.Flags().GetBool("details")
		report.WriteCounts(os.Stdout, collector, details)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().Bool("json", false, "output JSON")
	countCmd.Flags().Bool("details", false, "list every episode")
	countCmd.Flags().Float64("win-threshold", stats.DefaultWinThreshold, "final reward needed to count as a win")
}
