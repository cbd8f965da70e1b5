package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/config"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/stats"
)

var rootCmd = &cobra.Command{
	Use:   "epilog",
	Short: "Analyze game-episode trajectory logs",
	Long: `Epilog reads JSONL trajectory logs produced by game agents and computes
win/loss statistics, repeated-action metrics, and structural reports,
with optional chart and CSV output.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.Get().SetAlsoStderr(true)
			logger.Get().SetLevel(logger.DEBUG)
		}
	},
}

func Execute() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "mirror debug logging to stderr")
}

// analysisOptions loads the config file and applies the command's
// --win-threshold override when set.
func analysisOptions(cmd *cobra.Command) (config.Config, stats.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, stats.Options{}, err
	}

	threshold := cfg.WinThreshold
	if cmd.Flags().Changed("win-threshold") {
		v, err := cmd.Flags().GetFloat64("win-threshold")
		if err != nil {
			return config.Config{}, stats.Options{}, err
		}
		threshold = v
	}
	return cfg, stats.Options{WinThreshold: &threshold}, nil
}
