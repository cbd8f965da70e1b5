package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Show or change analysis settings",
	Long: `Prints the current settings, or writes new ones to the config file
when flags are given. Environment variables with the EPILOG_ prefix
override the file at runtime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("win-threshold") {
			cfg.WinThreshold, _ = cmd.Flags().GetFloat64("win-threshold")
			changed = true
		}
		if cmd.Flags().Changed("step-limit") {
			cfg.StepLimit, _ = cmd.Flags().GetInt("step-limit")
			changed = true
		}
		if cmd.Flags().Changed("early-actions") {
			cfg.EarlyActions, _ = cmd.Flags().GetInt("early-actions")
			changed = true
		}
		if cmd.Flags().Changed("bins") {
			cfg.HistogramBins, _ = cmd.Flags().GetInt("bins")
			changed = true
		}
		if cmd.Flags().Changed("database") {
			cfg.DatabasePath, _ = cmd.Flags().GetString("database")
			changed = true
		}

		if changed {
			path, err := config.Save(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Saved config to %s\n\n", path)
		}

		fmt.Printf("Win threshold:  %v\n", cfg.WinThreshold)
		fmt.Printf("Step limit:     %d\n", cfg.StepLimit)
		fmt.Printf("Early actions:  %d\n", cfg.EarlyActions)
		fmt.Printf("Histogram bins: %d\n", cfg.HistogramBins)
		if cfg.DatabasePath != "" {
			fmt.Printf("Database path:  %s\n", cfg.DatabasePath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().Float64("win-threshold", 0, "final reward needed to count as a win")
	configureCmd.Flags().Int("step-limit", 0, "step count at which losses count as step-limit losses")
	configureCmd.Flags().Int("early-actions", 0, "early-termination step threshold")
	configureCmd.Flags().Int("bins", 0, "default histogram bin count")
	configureCmd.Flags().String("database", "", "episode index database path")
}
