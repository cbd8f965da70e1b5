package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/config"
	"github.com/epilog-dev/epilog/pkg/db"
	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/logger"
	"github.com/epilog-dev/epilog/pkg/stats"
	"github.com/epilog-dev/epilog/pkg/trajectory"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the local episode index",
	Long:  "Build and query the SQLite index of analyzed episodes.",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build FILES...",
	Short: "Index episodes from trajectory files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}

		files, err := discovery.ExpandArgs(args)
		if err != nil {
			return err
		}

		episodes, readStats, err := trajectory.ReadFiles(files)
		if err != nil {
			return err
		}

		collector := stats.NewRepeatCollector()
		ctx := stats.RunEpisodes(episodes, opts, collector)

		repeats := make(map[string]stats.EpisodeRepeats, len(collector.Episodes))
		for _, r := range collector.Episodes {
			repeats[fmt.Sprintf("%s:%d", r.File, r.Line)] = r
		}

		rows := make([]db.EpisodeRow, 0, len(episodes))
		for _, ep := range episodes {
			row := db.EpisodeRow{
				SourceFile:  ep.File,
				SourceLine:  ep.Line,
				AgentName:   ep.AgentName,
				AgentRole:   ep.AgentRole,
				EndReason:   ep.EndReason,
				Steps:       ep.Steps(),
				TotalReward: ep.TotalReward(),
			}

			switch {
			case !ep.HasActions():
				row.Outcome = stats.OutcomeNoAction
			case ep.IsWin(ctx.WinThreshold):
				row.Outcome = stats.OutcomeWin
			default:
				row.Outcome = stats.OutcomeLoss
			}
			if final, ok := ep.FinalReward(); ok {
				row.FinalReward = final
			}
			if r, ok := repeats[fmt.Sprintf("%s:%d", ep.File, ep.Line)]; ok {
				row.RepeatedActions = r.RepeatedActions
				row.TotalRepetitions = r.TotalRepetitions
				row.RepeatPct = r.RepeatPct
			}
			rows = append(rows, row)
		}

		database, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		runID, err := database.InsertRun(len(files), rows)
		if err != nil {
			return err
		}
		logger.Info("indexed run %s: %d episodes from %d files", runID, len(rows), len(files))

		fmt.Printf("Indexed %d episodes from %d files (%d parse errors)\n",
			len(rows), len(files), readStats.ParseErrors)
		fmt.Printf("Run ID: %s\n", runID)
		fmt.Printf("Database: %s\n", database.Path())
		return nil
	},
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index location and recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		database, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		fmt.Printf("Database: %s\n", database.Path())

		runCount, err := database.GetRunCount()
		if err != nil {
			return fmt.Errorf("failed to get run count: %w", err)
		}
		episodeCount, err := database.GetEpisodeCount()
		if err != nil {
			return fmt.Errorf("failed to get episode count: %w", err)
		}
		fmt.Printf("Total Runs: %d\n", runCount)
		fmt.Printf("Total Episodes: %s\n", humanize.Comma(int64(episodeCount)))
		fmt.Println()

		if runCount == 0 {
			fmt.Println("No runs indexed yet.")
			return nil
		}

		fmt.Println("Recent Runs:")
		runs, err := database.GetRecentRuns(10)
		if err != nil {
			return fmt.Errorf("failed to get recent runs: %w", err)
		}
		for _, r := range runs {
			age := time.Since(r.CreatedAt)
			fmt.Printf("  %s - %s ago (%d episodes, %d wins, %d losses, %d files)\n",
				r.RunID[:8],
				formatDuration(age),
				r.EpisodeCount,
				r.WinCount,
				r.LossCount,
				r.FileCount,
			)
		}
		return nil
	},
}

func openIndex(cfg config.Config) (*db.DB, error) {
	if cfg.DatabasePath != "" {
		return db.OpenPath(cfg.DatabasePath)
	}
	return db.Open()
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else {
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	indexBuildCmd.Flags().Float64("win-threshold", stats.DefaultWinThreshold, "final reward needed to count as a win")
}
