// Package report renders collected statistics as stdout tables, CSV files
// and JSON documents.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/epilog-dev/epilog/pkg/stats"
)

const lineWidth = 80

func banner(w io.Writer, title string) {
	bar := strings.Repeat("=", lineWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", bar, title, bar)
}

func section(w io.Writer, title string) {
	bar := strings.Repeat("-", lineWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", bar, title, bar)
}

func subsection(w io.Writer, title string) {
	bar := strings.Repeat("-", 40)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", bar, title, bar)
}

// pct is the display convention for ratios: 0 when the denominator is 0.
func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func writeRanked(w io.Writer, counts map[string]int) {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for _, e := range entries {
		fmt.Fprintf(w, "  %s: %d\n", e.key, e.count)
	}
}

func writeSorted(w io.Writer, counts map[string]int, unit string) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %d %s\n", displayKey(k), counts[k], unit)
	}
}

func displayKey(k string) string {
	if k == "" {
		return "(none)"
	}
	return k
}

// WriteSummary renders the episode performance summary.
func WriteSummary(w io.Writer, c *stats.SummaryCollector) {
	banner(w, "EPISODE SUMMARY")

	fmt.Fprintf(w, "Total Episodes (with actions): %d\n", c.All.Count)
	fmt.Fprintf(w, "Wins: %d\n", c.Wins.Count)
	fmt.Fprintf(w, "Losses: %d\n", c.Losses.Count)
	fmt.Fprintf(w, "  - Step Limit Reached: %d\n", c.LossTimeout.Count)
	fmt.Fprintf(w, "  - Invalid Actions Exhausted: %d\n", c.LossExhaust.Count)
	if c.All.Count > 0 {
		fmt.Fprintf(w, "Win Rate: %.1f%%\n", c.WinRate())
	} else {
		fmt.Fprintln(w, "Win Rate: N/A")
	}

	section(w, "OVERALL STATISTICS")
	if c.All.Count > 0 {
		fmt.Fprintf(w, "Average Steps: %.1f\n", c.All.Steps.Mean())
		fmt.Fprintf(w, "Average Total Reward: %.2f\n", c.All.TotalRewards.Mean())
		fmt.Fprintf(w, "Min Steps: %.0f\n", c.All.Steps.Min())
		fmt.Fprintf(w, "Max Steps: %.0f\n", c.All.Steps.Max())
	}

	section(w, "WINNING EPISODES")
	if c.Wins.Count > 0 {
		fmt.Fprintf(w, "Number of Wins: %d\n", c.Wins.Count)
		fmt.Fprintf(w, "Average Steps to Win: %.1f\n", c.Wins.Steps.Mean())
		fmt.Fprintf(w, "Average Total Reward: %.2f\n", c.Wins.TotalRewards.Mean())
		fmt.Fprintf(w, "Fastest Win: %.0f steps\n", c.Wins.Steps.Min())
		fmt.Fprintf(w, "Slowest Win: %.0f steps\n", c.Wins.Steps.Max())
		fmt.Fprintf(w, "\nFinal Actions in Winning Episodes:\n")
		writeBucketFinalActions(w, c.Wins)
	} else {
		fmt.Fprintln(w, "No winning episodes found.")
	}

	section(w, "LOSING EPISODES")
	if c.Losses.Count > 0 {
		fmt.Fprintf(w, "Number of Losses: %d\n", c.Losses.Count)
		fmt.Fprintf(w, "Average Steps in Loss: %.1f\n", c.Losses.Steps.Mean())
		fmt.Fprintf(w, "Average Total Reward: %.2f\n", c.Losses.TotalRewards.Mean())
		fmt.Fprintf(w, "Min Steps: %.0f steps\n", c.Losses.Steps.Min())
		fmt.Fprintf(w, "Max Steps: %.0f steps\n", c.Losses.Steps.Max())
		fmt.Fprintf(w, "\nFinal Actions in Losing Episodes:\n")
		writeBucketFinalActions(w, c.Losses)

		subsection(w, "LOSS TYPE: STEP LIMIT REACHED")
		writeLossBucket(w, c.LossTimeout, "step-limit")

		subsection(w, "LOSS TYPE: INVALID ACTIONS EXHAUSTED")
		writeLossBucket(w, c.LossExhaust, "invalid-action")
	} else {
		fmt.Fprintln(w, "No losing episodes found.")
	}

	fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", lineWidth))
}

func writeBucketFinalActions(w io.Writer, b *stats.SummaryBucket) {
	for _, ac := range b.FinalActionsRanked() {
		fmt.Fprintf(w, "  %s: %d\n", displayKey(ac.Action), ac.Count)
	}
}

func writeLossBucket(w io.Writer, b *stats.SummaryBucket, kind string) {
	if b.Count == 0 {
		fmt.Fprintf(w, "No %s losses found.\n", kind)
		return
	}
	fmt.Fprintf(w, "Count: %d\n", b.Count)
	fmt.Fprintf(w, "Average Steps: %.1f\n", b.Steps.Mean())
	fmt.Fprintf(w, "Average Total Reward: %.2f\n", b.TotalRewards.Mean())
	fmt.Fprintf(w, "Min Steps: %.0f steps\n", b.Steps.Min())
	fmt.Fprintf(w, "Max Steps: %.0f steps\n", b.Steps.Max())
	fmt.Fprintf(w, "\nFinal Actions:\n")
	writeBucketFinalActions(w, b)
}

// WriteCompactSummary renders the one-line summary.
func WriteCompactSummary(w io.Writer, c *stats.SummaryCollector) {
	fmt.Fprintf(w, "Episodes: %d | Wins: %d (%.1f%%) | Losses: %d (StepLimit: %d, InvalidActions: %d) | Avg Reward: %.1f | Avg Steps to Win: %.1f\n",
		c.All.Count,
		c.Wins.Count,
		c.WinRate(),
		c.Losses.Count,
		c.LossTimeout.Count,
		c.LossExhaust.Count,
		c.All.TotalRewards.Mean(),
		c.Wins.Steps.Mean(),
	)
}

// WriteRepeats renders the repeated-actions analysis.
func WriteRepeats(w io.Writer, c *stats.RepeatCollector) {
	banner(w, "REPEATED ACTIONS ANALYSIS")

	fmt.Fprintf(w, "Total Episodes Analyzed: %d\n", c.All.Repeated.Len())
	fmt.Fprintf(w, "  Wins: %d\n", c.Wins.Repeated.Len())
	fmt.Fprintf(w, "  Losses: %d\n", c.Losses.Repeated.Len())

	section(w, "OVERALL STATISTICS")
	writeRepeatGroup(w, &c.All)

	section(w, "WINNING EPISODES")
	writeRepeatGroup(w, &c.Wins)

	section(w, "LOSING EPISODES")
	writeRepeatGroup(w, &c.Losses)

	fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", lineWidth))
}

func writeRepeatGroup(w io.Writer, g *stats.RepeatGroup) {
	n := g.Repeated.Len()
	if n == 0 {
		fmt.Fprintln(w, "No episodes.")
		return
	}
	fmt.Fprintf(w, "Avg Distinct Repeated Actions per Episode: %.2f\n", g.Repeated.Mean())
	fmt.Fprintf(w, "Avg Total Repetitions per Episode: %.2f\n", g.Repetitions.Mean())
	fmt.Fprintf(w, "Avg Repetition Rate: %.1f%%\n", g.Rates.Mean())
	fmt.Fprintf(w, "Min Distinct Repeated Actions: %.0f\n", g.Repeated.Min())
	fmt.Fprintf(w, "Max Distinct Repeated Actions: %.0f\n", g.Repeated.Max())
	fmt.Fprintf(w, "Min Total Repetitions: %.0f\n", g.Repetitions.Min())
	fmt.Fprintf(w, "Max Total Repetitions: %.0f\n", g.Repetitions.Max())
	fmt.Fprintf(w, "Min Repetition Rate: %.1f%%\n", g.Rates.Min())
	fmt.Fprintf(w, "Max Repetition Rate: %.1f%%\n", g.Rates.Max())
	fmt.Fprintf(w, "Episodes with No Repeated Actions: %d (%.1f%%)\n",
		g.NoRepeats(), pct(g.NoRepeats(), n))
}

// WriteRepeatDetails renders the per-episode repeat listing.
func WriteRepeatDetails(w io.Writer, c *stats.RepeatCollector) {
	banner(w, "DETAILED EPISODE INFORMATION")

	for i, ep := range c.Episodes {
		outcome := "LOSS"
		if ep.Win {
			outcome = "WIN"
		}
		fmt.Fprintf(w, "Episode %d [%s]:\n", i+1, outcome)
		fmt.Fprintf(w, "  File: %s:%d\n", ep.File, ep.Line)
		fmt.Fprintf(w, "  Total Actions: %d\n", ep.TotalActions)
		fmt.Fprintf(w, "  Unique Actions: %d\n", ep.UniqueActions)
		fmt.Fprintf(w, "  Repeated Actions: %d\n", ep.RepeatedActions)
		fmt.Fprintf(w, "  Total Repetitions: %d\n", ep.TotalRepetitions)
		fmt.Fprintf(w, "  Repeat Percentage: %.1f%%\n", ep.RepeatPct)
		fmt.Fprintln(w)
	}
}

// WriteCounts renders the episode counting report. When details is set the
// per-episode listing is appended.
func WriteCounts(w io.Writer, c *stats.CountCollector, details bool) {
	banner(w, "EPISODE ANALYSIS SUMMARY")

	fmt.Fprintf(w, "Total Episodes: %d\n", c.TotalEpisodes)
	fmt.Fprintf(w, "Total Files: %d\n", len(c.Files))

	section(w, "BY FILE:")
	for _, path := range c.FileOrder {
		fs := c.Files[path]
		fmt.Fprintf(w, "\n%s\n", path)
		fmt.Fprintf(w, "  Episodes: %d\n", fs.Episodes)
		fmt.Fprintf(w, "  Total Actions: %d\n", fs.TotalActions)
		fmt.Fprintf(w, "  Total States: %d\n", fs.TotalStates)
		fmt.Fprintf(w, "  Total Reward: %.2f\n", fs.TotalReward)
		fmt.Fprintf(w, "  File Size: %s\n", humanize.Bytes(uint64(fs.SizeBytes)))
		if fs.Episodes > 0 {
			fmt.Fprintf(w, "  Avg Actions/Episode: %.1f\n", float64(fs.TotalActions)/float64(fs.Episodes))
			fmt.Fprintf(w, "  Avg States/Episode: %.1f\n", float64(fs.TotalStates)/float64(fs.Episodes))
			fmt.Fprintf(w, "  Avg Reward/Episode: %.2f\n", fs.TotalReward/float64(fs.Episodes))
		}
	}

	if len(c.ByAgent) > 0 {
		section(w, "BY AGENT:")
		writeSorted(w, c.ByAgent, "episodes")
	}
	if len(c.ByRole) > 0 {
		section(w, "BY ROLE:")
		writeSorted(w, c.ByRole, "episodes")
	}
	if len(c.ByEndReason) > 0 {
		section(w, "BY END REASON:")
		writeSorted(w, c.ByEndReason, "episodes")
	}
	if len(c.ByOutcome) > 0 {
		section(w, "BY OUTCOME:")
		writeSorted(w, c.ByOutcome, "episodes")
	}
	if len(c.ByFinalAction) > 0 {
		section(w, "BY FINAL ACTION:")
		writeRanked(w, c.ByFinalAction)
	}

	if details && len(c.Details) > 0 {
		banner(w, "EPISODE DETAILS")
		for i, ep := range c.Details {
			symbol := "○"
			switch ep.Outcome {
			case stats.OutcomeWin:
				symbol = "✓"
			case stats.OutcomeLoss:
				symbol = "✗"
			}
			fmt.Fprintf(w, "Episode %d [%s %s] (%s:L%d)\n",
				i+1, symbol, strings.ToUpper(ep.Outcome), ep.File, ep.Line)
			fmt.Fprintf(w, "  Agent: %s (%s)\n", displayKey(ep.AgentName), displayKey(ep.AgentRole))
			fmt.Fprintf(w, "  States: %d, Actions: %d, Rewards: %d\n",
				ep.NumStates, ep.NumActions, ep.NumRewards)
			if ep.FinalReward != nil {
				fmt.Fprintf(w, "  Total Reward: %.2f, Final Reward: %v\n", ep.TotalReward, *ep.FinalReward)
			} else {
				fmt.Fprintf(w, "  Total Reward: %.2f, Final Reward: none\n", ep.TotalReward)
			}
			fmt.Fprintf(w, "  Final Action: %s\n", displayKey(ep.FinalAction))
			fmt.Fprintf(w, "  Controlled Hosts: %d, Known Hosts: %d, Known Networks: %d\n",
				ep.ControlledHosts, ep.KnownHosts, ep.KnownNetworks)
			fmt.Fprintln(w)
		}
	}
}

// WriteEarly renders the early-termination scan.
func WriteEarly(w io.Writer, c *stats.EarlyCollector) {
	banner(w, "SUMMARY")

	fmt.Fprintln(w, "Total episodes analyzed:")
	fmt.Fprintf(w, "  Wins: %d\n", c.Wins)
	fmt.Fprintf(w, "  Normal losses (>= %d steps): %d\n", c.Threshold, c.Normal)
	fmt.Fprintf(w, "  Early terminations (< %d steps, non-wins): %d\n", c.Threshold, len(c.Early))

	if len(c.Early) == 0 {
		return
	}

	banner(w, "EARLY TERMINATIONS DETAILS")
	for _, ep := range c.Early {
		fmt.Fprintf(w, "\nFile: %s, Line: %d\n", ep.File, ep.Line)
		fmt.Fprintf(w, "  Actions: %d\n", ep.NumActions)
		if ep.FinalReward != nil {
			fmt.Fprintf(w, "  Final reward: %v\n", *ep.FinalReward)
		} else {
			fmt.Fprintf(w, "  Final reward: none\n")
		}
		fmt.Fprintf(w, "  Total reward: %.2f\n", ep.TotalReward)
		fmt.Fprintf(w, "  End reason: %s\n", displayKey(ep.EndReason))
		fmt.Fprintf(w, "  Final action: %s\n", displayKey(ep.FinalAction))
	}

	banner(w, "EARLY TERMINATION STATISTICS")
	steps := c.Steps()
	fmt.Fprintf(w, "  Count: %d\n", len(c.Early))
	fmt.Fprintf(w, "  Min actions: %.0f\n", steps.Min())
	fmt.Fprintf(w, "  Max actions: %.0f\n", steps.Max())
	fmt.Fprintf(w, "  Avg actions: %.1f\n", steps.Mean())

	fmt.Fprintf(w, "\n  End reason distribution:\n")
	writeRanked(w, c.EndReasons)

	fmt.Fprintf(w, "\n  Final action distribution:\n")
	writeRanked(w, c.FinalActions)
}

// WriteShorts renders the short-loss inspection: the tail of each matching
// episode with its rewards and final-state entity counts.
func WriteShorts(w io.Writer, c *stats.ShortLossCollector) {
	if len(c.Matches) == 0 {
		fmt.Fprintf(w, "No losing episodes with <= %d steps found.\n", c.MaxSteps)
		return
	}

	for _, ep := range c.Matches {
		banner(w, fmt.Sprintf("File: %s\nLine: %d", ep.File, ep.Line))

		final, _ := ep.FinalReward()
		fmt.Fprintf(w, "Number of actions: %d\n", ep.Steps())
		fmt.Fprintf(w, "Final reward: %v\n", final)
		fmt.Fprintf(w, "Total reward: %.2f\n", ep.TotalReward())
		fmt.Fprintf(w, "End reason: %s\n", displayKey(ep.EndReason))

		fmt.Fprintf(w, "\nLast 5 actions:\n")
		actions := ep.Trajectory.Actions
		rewards := ep.Trajectory.Rewards
		start := len(actions) - 5
		if start < 0 {
			start = 0
		}
		for i := start; i < len(actions); i++ {
			reward := "N/A"
			if i < len(rewards) {
				reward = fmt.Sprintf("%v", rewards[i])
			}
			fmt.Fprintf(w, "  %d. %s - reward: %s\n", i+1, displayKey(actions[i].Type()), reward)
		}

		fmt.Fprintf(w, "\nFinal state info:\n")
		if st := ep.FinalState(); st != nil {
			fmt.Fprintf(w, "  Controlled hosts: %d\n", len(st.ControlledHosts))
			fmt.Fprintf(w, "  Known hosts: %d\n", len(st.KnownHosts))
			fmt.Fprintf(w, "  Known data: %d\n", len(st.KnownData))
		} else {
			fmt.Fprintln(w, "  No states recorded.")
		}
	}
}
