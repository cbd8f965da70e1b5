package stats

import (
	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// EpisodeRepeats holds repeated-action metrics for a single episode.
// A repeated action is a signature (the full action, parameters included)
// that occurs more than once in the episode.
type EpisodeRepeats struct {
	File             string  `json:"file"`
	Line             int     `json:"line"`
	TotalActions     int     `json:"total_actions"`
	UniqueActions    int     `json:"unique_actions"`
	RepeatedActions  int     `json:"num_repeated_actions"` // distinct signatures with count > 1
	TotalRepetitions int     `json:"total_repetitions"`    // sum of count-1 over repeated signatures
	RepeatPct        float64 `json:"repeat_percentage"`    // repetitions / total actions * 100
	Win              bool    `json:"is_win"`
}

// RepeatGroup aggregates repeat metrics for one outcome bucket.
type RepeatGroup struct {
	Repeated    Series // distinct repeated actions per episode
	Repetitions Series // total repetitions per episode
	Rates       Series // repetition rate (percent) per episode
	Steps       Series // episode length, for the scatter chart
}

// Add records one episode's metrics in the group.
func (g *RepeatGroup) Add(ep EpisodeRepeats) {
	g.Repeated.Add(float64(ep.RepeatedActions))
	g.Repetitions.Add(float64(ep.TotalRepetitions))
	g.Rates.Add(ep.RepeatPct)
	g.Steps.Add(float64(ep.TotalActions))
}

// NoRepeats returns how many episodes in the group had no repeated actions.
func (g *RepeatGroup) NoRepeats() int {
	return g.Repeated.CountZero()
}

// RepeatCollector computes per-episode repeated-action metrics and
// aggregates them overall and split by outcome.
type RepeatCollector struct {
	Episodes []EpisodeRepeats
	All      RepeatGroup
	Wins     RepeatGroup
	Losses   RepeatGroup
}

// NewRepeatCollector creates an empty repeat collector.
func NewRepeatCollector() *RepeatCollector {
	return &RepeatCollector{}
}

// Collect tallies action signatures for one episode.
func (c *RepeatCollector) Collect(ep *trajectory.Episode, ctx *CollectContext) {
	actions := ep.Trajectory.Actions
	if len(actions) == 0 {
		return
	}

	counts := make(map[string]int, len(actions))
	for _, action := range actions {
		counts[action.Signature()]++
	}

	repeated := 0
	repetitions := 0
	for _, n := range counts {
		if n > 1 {
			repeated++
			repetitions += n - 1
		}
	}

	metrics := EpisodeRepeats{
		File:             ep.File,
		Line:             ep.Line,
		TotalActions:     len(actions),
		UniqueActions:    len(counts),
		RepeatedActions:  repeated,
		TotalRepetitions: repetitions,
		RepeatPct:        float64(repetitions) / float64(len(actions)) * 100,
		Win:              ep.IsWin(ctx.WinThreshold),
	}

	c.Episodes = append(c.Episodes, metrics)
	c.All.Add(metrics)
	if metrics.Win {
		c.Wins.Add(metrics)
	} else {
		c.Losses.Add(metrics)
	}
}

// Finalize is called after all episodes are processed.
func (c *RepeatCollector) Finalize(ctx *CollectContext) {
	// Aggregates are maintained incrementally
}
