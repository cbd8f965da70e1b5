package stats

import (
	"sort"

	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// DefaultEarlyThreshold is the step count below which a non-win episode
// counts as an early termination, slightly under the usual 100-step limit
// to leave room for off-by-a-few endings.
const DefaultEarlyThreshold = 95

// EarlyEpisode describes one episode in the early-termination scan.
type EarlyEpisode struct {
	File        string
	Line        int
	NumActions  int
	FinalReward *float64
	TotalReward float64
	EndReason   string
	FinalAction string
}

// EarlyCollector finds non-win episodes that ended before the step
// threshold and tallies their end reasons and final actions.
type EarlyCollector struct {
	Threshold int

	Wins   int
	Normal int // losses at or past the threshold
	Early  []EarlyEpisode

	EndReasons   map[string]int
	FinalActions map[string]int
}

// NewEarlyCollector creates an early-termination collector. threshold <= 0
// uses DefaultEarlyThreshold.
func NewEarlyCollector(threshold int) *EarlyCollector {
	if threshold <= 0 {
		threshold = DefaultEarlyThreshold
	}
	return &EarlyCollector{
		Threshold:    threshold,
		EndReasons:   make(map[string]int),
		FinalActions: make(map[string]int),
	}
}

// Collect classifies one episode.
func (c *EarlyCollector) Collect(ep *trajectory.Episode, ctx *CollectContext) {
	if ep.IsWin(ctx.WinThreshold) {
		c.Wins++
		return
	}
	if ep.Steps() >= c.Threshold {
		c.Normal++
		return
	}

	info := EarlyEpisode{
		File:        ep.File,
		Line:        ep.Line,
		NumActions:  ep.Steps(),
		TotalReward: ep.TotalReward(),
		EndReason:   ep.EndReason,
	}
	if final, ok := ep.FinalReward(); ok {
		info.FinalReward = &final
	}
	if action := ep.FinalAction(); action != nil {
		info.FinalAction = action.Type()
	}

	c.Early = append(c.Early, info)
	c.EndReasons[info.EndReason]++
	c.FinalActions[info.FinalAction]++
}

// Finalize sorts the early terminations by episode length.
func (c *EarlyCollector) Finalize(ctx *CollectContext) {
	sort.Slice(c.Early, func(i, j int) bool {
		return c.Early[i].NumActions < c.Early[j].NumActions
	})
}

// Steps returns the action counts of all early terminations as a series.
func (c *EarlyCollector) Steps() *Series {
	var s Series
	for _, ep := range c.Early {
		s.Add(float64(ep.NumActions))
	}
	return &s
}
