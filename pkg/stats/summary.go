package stats

import (
	"sort"

	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// Loss categories. A loss that ran into the step limit is a timeout;
// anything shorter ended because the agent exhausted its invalid-action
// allowance.
const (
	LossStepLimit      = "step_limit"
	LossInvalidActions = "invalid_actions"
)

// DefaultStepLimit is the episode length at which a loss is classified as
// having reached the step limit.
const DefaultStepLimit = 100

// SummaryBucket aggregates episode scalars for one outcome class.
type SummaryBucket struct {
	Count        int
	Steps        Series
	TotalRewards Series
	FinalActions map[string]int
}

func newSummaryBucket() *SummaryBucket {
	return &SummaryBucket{FinalActions: make(map[string]int)}
}

func (b *SummaryBucket) add(ep *trajectory.Episode) {
	b.Count++
	b.Steps.Add(float64(ep.Steps()))
	b.TotalRewards.Add(ep.TotalReward())
	if action := ep.FinalAction(); action != nil {
		b.FinalActions[action.Type()]++
	}
}

// ActionCount is a final-action tally entry.
type ActionCount struct {
	Action string
	Count  int
}

// FinalActionsRanked returns the bucket's final-action tallies sorted by
// descending count.
func (b *SummaryBucket) FinalActionsRanked() []ActionCount {
	ranked := make([]ActionCount, 0, len(b.FinalActions))
	for action, count := range b.FinalActions {
		ranked = append(ranked, ActionCount{Action: action, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Action < ranked[j].Action
	})
	return ranked
}

// SummaryCollector computes the episode performance summary: win rate,
// loss categorization, and step/reward statistics per outcome.
type SummaryCollector struct {
	StepLimit int

	All         *SummaryBucket
	Wins        *SummaryBucket
	Losses      *SummaryBucket
	LossTimeout *SummaryBucket // losses that reached the step limit
	LossExhaust *SummaryBucket // losses that ran out of valid actions early
}

// NewSummaryCollector creates a summary collector. stepLimit <= 0 uses
// DefaultStepLimit.
func NewSummaryCollector(stepLimit int) *SummaryCollector {
	if stepLimit <= 0 {
		stepLimit = DefaultStepLimit
	}
	return &SummaryCollector{
		StepLimit:   stepLimit,
		All:         newSummaryBucket(),
		Wins:        newSummaryBucket(),
		Losses:      newSummaryBucket(),
		LossTimeout: newSummaryBucket(),
		LossExhaust: newSummaryBucket(),
	}
}

// Collect classifies one episode and updates the outcome buckets.
func (c *SummaryCollector) Collect(ep *trajectory.Episode, ctx *CollectContext) {
	c.All.add(ep)

	if ep.IsWin(ctx.WinThreshold) {
		c.Wins.add(ep)
		return
	}

	c.Losses.add(ep)
	if ep.Steps() >= c.StepLimit {
		c.LossTimeout.add(ep)
	} else {
		c.LossExhaust.add(ep)
	}
}

// Finalize is called after all episodes are processed.
func (c *SummaryCollector) Finalize(ctx *CollectContext) {}

// WinRate returns the percentage of episodes won, or 0 with no episodes.
func (c *SummaryCollector) WinRate() float64 {
	if c.All.Count == 0 {
		return 0
	}
	return float64(c.Wins.Count) / float64(c.All.Count) * 100
}
