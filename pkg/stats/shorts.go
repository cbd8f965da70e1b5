package stats

import (
	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// DefaultShortLossSteps is the step budget at or under which a losing
// episode is considered suspiciously short.
const DefaultShortLossSteps = 50

// ShortLossCollector gathers losing episodes that ended within MaxSteps
// actions, keeping the full episode for inspection.
type ShortLossCollector struct {
	MaxSteps int
	Matches  []*trajectory.Episode
}

// NewShortLossCollector creates a short-loss collector. maxSteps <= 0 uses
// DefaultShortLossSteps.
func NewShortLossCollector(maxSteps int) *ShortLossCollector {
	if maxSteps <= 0 {
		maxSteps = DefaultShortLossSteps
	}
	return &ShortLossCollector{MaxSteps: maxSteps}
}

// Collect keeps losses with at most MaxSteps actions.
func (c *ShortLossCollector) Collect(ep *trajectory.Episode, ctx *CollectContext) {
	if _, ok := ep.FinalReward(); !ok {
		return
	}
	if ep.IsWin(ctx.WinThreshold) {
		return
	}
	if ep.Steps() <= c.MaxSteps {
		c.Matches = append(c.Matches, ep)
	}
}

// Finalize is called after all episodes are processed.
func (c *ShortLossCollector) Finalize(ctx *CollectContext) {}
