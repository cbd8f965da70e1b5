// Package stats computes descriptive statistics over trajectory episodes
// with a single-pass collector pipeline.
package stats

import (
	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// DefaultWinThreshold is the final reward at or above which an episode
// counts as a win. Successful games end with a large terminal reward
// (99 or 100); everything else is a loss.
const DefaultWinThreshold = 50

// CollectContext provides shared state during the single-pass collection.
type CollectContext struct {
	// WinThreshold classifies episodes: final reward >= threshold is a win.
	WinThreshold float64

	// Episodes counts episodes delivered to collectors.
	Episodes int

	// SkippedEmpty counts zero-action episodes withheld from collectors.
	SkippedEmpty int
}

// Collector accumulates metrics over episodes.
// Each report type implements this interface.
type Collector interface {
	// Collect is called once per episode during the pass.
	Collect(ep *trajectory.Episode, ctx *CollectContext)

	// Finalize is called after all episodes have been processed.
	// Use this for post-processing like computing distributions.
	Finalize(ctx *CollectContext)
}

// Options controls a collection pass.
type Options struct {
	// WinThreshold overrides DefaultWinThreshold when non-nil. A pointer
	// so an explicit threshold of 0 is distinct from "use the default".
	WinThreshold *float64

	// IncludeEmpty delivers zero-action episodes to collectors instead of
	// skipping them. Episode counting wants them; every other report
	// excludes them.
	IncludeEmpty bool
}

// Run streams every episode from the given files through the collectors.
func Run(paths []string, opts Options, collectors ...Collector) (*CollectContext, error) {
	episodes, _, err := trajectory.ReadFiles(paths)
	if err != nil {
		return nil, err
	}
	return RunEpisodes(episodes, opts, collectors...), nil
}

// RunEpisodes feeds already-parsed episodes through the collectors.
func RunEpisodes(episodes []*trajectory.Episode, opts Options, collectors ...Collector) *CollectContext {
	ctx := &CollectContext{WinThreshold: DefaultWinThreshold}
	if opts.WinThreshold != nil {
		ctx.WinThreshold = *opts.WinThreshold
	}

	for _, ep := range episodes {
		if !ep.HasActions() && !opts.IncludeEmpty {
			ctx.SkippedEmpty++
			continue
		}
		ctx.Episodes++
		for _, c := range collectors {
			c.Collect(ep, ctx)
		}
	}

	for _, c := range collectors {
		c.Finalize(ctx)
	}

	return ctx
}
