package report

import (
	"encoding/json"
	"io"

	"github.com/epilog-dev/epilog/pkg/stats"
)

// bucketJSON is the JSON shape of one outcome bucket.
type bucketJSON struct {
	Count    int     `json:"count,omitempty"`
	AvgSteps float64 `json:"avg_steps"`
	AvgRew   float64 `json:"avg_reward"`
	MinSteps float64 `json:"min_steps,omitempty"`
	MaxSteps float64 `json:"max_steps,omitempty"`
}

// summaryJSON is the JSON document for the summary report.
type summaryJSON struct {
	TotalEpisodes        int        `json:"total_episodes"`
	Wins                 int        `json:"wins"`
	Losses               int        `json:"losses"`
	LossesStepLimit      int        `json:"losses_step_limit"`
	LossesInvalidActions int        `json:"losses_invalid_actions"`
	WinRate              float64    `json:"win_rate"`
	Overall              bucketJSON `json:"overall"`
	WinStats             bucketJSON `json:"wins_stats"`
	LossStats            bucketJSON `json:"loss_stats"`
	LossStepLimitStats   bucketJSON `json:"loss_step_limit_stats"`
	LossInvalidStats     bucketJSON `json:"loss_invalid_actions_stats"`
}

func bucketToJSON(b *stats.SummaryBucket, withRange bool) bucketJSON {
	out := bucketJSON{
		Count:    b.Count,
		AvgSteps: b.Steps.Mean(),
		AvgRew:   b.TotalRewards.Mean(),
	}
	if withRange {
		out.MinSteps = b.Steps.Min()
		out.MaxSteps = b.Steps.Max()
	}
	return out
}

// WriteSummaryJSON writes the summary report as indented JSON.
func WriteSummaryJSON(w io.Writer, c *stats.SummaryCollector) error {
	doc := summaryJSON{
		TotalEpisodes:        c.All.Count,
		Wins:                 c.Wins.Count,
		Losses:               c.Losses.Count,
		LossesStepLimit:      c.LossTimeout.Count,
		LossesInvalidActions: c.LossExhaust.Count,
		WinRate:              c.WinRate(),
		Overall:              bucketToJSON(c.All, false),
		WinStats:             bucketToJSON(c.Wins, true),
		LossStats:            bucketToJSON(c.Losses, false),
		LossStepLimitStats:   bucketToJSON(c.LossTimeout, false),
		LossInvalidStats:     bucketToJSON(c.LossExhaust, true),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// repeatsGroupJSON is the aggregate for one outcome group in the repeats
// JSON document.
type repeatsGroupJSON struct {
	AvgDistinctRepeated float64 `json:"avg_distinct_repeated"`
	AvgTotalReps        float64 `json:"avg_total_reps"`
	AvgRepetitionRate   float64 `json:"avg_repetition_rate_pct"`
}

type repeatsJSON struct {
	Summary struct {
		TotalEpisodes int              `json:"total_episodes"`
		Wins          int              `json:"wins"`
		Losses        int              `json:"losses"`
		All           repeatsGroupJSON `json:"all"`
		WinGroup      repeatsGroupJSON `json:"win"`
		LossGroup     repeatsGroupJSON `json:"loss"`
	} `json:"summary"`
	EpisodeDetails []stats.EpisodeRepeats `json:"episode_details"`
}

func groupToJSON(g *stats.RepeatGroup) repeatsGroupJSON {
	return repeatsGroupJSON{
		AvgDistinctRepeated: g.Repeated.Mean(),
		AvgTotalReps:        g.Repetitions.Mean(),
		AvgRepetitionRate:   g.Rates.Mean(),
	}
}

// WriteRepeatsJSON writes the repeats report as indented JSON.
func WriteRepeatsJSON(w io.Writer, c *stats.RepeatCollector) error {
	var doc repeatsJSON
	doc.Summary.TotalEpisodes = c.All.Repeated.Len()
	doc.Summary.Wins = c.Wins.Repeated.Len()
	doc.Summary.Losses = c.Losses.Repeated.Len()
	doc.Summary.All = groupToJSON(&c.All)
	doc.Summary.WinGroup = groupToJSON(&c.Wins)
	doc.Summary.LossGroup = groupToJSON(&c.Losses)
	doc.EpisodeDetails = c.Episodes
	if doc.EpisodeDetails == nil {
		doc.EpisodeDetails = []stats.EpisodeRepeats{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCountsJSON writes the counting report as indented JSON.
func WriteCountsJSON(w io.Writer, c *stats.CountCollector) error {
	doc := struct {
		TotalEpisodes  int                         `json:"total_episodes"`
		Files          map[string]*stats.FileStats `json:"files"`
		ByAgent        map[string]int              `json:"by_agent"`
		ByRole         map[string]int              `json:"by_role"`
		ByEndReason    map[string]int              `json:"by_end_reason"`
		ByOutcome      map[string]int              `json:"by_outcome"`
		ByFinalAction  map[string]int              `json:"by_final_action"`
		EpisodeDetails []stats.EpisodeDetail       `json:"episode_details"`
	}{
		TotalEpisodes:  c.TotalEpisodes,
		Files:          c.Files,
		ByAgent:        c.ByAgent,
		ByRole:         c.ByRole,
		ByEndReason:    c.ByEndReason,
		ByOutcome:      c.ByOutcome,
		ByFinalAction:  c.ByFinalAction,
		EpisodeDetails: c.Details,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
