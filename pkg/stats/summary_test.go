package stats

import (
	"fmt"
	"strings"
	"testing"
)

// lossEpisode builds a JSONL line for a loss with n identical actions.
func lossEpisode(n int) string {
	actions := make([]string, n)
	rewards := make([]string, n)
	for i := range actions {
		actions[i] = `{"action_type":"FindServices"}`
		rewards[i] = "-1"
	}
	return fmt.Sprintf(`{"trajectory":{"actions":[%s],"rewards":[%s]}}`,
		strings.Join(actions, ","), strings.Join(rewards, ","))
}

func TestSummaryCollector_LossCategories(t *testing.T) {
	jsonl := strings.Join([]string{
		`{"trajectory":{"actions":[{"action_type":"ExploitService"}],"rewards":[99]}}`, // win
		lossEpisode(100), // step limit
		lossEpisode(120), // step limit
		lossEpisode(12),  // invalid actions exhausted
	}, "\n") + "\n"

	summary := NewSummaryCollector(100)
	RunEpisodes(episodesFrom(t, jsonl), Options{}, summary)

	if summary.All.Count != 4 {
		t.Errorf("All.Count = %d, want 4", summary.All.Count)
	}
	if summary.Wins.Count != 1 {
		t.Errorf("Wins.Count = %d, want 1", summary.Wins.Count)
	}
	if summary.LossTimeout.Count != 2 {
		t.Errorf("LossTimeout.Count = %d, want 2", summary.LossTimeout.Count)
	}
	if summary.LossExhaust.Count != 1 {
		t.Errorf("LossExhaust.Count = %d, want 1", summary.LossExhaust.Count)
	}
	if got := summary.WinRate(); got != 25 {
		t.Errorf("WinRate = %v, want 25", got)
	}

	if got := summary.LossExhaust.Steps.Max(); got != 12 {
		t.Errorf("LossExhaust max steps = %v, want 12", got)
	}
	if got := summary.Wins.TotalRewards.Mean(); got != 99 {
		t.Errorf("Wins mean reward = %v, want 99", got)
	}
}

func TestSummaryBucket_FinalActionsRanked(t *testing.T) {
	jsonl := strings.Join([]string{
		`{"trajectory":{"actions":[{"action_type":"ExploitService"}],"rewards":[99]}}`,
		`{"trajectory":{"actions":[{"action_type":"ExfiltrateData"}],"rewards":[100]}}`,
		`{"trajectory":{"actions":[{"action_type":"ExfiltrateData"}],"rewards":[100]}}`,
	}, "\n") + "\n"

	summary := NewSummaryCollector(0)
	RunEpisodes(episodesFrom(t, jsonl), Options{}, summary)

	ranked := summary.Wins.FinalActionsRanked()
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked actions, want 2", len(ranked))
	}
	if ranked[0].Action != "ExfiltrateData" || ranked[0].Count != 2 {
		t.Errorf("top action = %+v, want ExfiltrateData x2", ranked[0])
	}
}

func TestSummaryCollector_EmptyWinRate(t *testing.T) {
	summary := NewSummaryCollector(0)
	RunEpisodes(nil, Options{}, summary)
	if got := summary.WinRate(); got != 0 {
		t.Errorf("WinRate on empty = %v, want 0", got)
	}
}
