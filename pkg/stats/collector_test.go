package stats

import (
	"strings"
	"testing"

	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// episodesFrom parses inline JSONL into episodes for collector tests.
func episodesFrom(t *testing.T, jsonl string) []*trajectory.Episode {
	t.Helper()
	episodes, _, err := trajectory.Read(strings.NewReader(jsonl), "test.jsonl")
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return episodes
}

const fixtureJSONL = `{"agent_name":"llm","agent_role":"Attacker","end_reason":"goal_reached","trajectory":{"states":[{},{}],"actions":[{"action_type":"ScanNetwork","parameters":{"target":"192.168.1.0/24"}},{"action_type":"ExploitService","parameters":{"target_host":"192.168.1.3"}}],"rewards":[-1,99]}}
{"agent_name":"llm","agent_role":"Attacker","end_reason":"max_steps","trajectory":{"states":[{}],"actions":[{"action_type":"FindServices","parameters":{"target_host":"192.168.1.3"}},{"action_type":"FindServices","parameters":{"target_host":"192.168.1.3"}},{"action_type":"FindServices","parameters":{"target_host":"192.168.1.3"}}],"rewards":[-1,-1,-1]}}
{"agent_name":"random","agent_role":"Attacker","trajectory":{"actions":[],"rewards":[]}}
`

func TestRunEpisodes_SkipsEmpty(t *testing.T) {
	episodes := episodesFrom(t, fixtureJSONL)

	ctx := RunEpisodes(episodes, Options{})
	if ctx.Episodes != 2 {
		t.Errorf("Episodes = %d, want 2", ctx.Episodes)
	}
	if ctx.SkippedEmpty != 1 {
		t.Errorf("SkippedEmpty = %d, want 1", ctx.SkippedEmpty)
	}
}

func TestRunEpisodes_IncludeEmpty(t *testing.T) {
	episodes := episodesFrom(t, fixtureJSONL)

	ctx := RunEpisodes(episodes, Options{IncludeEmpty: true})
	if ctx.Episodes != 3 {
		t.Errorf("Episodes = %d, want 3", ctx.Episodes)
	}
	if ctx.SkippedEmpty != 0 {
		t.Errorf("SkippedEmpty = %d, want 0", ctx.SkippedEmpty)
	}
}

func TestRunEpisodes_DefaultWinThreshold(t *testing.T) {
	episodes := episodesFrom(t, fixtureJSONL)

	summary := NewSummaryCollector(0)
	RunEpisodes(episodes, Options{}, summary)

	if summary.Wins.Count != 1 {
		t.Errorf("Wins = %d, want 1", summary.Wins.Count)
	}
	if summary.Losses.Count != 1 {
		t.Errorf("Losses = %d, want 1", summary.Losses.Count)
	}
}

func winThreshold(v float64) *float64 {
	return &v
}

func TestRunEpisodes_CustomWinThreshold(t *testing.T) {
	episodes := episodesFrom(t, fixtureJSONL)

	// With a threshold above 99 nothing wins.
	summary := NewSummaryCollector(0)
	RunEpisodes(episodes, Options{WinThreshold: winThreshold(100)}, summary)

	if summary.Wins.Count != 0 {
		t.Errorf("Wins = %d, want 0 at threshold 100", summary.Wins.Count)
	}
}

func TestRunEpisodes_ZeroWinThreshold(t *testing.T) {
	// An explicit threshold of 0 must not fall back to the default:
	// a final reward of 0 then counts as a win.
	jsonl := `{"trajectory":{"states":[{}],"actions":[{"action_type":"Wait"}],"rewards":[0]}}` + "\n"
	episodes := episodesFrom(t, jsonl)

	summary := NewSummaryCollector(0)
	RunEpisodes(episodes, Options{WinThreshold: winThreshold(0)}, summary)

	if summary.Wins.Count != 1 {
		t.Errorf("Wins = %d, want 1 at threshold 0", summary.Wins.Count)
	}
	if summary.Losses.Count != 0 {
		t.Errorf("Losses = %d, want 0 at threshold 0", summary.Losses.Count)
	}
}
