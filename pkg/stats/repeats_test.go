package stats

import (
	"testing"
)

func TestRepeatCollector(t *testing.T) {
	// Episode 1 (win): A A A B  -> 1 repeated signature, 2 repetitions, 50%
	// Episode 2 (loss): A B C   -> no repeats
	jsonl := `{"trajectory":{"actions":[{"action_type":"A"},{"action_type":"A"},{"action_type":"A"},{"action_type":"B"}],"rewards":[-1,-1,-1,99]}}
{"trajectory":{"actions":[{"action_type":"A"},{"action_type":"B"},{"action_type":"C"}],"rewards":[-1,-1,-1]}}
`
	repeats := NewRepeatCollector()
	RunEpisodes(episodesFrom(t, jsonl), Options{}, repeats)

	if len(repeats.Episodes) != 2 {
		t.Fatalf("got %d episodes, want 2", len(repeats.Episodes))
	}

	first := repeats.Episodes[0]
	if first.TotalActions != 4 {
		t.Errorf("TotalActions = %d, want 4", first.TotalActions)
	}
	if first.UniqueActions != 2 {
		t.Errorf("UniqueActions = %d, want 2", first.UniqueActions)
	}
	if first.RepeatedActions != 1 {
		t.Errorf("RepeatedActions = %d, want 1", first.RepeatedActions)
	}
	if first.TotalRepetitions != 2 {
		t.Errorf("TotalRepetitions = %d, want 2", first.TotalRepetitions)
	}
	if first.RepeatPct != 50 {
		t.Errorf("RepeatPct = %v, want 50", first.RepeatPct)
	}
	if !first.Win {
		t.Error("first episode should be a win")
	}

	second := repeats.Episodes[1]
	if second.RepeatedActions != 0 || second.TotalRepetitions != 0 {
		t.Errorf("second episode should have no repeats, got %d/%d",
			second.RepeatedActions, second.TotalRepetitions)
	}

	if repeats.Wins.Repeated.Len() != 1 || repeats.Losses.Repeated.Len() != 1 {
		t.Errorf("win/loss split = %d/%d, want 1/1",
			repeats.Wins.Repeated.Len(), repeats.Losses.Repeated.Len())
	}
	if got := repeats.Losses.NoRepeats(); got != 1 {
		t.Errorf("Losses.NoRepeats() = %d, want 1", got)
	}
	if got := repeats.All.Repetitions.Mean(); got != 1 {
		t.Errorf("All mean repetitions = %v, want 1", got)
	}
}

func TestRepeatCollector_ParameterDistinguishesActions(t *testing.T) {
	// Same action_type but different parameters: not a repeat.
	jsonl := `{"trajectory":{"actions":[{"action_type":"ScanNetwork","parameters":{"target":"192.168.1.0/24"}},{"action_type":"ScanNetwork","parameters":{"target":"192.168.2.0/24"}}],"rewards":[-1,-1]}}
`
	repeats := NewRepeatCollector()
	RunEpisodes(episodesFrom(t, jsonl), Options{}, repeats)

	ep := repeats.Episodes[0]
	if ep.UniqueActions != 2 {
		t.Errorf("UniqueActions = %d, want 2", ep.UniqueActions)
	}
	if ep.RepeatedActions != 0 {
		t.Errorf("RepeatedActions = %d, want 0", ep.RepeatedActions)
	}
}
