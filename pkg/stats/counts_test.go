package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCountCollector(t *testing.T) {
	jsonl := `{"agent_name":"llm","agent_role":"Attacker","end_reason":"goal_reached","trajectory":{"states":[{"known_hosts":[{"ip":"192.168.1.2"},{"ip":"192.168.1.3"},{"ip":"192.168.1.3"}],"controlled_hosts":[{"ip":"192.168.2.2"}],"known_networks":[{"ip":"192.168.1.0","mask":24}]}],"actions":[{"action_type":"ExfiltrateData"}],"rewards":[99]}}
{"agent_name":"llm","agent_role":"Attacker","end_reason":"max_steps","trajectory":{"states":[{}],"actions":[{"action_type":"FindServices"}],"rewards":[-1]}}
{"agent_name":"random","agent_role":"Defender","trajectory":{"actions":[],"rewards":[]}}
`
	counts := NewCountCollector()
	RunEpisodes(episodesFrom(t, jsonl), Options{IncludeEmpty: true}, counts)

	if counts.TotalEpisodes != 3 {
		t.Errorf("TotalEpisodes = %d, want 3", counts.TotalEpisodes)
	}

	wantOutcome := map[string]int{"win": 1, "loss": 1, "no_action": 1}
	if diff := cmp.Diff(wantOutcome, counts.ByOutcome); diff != "" {
		t.Errorf("ByOutcome mismatch (-want +got):\n%s", diff)
	}

	wantAgent := map[string]int{"llm": 2, "random": 1}
	if diff := cmp.Diff(wantAgent, counts.ByAgent); diff != "" {
		t.Errorf("ByAgent mismatch (-want +got):\n%s", diff)
	}

	wantFinal := map[string]int{"ExfiltrateData": 1, "FindServices": 1}
	if diff := cmp.Diff(wantFinal, counts.ByFinalAction); diff != "" {
		t.Errorf("ByFinalAction mismatch (-want +got):\n%s", diff)
	}

	fs := counts.Files["test.jsonl"]
	if fs == nil {
		t.Fatal("missing file stats for test.jsonl")
	}
	if fs.Episodes != 3 || fs.TotalActions != 2 || fs.TotalStates != 2 {
		t.Errorf("file stats = %+v", fs)
	}

	first := counts.Details[0]
	if first.KnownHosts != 2 {
		t.Errorf("KnownHosts = %d, want 2 (duplicate IP collapsed)", first.KnownHosts)
	}
	if first.ControlledHosts != 1 || first.KnownNetworks != 1 {
		t.Errorf("ControlledHosts/KnownNetworks = %d/%d, want 1/1",
			first.ControlledHosts, first.KnownNetworks)
	}
	if first.Outcome != OutcomeWin {
		t.Errorf("Outcome = %q, want win", first.Outcome)
	}

	third := counts.Details[2]
	if third.Outcome != OutcomeNoAction {
		t.Errorf("Outcome = %q, want no_action", third.Outcome)
	}
	if third.FinalReward != nil {
		t.Errorf("FinalReward = %v, want nil", *third.FinalReward)
	}
}
