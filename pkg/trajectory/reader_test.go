package trajectory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSONL = `{"agent_name":"llm_qlearning","agent_role":"Attacker","end_reason":"goal_reached","trajectory":{"states":[{"known_hosts":[{"ip":"192.168.1.2"}],"controlled_hosts":[{"ip":"192.168.2.2"}]}],"actions":[{"action_type":"ScanNetwork","parameters":{"target_network":"192.168.1.0/24"}}],"rewards":[99]}}

{"agent_name":"llm_qlearning","agent_role":"Attacker","trajectory":{"states":[],"actions":[],"rewards":[]}}
not json at all
{"agent_name":"random","agent_role":"Attacker","end_reason":"max_steps","trajectory":{"actions":[{"action_type":"FindServices"},{"action_type":"FindServices"}],"rewards":[-1,-1]}}
`

func TestRead(t *testing.T) {
	episodes, stats, err := Read(strings.NewReader(sampleJSONL), "test.jsonl")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if stats.Episodes != 3 {
		t.Errorf("Episodes = %d, want 3", stats.Episodes)
	}
	if stats.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", stats.ParseErrors)
	}
	if stats.Lines != 4 {
		t.Errorf("Lines = %d, want 4 (blank line skipped)", stats.Lines)
	}

	if len(episodes) != 3 {
		t.Fatalf("got %d episodes, want 3", len(episodes))
	}

	first := episodes[0]
	if first.AgentName != "llm_qlearning" {
		t.Errorf("AgentName = %q, want llm_qlearning", first.AgentName)
	}
	if first.Line != 1 {
		t.Errorf("Line = %d, want 1", first.Line)
	}
	if !first.IsWin(50) {
		t.Error("first episode should be a win (final reward 99)")
	}
	if first.FinalAction().Type() != "ScanNetwork" {
		t.Errorf("final action type = %q, want ScanNetwork", first.FinalAction().Type())
	}

	second := episodes[1]
	if second.HasActions() {
		t.Error("second episode should have no actions")
	}

	third := episodes[2]
	if third.IsWin(50) {
		t.Error("third episode should be a loss")
	}
	if third.Steps() != 2 {
		t.Errorf("Steps = %d, want 2", third.Steps())
	}
	if got := third.TotalReward(); got != -2 {
		t.Errorf("TotalReward = %v, want -2", got)
	}
	if third.Line != 5 {
		t.Errorf("Line = %d, want 5", third.Line)
	}
}

func TestReadFiles(t *testing.T) {
	tmpDir := t.TempDir()

	fileA := filepath.Join(tmpDir, "a.jsonl")
	fileB := filepath.Join(tmpDir, "b.jsonl")
	line := `{"trajectory":{"actions":[{"action_type":"X"}],"rewards":[99]}}` + "\n"
	os.WriteFile(fileA, []byte(line), 0644)
	os.WriteFile(fileB, []byte(line+line), 0644)

	episodes, stats, err := ReadFiles([]string{fileA, fileB})
	if err != nil {
		t.Fatalf("ReadFiles failed: %v", err)
	}
	if stats.Episodes != 3 {
		t.Errorf("Episodes = %d, want 3", stats.Episodes)
	}
	if episodes[0].File != fileA || episodes[2].File != fileB {
		t.Errorf("episode file attribution wrong: %s, %s", episodes[0].File, episodes[2].File)
	}
}

func TestReadFiles_MissingFile(t *testing.T) {
	_, _, err := ReadFiles([]string{filepath.Join(t.TempDir(), "nope.jsonl")})
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEpisode_FinalReward(t *testing.T) {
	ep := &Episode{}
	if _, ok := ep.FinalReward(); ok {
		t.Error("empty episode should have no final reward")
	}

	ep.Trajectory.Rewards = []float64{-1, -1, 99}
	final, ok := ep.FinalReward()
	if !ok || final != 99 {
		t.Errorf("FinalReward = %v, %v, want 99, true", final, ok)
	}
}
