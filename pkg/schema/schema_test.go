package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "episodes.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestAnalyzeFile(t *testing.T) {
	path := writeFixture(t, `{"agent_name":"llm","trajectory":{"rewards":[-1,99],"actions":[{"action_type":"ScanNetwork"}]}}
{"agent_name":"random","trajectory":{"rewards":[],"actions":[]}}

not json
`)

	report, err := AnalyzeFile(path, 100)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	if report.TotalLines != 3 {
		t.Errorf("TotalLines = %d, want 3", report.TotalLines)
	}
	if report.Analyzed != 2 {
		t.Errorf("Analyzed = %d, want 2", report.Analyzed)
	}
	if report.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", report.ParseErrors)
	}

	wantPaths := []string{
		"agent_name",
		"trajectory",
		"trajectory.actions",
		"trajectory.actions.action_type",
		"trajectory.rewards",
	}
	if diff := cmp.Diff(wantPaths, report.SortedPaths()); diff != "" {
		t.Errorf("SortedPaths mismatch (-want +got):\n%s", diff)
	}

	if got := report.Paths["agent_name"].Labels(); len(got) != 1 || got[0] != "string" {
		t.Errorf("agent_name types = %v, want [string]", got)
	}

	// rewards is list[int] in one record and list[empty] in the other
	gotRewards := report.Paths["trajectory.rewards"].Labels()
	wantRewards := []string{"list[empty]", "list[int]"}
	if diff := cmp.Diff(wantRewards, gotRewards); diff != "" {
		t.Errorf("rewards types mismatch (-want +got):\n%s", diff)
	}

	if got := report.SampleValue("agent_name"); got != "llm" {
		t.Errorf("SampleValue(agent_name) = %v, want llm", got)
	}
	if got := report.SampleValue("trajectory.missing"); got != nil {
		t.Errorf("SampleValue of missing path = %v, want nil", got)
	}
}

func TestAnalyzeFile_MaxLines(t *testing.T) {
	path := writeFixture(t, `{"a":1}
{"a":2}
{"a":3}
`)
	report, err := AnalyzeFile(path, 2)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if report.Analyzed != 2 {
		t.Errorf("Analyzed = %d, want 2", report.Analyzed)
	}
	if report.TotalLines != 3 {
		t.Errorf("TotalLines = %d, want 3 (counted past the cap)", report.TotalLines)
	}
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"null", nil, "null"},
		{"bool", true, "bool"},
		{"whole number", float64(7), "int"},
		{"fraction", 1.5, "float"},
		{"string", "x", "string"},
		{"object", map[string]interface{}{}, "object"},
		{"empty list", []interface{}{}, "list[empty]"},
		{"int list", []interface{}{float64(1), float64(2)}, "list[int]"},
		{"mixed list", []interface{}{float64(1), "x"}, "list[mixed: int, string]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeLabel(tt.v); got != tt.want {
				t.Errorf("TypeLabel(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
