package stats

import (
	"testing"
)

func TestSeries(t *testing.T) {
	var s Series
	for _, v := range []float64{4, 0, 2, 6} {
		s.Add(v)
	}

	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
	if got := s.Mean(); got != 3 {
		t.Errorf("Mean = %v, want 3", got)
	}
	if got := s.Min(); got != 0 {
		t.Errorf("Min = %v, want 0", got)
	}
	if got := s.Max(); got != 6 {
		t.Errorf("Max = %v, want 6", got)
	}
	if got := s.Sum(); got != 12 {
		t.Errorf("Sum = %v, want 12", got)
	}
	if got := s.CountZero(); got != 1 {
		t.Errorf("CountZero = %d, want 1", got)
	}
}

func TestSeries_Empty(t *testing.T) {
	var s Series
	if s.Mean() != 0 || s.Min() != 0 || s.Max() != 0 {
		t.Errorf("empty series should report zeros, got %v/%v/%v", s.Mean(), s.Min(), s.Max())
	}
	q1, med, q3 := s.Quartiles()
	if q1 != 0 || med != 0 || q3 != 0 {
		t.Errorf("empty quartiles = %v/%v/%v, want zeros", q1, med, q3)
	}
}

func TestSeries_Quartiles(t *testing.T) {
	var s Series
	for v := 1.0; v <= 8; v++ {
		s.Add(v)
	}
	q1, med, q3 := s.Quartiles()
	if !(q1 <= med && med <= q3) {
		t.Errorf("quartiles out of order: %v %v %v", q1, med, q3)
	}
	if med < 4 || med > 5 {
		t.Errorf("median = %v, want within [4,5]", med)
	}
}

func TestEarlyCollector(t *testing.T) {
	jsonl := lossEpisode(10) + "\n" + lossEpisode(100) + "\n" +
		`{"trajectory":{"actions":[{"action_type":"ExploitService"}],"rewards":[99]}}` + "\n" +
		lossEpisode(3) + "\n"

	early := NewEarlyCollector(95)
	RunEpisodes(episodesFrom(t, jsonl), Options{}, early)

	if early.Wins != 1 {
		t.Errorf("Wins = %d, want 1", early.Wins)
	}
	if early.Normal != 1 {
		t.Errorf("Normal = %d, want 1", early.Normal)
	}
	if len(early.Early) != 2 {
		t.Fatalf("Early = %d, want 2", len(early.Early))
	}
	// Sorted by length ascending.
	if early.Early[0].NumActions != 3 || early.Early[1].NumActions != 10 {
		t.Errorf("early sorted = %d,%d, want 3,10",
			early.Early[0].NumActions, early.Early[1].NumActions)
	}
	if got := early.Steps().Mean(); got != 6.5 {
		t.Errorf("mean early steps = %v, want 6.5", got)
	}
}

func TestShortLossCollector(t *testing.T) {
	jsonl := lossEpisode(5) + "\n" + lossEpisode(80) + "\n" +
		`{"trajectory":{"actions":[{"action_type":"ExploitService"}],"rewards":[99]}}` + "\n"

	shorts := NewShortLossCollector(50)
	RunEpisodes(episodesFrom(t, jsonl), Options{}, shorts)

	if len(shorts.Matches) != 1 {
		t.Fatalf("Matches = %d, want 1", len(shorts.Matches))
	}
	if shorts.Matches[0].Steps() != 5 {
		t.Errorf("matched episode steps = %d, want 5", shorts.Matches[0].Steps())
	}
}
