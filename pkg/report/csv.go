package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/epilog-dev/epilog/pkg/stats"
)

// WriteRepeatsCSV exports the per-episode repeat metrics as a flat CSV.
func WriteRepeatsCSV(w io.Writer, episodes []stats.EpisodeRepeats) error {
	cw := csv.NewWriter(w)

	header := []string{
		"episode", "outcome", "total_actions", "unique_actions",
		"num_repeated_actions", "total_repetitions", "repeat_percentage",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i, ep := range episodes {
		outcome := "loss"
		if ep.Win {
			outcome = "win"
		}
		record := []string{
			strconv.Itoa(i + 1),
			outcome,
			strconv.Itoa(ep.TotalActions),
			strconv.Itoa(ep.UniqueActions),
			strconv.Itoa(ep.RepeatedActions),
			strconv.Itoa(ep.TotalRepetitions),
			strconv.FormatFloat(ep.RepeatPct, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
