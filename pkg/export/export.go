// Package export converts per-network episode outcome JSON files into a
// single CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/epilog-dev/epilog/pkg/logger"
)

// filePlan maps each graph-data file to its network and episode offset.
// Files with a "b" suffix hold the second half of a split network and
// get their episode numbers shifted past the first file's range.
type planEntry struct {
	Network int
	File    string
	Offset  int
}

var filePlan = []planEntry{
	{1, "episode_data_new_ips_1.json", 0},
	{2, "episode_data_new_ips_2.json", 0},
	{2, "episode_data_new_ips_2b.json", 100},
	{3, "episode_data_new_ips_3.json", 0},
	{4, "episode_data_new_ips_4.json", 0},
	{5, "episode_data_new_ips_5.json", 0},
	{5, "episode_data_new_ips_5b.json", 100},
}

// jsonEpisode is one entry of a graph-data file.
type jsonEpisode struct {
	Episode   int    `json:"episode"`
	EndReason string `json:"end_reason"`
}

// Row is one output record.
type Row struct {
	Network int
	Episode int
	Outcome string
}

// successReason is the end reason value that marks a won episode.
const successReason = "AgentStatus.Success"

func outcome(endReason string) string {
	if endReason == successReason {
		return "win"
	}
	return "fail"
}

// Collect reads every graph-data file under dataDir per the file plan.
// Missing files are logged and skipped. Rows come back sorted by
// network then episode.
func Collect(dataDir string, progress io.Writer) ([]Row, error) {
	var rows []Row
	for _, entry := range filePlan {
		path := filepath.Join(dataDir, entry.File)

		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			logger.Warn("graph-data file %s not found, skipping", path)
			fmt.Fprintf(progress, "WARNING: %s not found, skipping.\n", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var episodes []jsonEpisode
		if err := json.Unmarshal(data, &episodes); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		for _, ep := range episodes {
			rows = append(rows, Row{
				Network: entry.Network,
				Episode: ep.Episode + entry.Offset,
				Outcome: outcome(ep.EndReason),
			})
		}
		logger.Info("loaded %d episodes from %s (network %d, offset %d)",
			len(episodes), entry.File, entry.Network, entry.Offset)
		fmt.Fprintf(progress, "Loaded %3d episodes from %s (network %d, offset %d)\n",
			len(episodes), entry.File, entry.Network, entry.Offset)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Network != rows[j].Network {
			return rows[i].Network < rows[j].Network
		}
		return rows[i].Episode < rows[j].Episode
	})

	return rows, nil
}

// WriteCSV writes the collected rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"network", "episode", "outcome"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Network),
			strconv.Itoa(r.Episode),
			r.Outcome,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
