package trajectory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/epilog-dev/epilog/pkg/logger"
)

// Trajectory lines can be very large (full game states per step), so the
// scanner buffer is raised well past the 64KB default.
const maxLineSize = 10 * 1024 * 1024

// ReadStats counts what happened during a read pass.
type ReadStats struct {
	Lines       int // non-blank lines seen
	Episodes    int // successfully parsed episodes
	ParseErrors int // malformed lines skipped
}

// Read parses every episode from r. Blank lines are skipped; malformed
// lines are logged with their line number and skipped. The name is used
// for warnings and recorded on each episode.
func Read(r io.Reader, name string) ([]*Episode, *ReadStats, error) {
	stats := &ReadStats{}
	var episodes []*Episode

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		var ep Episode
		if err := json.Unmarshal([]byte(line), &ep); err != nil {
			stats.ParseErrors++
			logger.Warn("Skipping malformed line %d in %s: %v", lineNum, name, err)
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed line %d in %s: %v\n", lineNum, name, err)
			continue
		}

		ep.File = name
		ep.Line = lineNum
		episodes = append(episodes, &ep)
		stats.Episodes++
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", name, err)
	}

	return episodes, stats, nil
}

// ReadRawFile parses every line of a trajectory JSONL file into untyped
// maps, preserving fields the Episode model does not know about. Used by
// deep-inspection views.
func ReadRawFile(path string) ([]map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	var records []map[string]interface{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record map[string]interface{}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			logger.Warn("Skipping malformed line %d in %s: %v", lineNum, path, err)
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed line %d in %s: %v\n", lineNum, path, err)
			continue
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// ReadFile parses every episode in a trajectory JSONL file.
func ReadFile(path string) ([]*Episode, *ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, path)
}

// ReadFiles parses episodes from multiple files in order, merging the
// per-file stats.
func ReadFiles(paths []string) ([]*Episode, *ReadStats, error) {
	total := &ReadStats{}
	var episodes []*Episode

	for _, path := range paths {
		eps, stats, err := ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		episodes = append(episodes, eps...)
		total.Lines += stats.Lines
		total.Episodes += stats.Episodes
		total.ParseErrors += stats.ParseErrors
	}

	return episodes, total, nil
}
