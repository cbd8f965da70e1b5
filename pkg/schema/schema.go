// Package schema inspects the structure of JSONL files by sampling records
// and collecting the set of types observed at each field path.
package schema

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Same scanner sizing as the trajectory reader; records can be large.
const maxLineSize = 10 * 1024 * 1024

// DefaultMaxLines limits how many records are structurally analyzed.
const DefaultMaxLines = 100

// sampleRecords is how many records are kept for example values.
const sampleRecords = 3

// TypeSet is the set of type labels seen at one field path.
type TypeSet map[string]struct{}

// Add inserts a type label.
func (ts TypeSet) Add(label string) {
	ts[label] = struct{}{}
}

// Labels returns the sorted type labels.
func (ts TypeSet) Labels() []string {
	labels := make([]string, 0, len(ts))
	for l := range ts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// FileReport is the structural analysis of one JSONL file.
type FileReport struct {
	Path        string
	TotalLines  int // all non-blank lines in the file
	Analyzed    int // records structurally analyzed (capped at max lines)
	ParseErrors int

	// Paths maps dotted field paths (e.g. "trajectory.actions") to the
	// types observed there across analyzed records.
	Paths map[string]TypeSet

	// Samples holds the first few parsed records for example values.
	Samples []map[string]interface{}
}

// AnalyzeFile analyzes up to maxLines records of a JSONL file. The full
// file is still scanned so TotalLines is exact. maxLines <= 0 uses
// DefaultMaxLines.
func AnalyzeFile(path string, maxLines int) (*FileReport, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	report := &FileReport{
		Path:  path,
		Paths: make(map[string]TypeSet),
	}

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		report.TotalLines++

		if report.Analyzed >= maxLines {
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			report.ParseErrors++
			continue
		}
		report.Analyzed++

		if len(report.Samples) < sampleRecords {
			report.Samples = append(report.Samples, obj)
		}

		walk(obj, "", report.Paths)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	return report, nil
}

// SortedPaths returns all observed field paths in lexical order.
func (r *FileReport) SortedPaths() []string {
	paths := make([]string, 0, len(r.Paths))
	for p := range r.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// SampleValue resolves a dotted path against the first sample record.
// Returns nil if any segment is missing.
func (r *FileReport) SampleValue(path string) interface{} {
	if len(r.Samples) == 0 {
		return nil
	}
	var value interface{} = r.Samples[0]
	for _, key := range strings.Split(path, ".") {
		obj, ok := value.(map[string]interface{})
		if !ok {
			return nil
		}
		value, ok = obj[key]
		if !ok {
			return nil
		}
	}
	return value
}

// walk records the type of every field, recursing into objects and into
// the first few elements of lists of objects.
func walk(obj map[string]interface{}, prefix string, into map[string]TypeSet) {
	for key, value := range obj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		ts, ok := into[path]
		if !ok {
			ts = make(TypeSet)
			into[path] = ts
		}
		ts.Add(TypeLabel(value))

		switch v := value.(type) {
		case map[string]interface{}:
			walk(v, path, into)
		case []interface{}:
			// Sample the first few elements of object lists
			for i, item := range v {
				if i >= 3 {
					break
				}
				if nested, ok := item.(map[string]interface{}); ok {
					walk(nested, path, into)
				}
			}
		}
	}
}

// TypeLabel describes a decoded JSON value. Lists report their element
// type, sampled from the first few elements; whole numbers report as int
// since encoding/json decodes all numbers to float64.
func TypeLabel(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		if val == float64(int64(val)) {
			return "int"
		}
		return "float"
	case string:
		return "string"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		if len(val) == 0 {
			return "list[empty]"
		}
		seen := make(map[string]struct{})
		for i, item := range val {
			if i >= 5 {
				break
			}
			seen[TypeLabel(item)] = struct{}{}
		}
		if len(seen) == 1 {
			for label := range seen {
				return "list[" + label + "]"
			}
		}
		labels := make([]string, 0, len(seen))
		for label := range seen {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		return "list[mixed: " + strings.Join(labels, ", ") + "]"
	default:
		return fmt.Sprintf("%T", v)
	}
}
