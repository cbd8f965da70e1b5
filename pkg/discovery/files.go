// Package discovery resolves user-supplied paths into trajectory files.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/epilog-dev/epilog/pkg/logger"
)

// ExpandPath handles ~ for home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ExpandArgs resolves each argument into trajectory files. Plain files
// pass through; directories contribute their *.jsonl files, sorted.
// Missing paths and empty directories are warned about and skipped so one
// bad argument does not sink a multi-file report. Resolving nothing at
// all is an error.
func ExpandArgs(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		path := ExpandPath(arg)

		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("File not found: %s", arg)
			fmt.Fprintf(os.Stderr, "Warning: File not found: %s\n", arg)
			continue
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(path, "*.jsonl"))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		if len(matches) == 0 {
			logger.Warn("No .jsonl files in %s", arg)
			fmt.Fprintf(os.Stderr, "Warning: no .jsonl files in %s\n", arg)
			continue
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no trajectory files found")
	}
	return files, nil
}
