// Package storage routes extracted tables to CSV files inside the results
// directory, keeping filenames unique within a run.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mgranica/pdf-reader/titles"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// Writer writes one CSV file per table under <resultsPath>/results.
type Writer struct {
	dir  string
	used map[string]int
}

// NewWriter creates the results directory if needed and returns a Writer
// rooted there.
func NewWriter(resultsPath string) (*Writer, error) {
	dir := filepath.Join(resultsPath, "results")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Writer{dir: dir, used: make(map[string]int)}, nil
}

// WriteTable saves one table as CSV, column order as detected, and returns
// the path written.
func (w *Writer) WriteTable(t titles.TitledTable) (string, error) {
	path := filepath.Join(w.dir, w.uniqueName(t)+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, row := range t.Table.Rows {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return path, nil
}

// uniqueName derives a base filename from the table title, falling back to
// the table's document-wide ordinal when it has none, and appends a numeric
// suffix when a name repeats within the run.
func (w *Writer) uniqueName(t titles.TitledTable) string {
	base := Sanitize(t.Title)
	if base == "" {
		base = fmt.Sprintf("table_%d", t.Ordinal)
	}
	w.used[base]++
	if n := w.used[base]; n > 1 {
		return fmt.Sprintf("%s_%d", base, n)
	}
	return base
}

// Sanitize converts a table title to a filesystem-safe base name: lowercased,
// spaces replaced with underscores, anything outside [a-z0-9._-] stripped.
// Returns "" when nothing safe remains.
func Sanitize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._-")
}
