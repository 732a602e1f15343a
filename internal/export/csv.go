// Package export renders a finished report as a flat CSV for download or
// archiving.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"smileaudit/internal/domain"
)

// shortLabels maps the numbered on-screen section titles to the compact
// labels used in the export.
var shortLabels = map[string]string{
	"1) Practice Overview":                  "Practice Overview",
	"2) Online Presence & Visibility":       "Visibility",
	"3) Patient Reputation & Feedback":      "Reputation",
	"4) Marketing Signals":                  "Marketing",
	"5) Patient Experience & Accessibility": "Experience",
	"6) Competitive Benchmark":              "Competitive",
}

// WriteCSV writes the report as Section,Metric,Result,Advice rows followed by
// the four Summary score rows. Absent values render as their display text so
// the file reads the same as the on-screen report.
func WriteCSV(w io.Writer, rep domain.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Section", "Metric", "Result", "Advice"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, sec := range rep.Sections {
		label := shortLabels[sec.Title]
		if label == "" {
			label = sec.Title
		}
		for _, m := range sec.Metrics {
			if err := cw.Write([]string{label, m.Name, m.Value.String(), m.Advice}); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	summary := [][2]string{
		{"Smile Score", formatScore(rep.Score.Composite)},
		{"Visibility Bucket", formatScore(rep.Score.Visibility)},
		{"Reputation Bucket", formatScore(rep.Score.Reputation)},
		{"Experience Bucket", formatScore(rep.Score.Experience)},
	}
	for _, row := range summary {
		if err := cw.Write([]string{"Summary", row[0], row[1], ""}); err != nil {
			return fmt.Errorf("csv: write summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report CSV to path, creating intermediate directories.
func WriteFile(path string, rep domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	if err := WriteCSV(f, rep); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Filename derives the download name from the clinic name, falling back to
// "clinic" when it is blank.
func Filename(clinicName string) string {
	name := strings.TrimSpace(clinicName)
	if name == "" {
		name = "clinic"
	}
	return strings.ReplaceAll(name, " ", "_") + "_smile_audit.csv"
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
