// Package report writes classified peaks as fixed-width text tables and merges
// same-labeled tables from several subjects into one file.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
)

const (
	TimeHeader    = "ZAMAN"
	VoltageHeader = "VOLTAJ"

	// ColumnWidth is the width the time column is left-aligned and padded to.
	ColumnWidth = 15

	// SeparatorWidth is the number of dashes under the header.
	SeparatorWidth = 30

	// HeaderLines is the number of lines preceding the first data row.
	HeaderLines = 2
)

var suffixes = map[beat.Label]string{
	beat.Normal:      "normal",
	beat.Bradycardia: "bradikardi",
	beat.Tachycardia: "tasikardi",
}

// Suffix is the name under which reports for label l are written.
func Suffix(l beat.Label) string {
	return suffixes[l]
}

// FileName is the name of the per-subject report for label l, e.g.,
// person1-bradikardi.txt
func FileName(identifier string, l beat.Label) string {
	return identifier + "-" + Suffix(l) + ".txt"
}

// WriteHeader writes the column titles and the separator line.
func WriteHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-*s%s\n", ColumnWidth, TimeHeader, VoltageHeader); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.Repeat("-", SeparatorWidth))
	return err
}

// Write writes a report: the header, then one row per peak with time and
// voltage fixed to 4 decimal places.
func Write(w io.Writer, peaks []beat.ClassifiedPeak) error {
	if err := WriteHeader(w); err != nil {
		return err
	}

	for _, p := range peaks {
		if _, err := fmt.Fprintf(w, "%-*.4f%.4f\n", ColumnWidth, p.Time, p.Voltage); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile writes a report to path. Failing to create the file is reported
// as ekgbeat.ErrOutputUnavailable.
func WriteFile(path string, peaks []beat.ClassifiedPeak) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ekgbeat.ErrOutputUnavailable, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, peaks); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return f.Close()
}

// Paths returns the per-label report paths for one subject within dir, in
// beat.Labels order.
func Paths(dir, identifier string) []string {
	out := make([]string, 0, len(beat.Labels))
	for _, l := range beat.Labels {
		out = append(out, filepath.Join(dir, FileName(identifier, l)))
	}

	return out
}
