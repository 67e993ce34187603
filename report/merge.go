package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
)

// BlockSeparator is written on its own line between the blocks copied from
// consecutive inputs.
const BlockSeparator = "*"

// Merge writes one header, then the data rows of each input in order. The
// first HeaderLines lines of every input are skipped; the rest are copied
// verbatim. A BlockSeparator line goes between consecutive inputs.
func Merge(w io.Writer, inputs ...io.Reader) error {
	if err := WriteHeader(w); err != nil {
		return err
	}

	for i, input := range inputs {
		if i > 0 {
			if _, err := fmt.Fprintln(w, BlockSeparator); err != nil {
				return err
			}
		}

		scanner := bufio.NewScanner(input)
		for line := 0; scanner.Scan(); line++ {
			if line < HeaderLines {
				continue
			}
			if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	return nil
}

// MergeFiles merges the reports at inputs into output. Every input is opened
// before output is created, so an unreadable input (ekgbeat.ErrInputUnavailable)
// leaves no partial output behind. Failing to create output is reported as
// ekgbeat.ErrOutputUnavailable.
func MergeFiles(output string, inputs ...string) error {
	readers := make([]io.Reader, 0, len(inputs))
	for _, input := range inputs {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("%w: %v", ekgbeat.ErrInputUnavailable, err)
		}
		defer f.Close()

		// Opening a directory succeeds; reading it does not.
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("%w: %v", ekgbeat.ErrInputUnavailable, err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s is not a regular file", ekgbeat.ErrInputUnavailable, input)
		}

		readers = append(readers, f)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("%w: %v", ekgbeat.ErrOutputUnavailable, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	err = Merge(w, readers...)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		out.Close()
		os.Remove(output)
		return err
	}

	return out.Close()
}

// MergedFileName names the merged report for label l across the given subjects.
// Identifiers that share a non-numeric prefix are compacted, so person1,
// person2 and person3 produce normal-person-1-2-3.txt; otherwise the
// identifiers are joined with dashes.
func MergedFileName(l beat.Label, identifiers []string) string {
	return Suffix(l) + "-" + compactIdentifiers(identifiers) + ".txt"
}

func compactIdentifiers(identifiers []string) string {
	if len(identifiers) == 0 {
		return ""
	}

	prefix := identifiers[0]
	for _, id := range identifiers[1:] {
		for !strings.HasPrefix(id, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	prefix = strings.TrimRight(strings.TrimRightFunc(prefix, unicode.IsDigit), "-_")

	if prefix == "" {
		return strings.Join(identifiers, "-")
	}

	rest := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		suffix := strings.TrimLeft(strings.TrimPrefix(id, prefix), "-_")
		if suffix == "" {
			return strings.Join(identifiers, "-")
		}
		rest = append(rest, suffix)
	}

	return prefix + "-" + strings.Join(rest, "-")
}
