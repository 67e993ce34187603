package beat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/carbocation/ekgbeat"
)

// sniffBytes is how much of the input is examined to choose a delimiter.
const sniffBytes = 16 * 1024

// RowError reports the row at which reading stopped. The samples read before
// that row are still returned by ReadSeries.
type RowError struct {
	Line int
	Text string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadSeries reads a sample file: one header line, which is discarded, then one
// time and voltage pair per line. Values are separated by whitespace or commas,
// or by another delimiter such as a semicolon if the file uses one
// consistently. Blank lines are ignored. Reading stops at the first row whose
// leading two values are not numbers; the series read so far is returned with
// a *RowError.
func ReadSeries(r io.Reader, identifier string) (Series, error) {
	out := Series{Identifier: identifier}

	br := bufio.NewReaderSize(r, sniffBytes)
	head, _ := br.Peek(sniffBytes)
	delim := ekgbeat.DetermineDelimiter(bytes.NewReader(head))

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; scanner.Scan(); i++ {
		if i == 0 {
			// Skip the header
			continue
		}

		line := scanner.Text()
		fields := splitFields(line, delim)
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 2 {
			return out, &RowError{Line: i + 1, Text: line, Err: fmt.Errorf("Expected >= 2 columns, got %d", len(fields))}
		}

		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return out, &RowError{Line: i + 1, Text: line, Err: err}
		}

		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return out, &RowError{Line: i + 1, Text: line, Err: err}
		}

		out.Samples = append(out.Samples, Sample{Time: t, Voltage: v})
	}

	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("%w: %v", ekgbeat.ErrInputUnavailable, err)
	}

	return out, nil
}

// splitFields splits on whitespace and commas, plus the sniffed delimiter when
// the file uses another one.
func splitFields(line string, delim rune) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == delim || r == ',' || unicode.IsSpace(r)
	})
}
