package ekgbeat

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// Whitespace is returned by DetermineDelimiter when the values are separated by
// runs of spaces or tabs rather than by a single delimiting rune.
const Whitespace = ' '

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader. Only comma, semicolon, pipe and tab are recognized as
// delimiters; anything else (including the decimal point, which the detector
// can mistake for a delimiter in numeric files) yields Whitespace.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, v := range delimiters {
		if len(v) == 0 {
			continue
		}

		switch c := rune(v[0]); c {
		case ',', ';', '|', '\t':
			return c
		}
	}

	return Whitespace
}
