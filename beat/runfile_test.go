package beat

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadSeries(t *testing.T) {
	expected := []Sample{{0, 0.01}, {0.002, 0.08}, {0.004, -0.02}}

	for _, v := range []struct {
		Name  string
		Input string
	}{
		{"whitespace", "time voltage\n0 0.01\n0.002   0.08\n\n0.004\t-0.02\n"},
		{"comma", "time,voltage\n0,0.01\n0.002,0.08\n0.004,-0.02\n"},
		{"no trailing newline", "ZAMAN VOLTAJ\n0 0.01\n0.002 0.08\n0.004 -0.02"},
		{"extra columns ignored", "t v lead\n0 0.01 I\n0.002 0.08 I\n0.004 -0.02 I\n"},
	} {
		s, err := ReadSeries(strings.NewReader(v.Input), "person1")
		if err != nil {
			t.Fatalf("%s: %v", v.Name, err)
		}
		if s.Identifier != "person1" {
			t.Errorf("%s: got identifier %q", v.Name, s.Identifier)
		}
		if !reflect.DeepEqual(s.Samples, expected) {
			t.Errorf("%s: got %v, expected %v", v.Name, s.Samples, expected)
		}
	}
}

func TestReadSeriesEmpty(t *testing.T) {
	for _, input := range []string{"", "time voltage\n"} {
		s, err := ReadSeries(strings.NewReader(input), "person1")
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if s.Len() != 0 {
			t.Errorf("%q: expected no samples, got %d", input, s.Len())
		}
	}
}

func TestReadSeriesStopsAtMalformedRow(t *testing.T) {
	input := "time voltage\n0 0.01\n0.002 0.08\n0.004 oops\n0.006 0.01\n"

	s, err := ReadSeries(strings.NewReader(input), "person1")

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("Expected a *RowError, got %v", err)
	}
	if rowErr.Line != 4 {
		t.Errorf("Got error on line %d, expected line 4", rowErr.Line)
	}
	if s.Len() != 2 {
		t.Errorf("Expected the 2 samples before the malformed row, got %d", s.Len())
	}
}
