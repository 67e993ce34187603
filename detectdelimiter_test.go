package ekgbeat

import (
	"strings"
	"testing"
)

func TestDetermineDelimiter(t *testing.T) {
	for _, v := range []struct {
		Name  string
		Input string
		Want  rune
	}{
		{"comma", "time,voltage\n0.000,0.010\n0.002,0.020\n0.004,0.080\n0.006,0.020", ','},
		{"semicolon", "time;voltage\n0.000;0.010\n0.002;0.020\n0.004;0.080\n0.006;0.020", ';'},
		{"space", "time voltage\n0.000 0.010\n0.002 0.020\n0.004 0.080\n0.006 0.020", Whitespace},
	} {
		if got := DetermineDelimiter(strings.NewReader(v.Input)); got != v.Want {
			t.Errorf("%s: got %q, expected %q", v.Name, got, v.Want)
		}
	}
}
