package beat

import (
	"reflect"
	"testing"
)

func TestLabelForInterval(t *testing.T) {
	for _, v := range []struct {
		Interval float64
		Expected Label
	}{
		{0.2, Tachycardia},
		{0.6, Tachycardia},
		{0.61, Normal},
		{1.0, Normal},
		{1.01, Bradycardia},
		{2.5, Bradycardia},
	} {
		if got := LabelForInterval(v.Interval); got != v.Expected {
			t.Errorf("Interval %v: got %s, expected %s", v.Interval, got, v.Expected)
		}
	}
}

func TestClassifySentinelOnly(t *testing.T) {
	res := Classify([]Peak{SentinelPeak})
	if res.Len() != 0 {
		t.Errorf("Expected no classified peaks, got %+v", res)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	// The first real peak is compared with the sentinel, whose time and voltage
	// are zero, so these deltas are exact.
	for _, v := range []struct {
		Name     string
		Peaks    []Peak
		Expected Label
	}{
		{"interval of exactly 0.6 is tachycardia", []Peak{SentinelPeak, {Time: 0.6, Voltage: 0.001}}, Tachycardia},
		{"interval of exactly 1.0 is normal", []Peak{SentinelPeak, {Time: 1.0, Voltage: 0.001}}, Normal},
		{"interval just over 1.0 is bradycardia", []Peak{SentinelPeak, {Time: 1.0001, Voltage: 0.001}}, Bradycardia},

		// Voltage delta of exactly 0.0033 looks behind (0.5s); looking ahead
		// would have given 1.5s.
		{"voltage delta at threshold looks behind", []Peak{SentinelPeak, {Time: 0.5, Voltage: 0.0033}, {Time: 2.0, Voltage: 0.0033}}, Tachycardia},
		{"voltage delta over threshold looks ahead", []Peak{SentinelPeak, {Time: 0.5, Voltage: 0.0034}, {Time: 2.0, Voltage: 0.0034}}, Bradycardia},

		// No next peak to look ahead to: fall back to the previous interval.
		{"last peak falls back to look-behind", []Peak{SentinelPeak, {Time: 0.8, Voltage: 0.5}}, Normal},
	} {
		res := Classify(v.Peaks)
		if len(res.Group(v.Expected)) == 0 || res.Group(v.Expected)[0].Peak != v.Peaks[1] {
			t.Errorf("%s: expected first peak to be %s, got %+v", v.Name, v.Expected, res)
		}
	}
}

func TestClassifyPartitions(t *testing.T) {
	peaks := []Peak{SentinelPeak}
	times := []float64{0.9, 1.3, 2.6, 3.4, 3.7, 4.8, 5.6, 5.9, 7.5, 8.3}
	voltages := []float64{0.08, 0.081, 0.09, 0.07, 0.0701, 0.11, 0.1, 0.1005, 0.2, 0.08}
	for i := range times {
		peaks = append(peaks, Peak{Time: times[i], Voltage: voltages[i]})
	}

	res := Classify(peaks)

	if res.Len() != len(peaks)-1 {
		t.Fatalf("Classified %d peaks, expected %d", res.Len(), len(peaks)-1)
	}

	seen := make(map[float64]int)
	for _, l := range Labels {
		last := -1.0
		for _, p := range res.Group(l) {
			if p.Label != l {
				t.Errorf("Peak %+v is in the %s group", p, l)
			}
			if p.Time <= last {
				t.Errorf("%s group is out of encounter order at %v", l, p.Time)
			}
			last = p.Time
			seen[p.Time]++
		}
	}

	for _, tm := range times {
		if seen[tm] != 1 {
			t.Errorf("Peak at %v appears %d times", tm, seen[tm])
		}
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	v := make([]float64, 3000)
	for i := range v {
		v[i] = 0.01
	}
	for _, i := range []int{100, 700, 1250, 1900, 2600} {
		v[i] = 0.08 + float64(i)/1e6
	}
	s := indexedSeries(v...)

	first, second := Analyze(s), Analyze(s)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated analysis differs:\n%+v\n%+v", first, second)
	}
	if first.Identifier != s.Identifier {
		t.Errorf("Got identifier %q, expected %q", first.Identifier, s.Identifier)
	}
	if first.Len() != 5 {
		t.Errorf("Expected 5 classified peaks, got %d", first.Len())
	}
}
