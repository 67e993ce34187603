package beat_test

import (
	"math"
	"testing"

	"github.com/carbocation/ekgbeat/beat"
	"github.com/carbocation/ekgbeat/simulate"
)

func TestSummarizeSimulated(t *testing.T) {
	s := simulate.New(1000, 72, 0).Series("person1", 10)

	peaks := beat.Detect(s)
	r := beat.Classify(peaks)
	summary := beat.Summarize(s, peaks, r)

	if summary.Peaks != 12 || summary.Normal != 12 {
		t.Fatalf("Expected 12 normal peaks, got %+v", summary)
	}
	if math.Abs(summary.MeanBPM-72) > 0.5 {
		t.Errorf("Got %v BPM, expected about 72", summary.MeanBPM)
	}
	if math.Abs(summary.MedianRR-60.0/72) > 0.002 {
		t.Errorf("Got median RR %v, expected about %v", summary.MedianRR, 60.0/72)
	}
	if summary.SDRR > 0.001 {
		t.Errorf("Expected a near-constant rhythm, got SD %v", summary.SDRR)
	}
}

func TestSimulatedRefractorySpacing(t *testing.T) {
	s := simulate.New(500, 72, 0.01).Series("person1", 30)

	peaks := beat.Detect(s)

	// At 500 Hz one beat spans far fewer samples than the refractory window,
	// so consecutive detections are at least that far apart in time
	minSpacing := float64(beat.Lookahead+1) / 500
	for i := 2; i < len(peaks); i++ {
		if d := peaks[i].Time - peaks[i-1].Time; d < minSpacing-1e-9 {
			t.Errorf("Peaks %d and %d are %v s apart, closer than %v s", i-1, i, d, minSpacing)
		}
	}
}
