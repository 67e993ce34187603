// Package beat detects heartbeat peaks in EKG sample series and classifies them
// by heart-rate regime.
package beat

// Sample is one (time, voltage) reading. Times are in seconds and voltages in
// millivolts as they appear in the input.
type Sample struct {
	Time    float64
	Voltage float64
}

// Series represents all samples recorded for one subject, in the order they
// were read. Detection treats neighboring entries as evenly spaced: the
// lookahead window is counted in samples, not seconds.
type Series struct {
	Identifier string
	Samples    []Sample
}

func (s Series) Len() int {
	return len(s.Samples)
}
