package beat

const (
	// PeakFloor is the smallest voltage that can be considered a peak.
	PeakFloor = 0.06

	// Lookahead is the number of samples following a candidate that must not
	// exceed it. It is also the refractory window: once a peak is confirmed,
	// scanning resumes Lookahead+1 samples later.
	Lookahead = 500
)

// Peak is a confirmed local maximum. Sentinel is set only on the synthetic
// zero-valued peak that Detect places at the head of its output, so that a real
// sample at (0, 0) is never mistaken for it.
type Peak struct {
	Time     float64
	Voltage  float64
	Sentinel bool
}

// SentinelPeak heads every peak sequence produced by Detect. Its Time and
// Voltage of zero serve as the previous peak when the first real peak is
// classified.
var SentinelPeak = Peak{Sentinel: true}

// Detect scans a series for heartbeat peaks. A sample is a candidate when it is
// at least PeakFloor and strictly greater than both of its neighbors; the first
// and last samples are never candidates. A candidate is confirmed when none of
// the next Lookahead samples is strictly greater. The window is clamped to the
// end of the series, so a candidate near the end is judged only against the
// samples that exist. The output always begins with SentinelPeak.
func Detect(s Series) []Peak {
	v := s.Samples

	out := []Peak{SentinelPeak}

	for i := 1; i < len(v)-1; i++ {
		if !isCandidate(v, i) || !isConfirmed(v, i) {
			continue
		}

		out = append(out, Peak{Time: v[i].Time, Voltage: v[i].Voltage})

		// Skip the refractory window. Together with the loop increment, the next
		// index examined is i+Lookahead+1.
		i += Lookahead
	}

	return out
}

func isCandidate(v []Sample, i int) bool {
	return v[i].Voltage >= PeakFloor &&
		v[i].Voltage > v[i-1].Voltage &&
		v[i].Voltage > v[i+1].Voltage
}

func isConfirmed(v []Sample, i int) bool {
	end := i + Lookahead
	if end > len(v)-1 {
		end = len(v) - 1
	}

	for j := i + 1; j <= end; j++ {
		if v[j].Voltage > v[i].Voltage {
			return false
		}
	}

	return true
}
