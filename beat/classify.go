package beat

import "math"

const (
	// VoltageDeltaThreshold separates morphologically distinct consecutive
	// peaks (greater than) from similar ones (less than or equal).
	VoltageDeltaThreshold = 0.0033

	// TachycardiaMaxInterval is the largest interval, in seconds, that is
	// still classified as tachycardia.
	TachycardiaMaxInterval = 0.6

	// BradycardiaMinInterval is the interval, in seconds, that must be
	// exceeded for a peak to be classified as bradycardia.
	BradycardiaMinInterval = 1.0
)

type Label int

const (
	Normal Label = iota
	Bradycardia
	Tachycardia
)

// Labels lists every label in report order.
var Labels = []Label{Normal, Bradycardia, Tachycardia}

func (l Label) String() string {
	switch l {
	case Normal:
		return "normal"
	case Bradycardia:
		return "bradycardia"
	case Tachycardia:
		return "tachycardia"
	}

	return "unknown"
}

// LabelForInterval maps the interval between two peaks to a heart-rate regime.
func LabelForInterval(interval float64) Label {
	if interval <= TachycardiaMaxInterval {
		return Tachycardia
	} else if interval > BradycardiaMinInterval {
		return Bradycardia
	}

	return Normal
}

type ClassifiedPeak struct {
	Peak
	Label Label
}

// Result holds the classified peaks of one subject, partitioned by label. Each
// group preserves the order in which its peaks were encountered.
type Result struct {
	Identifier  string
	Normal      []ClassifiedPeak
	Bradycardia []ClassifiedPeak
	Tachycardia []ClassifiedPeak
}

// Group returns the peaks carrying label l.
func (r Result) Group(l Label) []ClassifiedPeak {
	switch l {
	case Normal:
		return r.Normal
	case Bradycardia:
		return r.Bradycardia
	case Tachycardia:
		return r.Tachycardia
	}

	return nil
}

// Len is the number of classified peaks across all groups.
func (r Result) Len() int {
	return len(r.Normal) + len(r.Bradycardia) + len(r.Tachycardia)
}

func (r *Result) add(p ClassifiedPeak) {
	switch p.Label {
	case Normal:
		r.Normal = append(r.Normal, p)
	case Bradycardia:
		r.Bradycardia = append(r.Bradycardia, p)
	case Tachycardia:
		r.Tachycardia = append(r.Tachycardia, p)
	}
}

// Classify labels every peak after the head of the sequence. The interval used
// for a peak depends on how much its voltage differs from the previous peak:
// above VoltageDeltaThreshold the interval to the next peak is used, otherwise
// the interval to the previous one. The last peak has no next neighbor and
// always uses the previous interval.
func Classify(peaks []Peak) Result {
	out := Result{}

	for i := 1; i < len(peaks); i++ {
		out.add(ClassifiedPeak{
			Peak:  peaks[i],
			Label: LabelForInterval(interval(peaks, i)),
		})
	}

	return out
}

func interval(peaks []Peak, i int) float64 {
	current, previous := peaks[i], peaks[i-1]

	if math.Abs(current.Voltage-previous.Voltage) > VoltageDeltaThreshold && i+1 < len(peaks) {
		return math.Abs(current.Time - peaks[i+1].Time)
	}

	return math.Abs(current.Time - previous.Time)
}
