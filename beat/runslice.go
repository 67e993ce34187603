package beat

import (
	"fmt"
)

// Analyze detects the peaks of one subject's series and classifies them.
func Analyze(s Series) Result {
	res := Classify(Detect(s))
	res.Identifier = s.Identifier

	return res
}

// RunFromSlices analyzes a series given as two parallel slices: the 0th time
// corresponds to the 0th voltage, etc. The slices must have the same length.
func RunFromSlices(identifier string, times, voltages []float64) (Result, error) {
	s, err := SeriesFromSlices(identifier, times, voltages)
	if err != nil {
		return Result{}, err
	}

	return Analyze(s), nil
}

func SeriesFromSlices(identifier string, times, voltages []float64) (Series, error) {
	if len(times) != len(voltages) {
		return Series{}, fmt.Errorf("All input slices must have the same length (got %d times and %d voltages)", len(times), len(voltages))
	}

	s := Series{
		Identifier: identifier,
		Samples:    make([]Sample, 0, len(times)),
	}

	for i := range times {
		s.Samples = append(s.Samples, Sample{Time: times[i], Voltage: voltages[i]})
	}

	return s, nil
}
