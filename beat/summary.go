package beat

import (
	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one subject's run. It is descriptive only; none of these
// values feed back into classification.
type Summary struct {
	Identifier      string  `csv:"identifier" db:"identifier" bigquery:"identifier"`
	Samples         int     `csv:"samples" db:"samples" bigquery:"samples"`
	Peaks           int     `csv:"peaks" db:"peaks" bigquery:"peaks"`
	Normal          int     `csv:"normal" db:"normal" bigquery:"normal"`
	Bradycardia     int     `csv:"bradycardia" db:"bradycardia" bigquery:"bradycardia"`
	Tachycardia     int     `csv:"tachycardia" db:"tachycardia" bigquery:"tachycardia"`
	MeanRR          float64 `csv:"mean_rr" db:"mean_rr" bigquery:"mean_rr"`     // Seconds between consecutive peaks
	SDRR            float64 `csv:"sd_rr" db:"sd_rr" bigquery:"sd_rr"`           // Sample standard deviation; 0 with fewer than 2 intervals
	MedianRR        float64 `csv:"median_rr" db:"median_rr" bigquery:"median_rr"` // Seconds
	MeanBPM         float64 `csv:"mean_bpm" db:"mean_bpm" bigquery:"mean_bpm"`   // 60 / MeanRR
	MeanPeakVoltage float64 `csv:"mean_peak_voltage" db:"mean_peak_voltage" bigquery:"mean_peak_voltage"`
	SDPeakVoltage   float64 `csv:"sd_peak_voltage" db:"sd_peak_voltage" bigquery:"sd_peak_voltage"`
}

// RRIntervals returns the time between each pair of consecutive real peaks. The
// sentinel is not a beat and is skipped.
func RRIntervals(peaks []Peak) []float64 {
	out := make([]float64, 0, len(peaks))

	var last *Peak
	for i := range peaks {
		if peaks[i].Sentinel {
			continue
		}
		if last != nil {
			out = append(out, peaks[i].Time-last.Time)
		}
		last = &peaks[i]
	}

	return out
}

// Summarize computes descriptive statistics for a subject from its series, the
// peaks detected in it, and their classification.
func Summarize(s Series, peaks []Peak, r Result) Summary {
	out := Summary{
		Identifier:  s.Identifier,
		Samples:     s.Len(),
		Normal:      len(r.Normal),
		Bradycardia: len(r.Bradycardia),
		Tachycardia: len(r.Tachycardia),
	}

	amplitudes := runningvariance.NewRunningStat()
	for _, p := range peaks {
		if p.Sentinel {
			continue
		}
		out.Peaks++
		amplitudes.Push(p.Voltage)
	}

	if out.Peaks > 0 {
		out.MeanPeakVoltage = amplitudes.Mean()
	}
	if out.Peaks > 1 {
		out.SDPeakVoltage = amplitudes.StandardDeviation()
	}

	rr := RRIntervals(peaks)
	switch len(rr) {
	case 0:
		return out
	case 1:
		out.MeanRR = rr[0]
	default:
		out.MeanRR, out.SDRR = stat.MeanStdDev(rr, nil)
	}

	if median, err := stats.Median(rr); err == nil {
		out.MedianRR = median
	}

	if out.MeanRR > 0 {
		out.MeanBPM = 60.0 / out.MeanRR
	}

	return out
}
