// Package simulate generates synthetic, non-clinical EKG signals for demos and
// tests.
package simulate

import (
	"math"

	"github.com/carbocation/ekgbeat/beat"
)

// ECG produces a periodic P-QRS-T waveform made of gaussian bumps over a
// slow baseline, in millivolts. Every sample is a pure function of its index,
// so a given ECG always produces the same signal.
//
// The detector's refractory window is counted in samples, so each R wave is
// found exactly once only when one beat spans between 501 and 1000 samples,
// i.e., 501 < SampleRate*60/BPM <= 1000.
type ECG struct {
	SampleRate float64 // Hz
	BPM        float64
	Noise      float64 // Peak amplitude of the deterministic pseudo-noise
}

func New(sampleRate, bpm, noise float64) ECG {
	return ECG{SampleRate: sampleRate, BPM: bpm, Noise: noise}
}

// Phase returns how far sample i is into its beat, in [0, 1). Each beat starts
// at phase 0; the R wave is at phase 0.32.
func (e ECG) Phase(i int) float64 {
	return fract(float64(i) * e.BPM / 60.0 / e.SampleRate)
}

// Voltage returns sample i.
func (e ECG) Voltage(i int) float64 {
	t := e.Phase(i)

	baseline := 0.05 * math.Sin(2*math.Pi*0.33*t)

	p := 0.08 * gauss(t, 0.18, 0.03)
	q := -0.12 * gauss(t, 0.30, 0.01)
	r := 1.00 * gauss(t, 0.32, 0.008)
	s := -0.25 * gauss(t, 0.35, 0.012)
	tw := 0.25 * gauss(t, 0.60, 0.06)

	var n float64
	if e.Noise != 0 {
		n = e.Noise * (2*fract(math.Sin(12345.678*float64(i)/e.SampleRate)*9876.543) - 1)
	}

	return baseline + p + q + r + s + tw + n
}

// Series returns the given number of seconds of signal, sample i at
// i/SampleRate seconds.
func (e ECG) Series(identifier string, seconds float64) beat.Series {
	n := int(math.Round(seconds * e.SampleRate))
	if n < 0 {
		n = 0
	}

	out := beat.Series{
		Identifier: identifier,
		Samples:    make([]beat.Sample, n),
	}
	for i := range out.Samples {
		out.Samples[i] = beat.Sample{
			Time:    float64(i) / e.SampleRate,
			Voltage: e.Voltage(i),
		}
	}

	return out
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

func fract(x float64) float64 { return x - math.Floor(x) }
