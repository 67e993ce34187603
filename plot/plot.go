// Package plot draws a subject's signal with its detected peaks marked.
package plot

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 256
)

var labelColors = map[beat.Label]drawing.Color{
	beat.Normal:      drawing.ColorBlue,
	beat.Bradycardia: drawing.ColorGreen,
	beat.Tachycardia: drawing.ColorRed,
}

// Render writes a PNG of the series to w. Classified peaks are drawn as dots,
// colored by label.
func Render(w io.Writer, s beat.Series, r beat.Result, widthPx, heightPx int) error {
	if s.Len() < 2 {
		return fmt.Errorf("%s: cannot plot %d samples", s.Identifier, s.Len())
	}

	xs := make([]float64, 0, s.Len())
	ys := make([]float64, 0, s.Len())
	yMin, yMax := s.Samples[0].Voltage, s.Samples[0].Voltage
	for _, sample := range s.Samples {
		xs = append(xs, sample.Time)
		ys = append(ys, sample.Voltage)
		if sample.Voltage < yMin {
			yMin = sample.Voltage
		}
		if sample.Voltage > yMax {
			yMax = sample.Voltage
		}
	}

	if xs[0] == xs[len(xs)-1] {
		return fmt.Errorf("%s: all samples share time %v", s.Identifier, xs[0])
	}

	var chartRange *chart.ContinuousRange
	if yMin == yMax {
		chartRange = &chart.ContinuousRange{Min: yMin - 1, Max: yMax + 1}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    s.Identifier,
			XValues: xs,
			YValues: ys,
		},
	}

	for _, l := range beat.Labels {
		var px, py []float64
		for _, p := range r.Group(l) {
			if p.Sentinel {
				continue
			}
			px = append(px, p.Time)
			py = append(py, p.Voltage)
		}
		if len(px) == 0 {
			continue
		}

		series = append(series, chart.ContinuousSeries{
			Name: l.String(),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    labelColors[l],
			},
			XValues: px,
			YValues: py,
		})
	}

	graph := chart.Chart{
		Width:  widthPx,
		Height: heightPx,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: chartRange,
		},
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}

// WriteFile renders the series to path. Failing to create the file is
// reported as ekgbeat.ErrOutputUnavailable.
func WriteFile(path string, s beat.Series, r beat.Result, widthPx, heightPx int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ekgbeat.ErrOutputUnavailable, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Render(w, s, r, widthPx, heightPx); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return f.Close()
}
