package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/ekgbeat/beat"
	"github.com/gocarina/gocsv"
)

// HistogramBins is the number of buckets used for RR interval histograms.
const HistogramBins = 10

// WriteSummary writes one tab-delimited row per subject, with a header.
func WriteSummary(w io.Writer, summaries []beat.Summary) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return gocsv.MarshalCSV(summaries, gocsv.NewSafeCSVWriter(cw))
}

// PrintHistogram prints a text histogram of a subject's RR intervals. Nothing
// is printed when there are no intervals.
func PrintHistogram(w io.Writer, identifier string, rr []float64) error {
	if len(rr) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s: %d RR intervals (seconds)\n", identifier, len(rr)); err != nil {
		return err
	}

	hist := histogram.Hist(HistogramBins, rr)

	return histogram.Fprint(w, hist, histogram.Linear(40))
}
