// Package store persists classified peaks and per-subject summaries, either to
// a local SQLite file or to BigQuery.
package store

import (
	"github.com/carbocation/ekgbeat/beat"
)

// PeakRow is one classified peak, flattened for storage.
type PeakRow struct {
	Identifier string  `db:"identifier" bigquery:"identifier"`
	Label      string  `db:"label" bigquery:"label"`
	Time       float64 `db:"time" bigquery:"time"`
	Voltage    float64 `db:"voltage" bigquery:"voltage"`
}

// Rows flattens a result, labels in beat.Labels order and time order within
// each label.
func Rows(r beat.Result) []PeakRow {
	out := make([]PeakRow, 0, r.Len())
	for _, l := range beat.Labels {
		for _, p := range r.Group(l) {
			out = append(out, PeakRow{
				Identifier: r.Identifier,
				Label:      l.String(),
				Time:       p.Time,
				Voltage:    p.Voltage,
			})
		}
	}

	return out
}
