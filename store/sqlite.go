package store

import (
	"fmt"

	"github.com/carbocation/ekgbeat/beat"
	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS subject_summary (
	identifier TEXT PRIMARY KEY,
	samples INTEGER NOT NULL,
	peaks INTEGER NOT NULL,
	normal INTEGER NOT NULL,
	bradycardia INTEGER NOT NULL,
	tachycardia INTEGER NOT NULL,
	mean_rr REAL NOT NULL,
	sd_rr REAL NOT NULL,
	median_rr REAL NOT NULL,
	mean_bpm REAL NOT NULL,
	mean_peak_voltage REAL NOT NULL,
	sd_peak_voltage REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS classified_peak (
	identifier TEXT NOT NULL,
	label TEXT NOT NULL,
	time REAL NOT NULL,
	voltage REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS classified_peak_identifier ON classified_peak (identifier);
`

// SQLite stores results in a single database file. Saving a subject again
// replaces what was stored for it before.
type SQLite struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Writers would otherwise contend for the file lock
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveSummary upserts one subject's summary.
func (s *SQLite) SaveSummary(summary beat.Summary) error {
	_, err := s.db.NamedExec(`INSERT OR REPLACE INTO subject_summary
	(identifier, samples, peaks, normal, bradycardia, tachycardia, mean_rr, sd_rr, median_rr, mean_bpm, mean_peak_voltage, sd_peak_voltage)
	VALUES
	(:identifier, :samples, :peaks, :normal, :bradycardia, :tachycardia, :mean_rr, :sd_rr, :median_rr, :mean_bpm, :mean_peak_voltage, :sd_peak_voltage)`, summary)
	if err != nil {
		return pfx.Err(err)
	}

	return nil
}

// SavePeaks replaces every stored peak of identifier with rows. An empty rows
// clears the subject.
func (s *SQLite) SavePeaks(identifier string, rows []PeakRow) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM classified_peak WHERE identifier = ?`, identifier); err != nil {
		return pfx.Err(err)
	}

	for _, row := range rows {
		if row.Identifier != identifier {
			return fmt.Errorf("peak at %v belongs to %q, not %q", row.Time, row.Identifier, identifier)
		}

		if _, err := tx.NamedExec(`INSERT INTO classified_peak (identifier, label, time, voltage) VALUES (:identifier, :label, :time, :voltage)`, row); err != nil {
			return pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Summaries returns every stored summary, ordered by identifier.
func (s *SQLite) Summaries() ([]beat.Summary, error) {
	var out []beat.Summary
	if err := s.db.Select(&out, `SELECT * FROM subject_summary ORDER BY identifier`); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Peaks returns one subject's stored peaks with the given label, in time order.
func (s *SQLite) Peaks(identifier string, l beat.Label) ([]PeakRow, error) {
	var out []PeakRow
	err := s.db.Select(&out, `SELECT identifier, label, time, voltage FROM classified_peak WHERE identifier = ? AND label = ? ORDER BY time`, identifier, l.String())
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
