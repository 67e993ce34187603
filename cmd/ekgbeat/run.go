package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
	"github.com/carbocation/ekgbeat/plot"
	"github.com/carbocation/ekgbeat/report"
	"github.com/carbocation/ekgbeat/store"
	"github.com/carbocation/pfx"
)

// subjectResult is everything produced for one subject.
type subjectResult struct {
	Identifier string
	Series     beat.Series
	Peaks      []beat.Peak
	Result     beat.Result
	Summary    beat.Summary
}

func run(cfg config) error {
	ctx := context.Background()

	outputDir, err := ekgbeat.ExpandHome(cfg.OutputDir)
	if err != nil {
		return err
	}
	cfg.OutputDir = outputDir

	inputDir := cfg.InputDir
	if !ekgbeat.IsGoogleStoragePath(inputDir) {
		if inputDir, err = ekgbeat.ExpandHome(inputDir); err != nil {
			return err
		}
	}

	paths := make([]string, 0, len(cfg.Subjects))
	for _, subject := range cfg.Subjects {
		paths = append(paths, inputPath(subject, inputDir, cfg.Extension))
	}

	// Reports are named by identifier, so two files that share one would
	// overwrite each other's reports.
	if err := uniqueIdentifiers(paths); err != nil {
		return err
	}

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	var client *storage.Client
	for _, p := range paths {
		if ekgbeat.IsGoogleStoragePath(p) {
			client, err = storage.NewClient(ctx)
			if err != nil {
				return pfx.Err(err)
			}
			defer client.Close()

			break
		}
	}

	results := processAll(ctx, client, cfg, paths)

	if cfg.Merge {
		mergeReports(cfg.OutputDir, results)
	}

	if cfg.Histogram {
		STDOUT := bufio.NewWriter(os.Stdout)
		for _, res := range results {
			if err := report.PrintHistogram(STDOUT, res.Identifier, beat.RRIntervals(res.Peaks)); err != nil {
				log.Println(err)
			}
		}
		STDOUT.Flush()
	}

	if cfg.SummaryPath != "" {
		if err := writeSummary(cfg.SummaryPath, results); err != nil {
			log.Println(err)
		}
	}

	if cfg.SQLitePath != "" {
		if err := saveSQLite(cfg.SQLitePath, results); err != nil {
			return err
		}
	}

	if cfg.BQProject != "" {
		if err := saveBigQuery(ctx, cfg, results); err != nil {
			return err
		}
	}

	return nil
}

// processAll runs every subject, at most cfg.Concurrency at a time. Results
// come back in the order the subjects were given.
func processAll(ctx context.Context, client *storage.Client, cfg config, paths []string) []subjectResult {
	results := make([]subjectResult, len(paths))

	semaphore := make(chan struct{}, cfg.Concurrency)
	done := make(chan struct{}, len(paths))

	for i, p := range paths {

		// Will block after `concurrency` simultaneous goroutines are running
		semaphore <- struct{}{}

		go func(i int, p string) {

			// Be sure to permit unblocking once we finish
			defer func() {
				<-semaphore
				done <- struct{}{}
			}()

			results[i] = processSubject(ctx, client, cfg, p)
		}(i, p)
	}

	for range paths {
		<-done
	}

	return results
}

func processSubject(ctx context.Context, client *storage.Client, cfg config, p string) subjectResult {
	id := identifier(p)

	series, err := loadSeries(ctx, client, p, id, cfg.Lead)
	var rowErr *beat.RowError
	if errors.Is(err, ekgbeat.ErrInputUnavailable) {
		log.Printf("%s: %v. Proceeding with an empty recording.\n", id, err)
		series = beat.Series{Identifier: id}
	} else if errors.As(err, &rowErr) {
		log.Printf("%s: stopped reading at %v. Proceeding with the %d samples read before it.\n", id, rowErr, series.Len())
	} else if err != nil {
		log.Printf("%s: %v. Proceeding with an empty recording.\n", id, err)
		series = beat.Series{Identifier: id}
	}

	peaks := beat.Detect(series)
	result := beat.Classify(peaks)
	result.Identifier = id

	out := subjectResult{
		Identifier: id,
		Series:     series,
		Peaks:      peaks,
		Result:     result,
		Summary:    beat.Summarize(series, peaks, result),
	}

	for _, l := range beat.Labels {
		path := filepath.Join(cfg.OutputDir, report.FileName(id, l))
		if err := report.WriteFile(path, result.Group(l)); err != nil {
			log.Printf("%s: %v\n", id, err)
		}
	}

	if cfg.PNG {
		if err := plot.WriteFile(filepath.Join(cfg.OutputDir, id+".png"), series, result, cfg.PNGWidth, cfg.PNGHeight); err != nil {
			log.Printf("%s: not plotted: %v\n", id, err)
		}
	}

	log.Printf("%s: %d samples, %d peaks (%d normal, %d bradycardia, %d tachycardia)\n",
		id, series.Len(), out.Summary.Peaks, len(result.Normal), len(result.Bradycardia), len(result.Tachycardia))

	return out
}

// mergeReports writes one merged report per label. If any subject's report for
// a label is unavailable, that label's merge is abandoned.
func mergeReports(outputDir string, results []subjectResult) {
	for _, l := range beat.Labels {
		inputs := make([]string, 0, len(results))
		ids := make([]string, 0, len(results))
		for _, res := range results {
			inputs = append(inputs, filepath.Join(outputDir, report.FileName(res.Identifier, l)))
			ids = append(ids, res.Identifier)
		}

		if len(inputs) == 0 {
			log.Printf("No %s reports to merge\n", l)
			continue
		}

		output := filepath.Join(outputDir, report.MergedFileName(l, ids))
		if err := report.MergeFiles(output, inputs...); err != nil {
			log.Printf("Merging %s reports: %v\n", l, err)
			continue
		}

		log.Printf("Merged %d %s reports into %s\n", len(inputs), l, output)
	}
}

func uniqueIdentifiers(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		id := identifier(p)
		if prior, exists := seen[id]; exists {
			return fmt.Errorf("%s and %s would both write reports as %q", prior, p, id)
		}
		seen[id] = p
	}

	return nil
}

func summaries(results []subjectResult) []beat.Summary {
	out := make([]beat.Summary, 0, len(results))
	for _, res := range results {
		out = append(out, res.Summary)
	}

	return out
}

func writeSummary(path string, results []subjectResult) error {
	var w io.Writer = os.Stdout

	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %v", ekgbeat.ErrOutputUnavailable, err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := report.WriteSummary(bw, summaries(results)); err != nil {
		return pfx.Err(err)
	}

	return bw.Flush()
}

func saveSQLite(path string, results []subjectResult) error {
	db, err := store.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, res := range results {
		if err := db.SavePeaks(res.Identifier, store.Rows(res.Result)); err != nil {
			return err
		}
		if err := db.SaveSummary(res.Summary); err != nil {
			return err
		}
	}

	log.Printf("Saved %d subjects to %s\n", len(results), path)

	return nil
}

func saveBigQuery(ctx context.Context, cfg config, results []subjectResult) error {
	BQ, err := store.NewBigQuery(ctx, cfg.BQProject, cfg.BQDataset, cfg.BQTable, cfg.Credentials)
	if err != nil {
		return err
	}
	defer BQ.Close()

	if err := BQ.EnsureTables(); err != nil {
		return err
	}

	known, err := BQ.ExistingIdentifiers()
	if err != nil {
		return err
	}

	var rows []store.PeakRow
	var fresh []beat.Summary
	var skipped []string
	for _, res := range results {
		if _, exists := known[res.Identifier]; exists {
			skipped = append(skipped, res.Identifier)
			continue
		}
		rows = append(rows, store.Rows(res.Result)...)
		fresh = append(fresh, res.Summary)
	}

	if len(skipped) > 0 {
		log.Printf("Already in BigQuery, not uploading again: %s\n", strings.Join(skipped, ", "))
	}

	if err := BQ.SavePeaks(rows); err != nil {
		return err
	}
	if err := BQ.SaveSummaries(fresh); err != nil {
		return err
	}

	log.Printf("Uploaded %d peaks for %d subjects to %s.%s.%s\n", len(rows), len(fresh), cfg.BQProject, cfg.BQDataset, cfg.BQTable)

	return nil
}
