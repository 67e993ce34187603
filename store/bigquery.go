package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/ekgbeat/beat"
	"github.com/carbocation/pfx"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// SummaryTableSuffix is appended to the peak table's name to name the table
// holding per-subject summaries.
const SummaryTableSuffix = "_summary"

type WrappedBigQuery struct {
	Context context.Context
	Client  *bigquery.Client
	Project string
	Dataset string
	Table   string
}

// NewBigQuery connects to project. If credentials is non-empty, it names a
// service account JSON file; otherwise application default credentials are
// used.
func NewBigQuery(ctx context.Context, project, dataset, table, credentials string) (*WrappedBigQuery, error) {
	if project == "" || dataset == "" || table == "" {
		return nil, fmt.Errorf("BigQuery project, dataset and table are all required")
	}

	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to BigQuery: %v", err)
	}

	return &WrappedBigQuery{
		Context: ctx,
		Client:  client,
		Project: project,
		Dataset: dataset,
		Table:   table,
	}, nil
}

func (wbq *WrappedBigQuery) Close() error {
	return wbq.Client.Close()
}

func (wbq *WrappedBigQuery) peakTable() *bigquery.Table {
	return wbq.Client.Dataset(wbq.Dataset).Table(wbq.Table)
}

func (wbq *WrappedBigQuery) summaryTable() *bigquery.Table {
	return wbq.Client.Dataset(wbq.Dataset).Table(wbq.Table + SummaryTableSuffix)
}

// EnsureTables creates the peak and summary tables if they do not yet exist.
func (wbq *WrappedBigQuery) EnsureTables() error {
	for _, v := range []struct {
		Table *bigquery.Table
		Row   interface{}
	}{
		{wbq.peakTable(), PeakRow{}},
		{wbq.summaryTable(), beat.Summary{}},
	} {
		if _, err := v.Table.Metadata(wbq.Context); err == nil {
			continue
		} else if !isNotFound(err) {
			return pfx.Err(err)
		}

		schema, err := bigquery.InferSchema(v.Row)
		if err != nil {
			return pfx.Err(err)
		}

		if err := v.Table.Create(wbq.Context, &bigquery.TableMetadata{Schema: schema}); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

// SavePeaks streams rows into the peak table.
func (wbq *WrappedBigQuery) SavePeaks(rows []PeakRow) error {
	if len(rows) == 0 {
		return nil
	}

	if err := wbq.peakTable().Inserter().Put(wbq.Context, rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// SaveSummaries streams summaries into the summary table.
func (wbq *WrappedBigQuery) SaveSummaries(summaries []beat.Summary) error {
	if len(summaries) == 0 {
		return nil
	}

	if err := wbq.summaryTable().Inserter().Put(wbq.Context, summaries); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ExistingIdentifiers lists the subjects already uploaded. Every subject gets a
// summary row, even one without peaks, so the summary table is the one
// consulted. A missing table is not an error.
func (wbq *WrappedBigQuery) ExistingIdentifiers() (map[string]struct{}, error) {
	known := make(map[string]struct{})

	query := wbq.Client.Query(wbq.existingIdentifiersQuery())
	itr, err := query.Read(wbq.Context)
	if err != nil && isNotFound(err) {
		// The table just doesn't exist yet
		return known, nil
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	for {
		var values struct {
			Identifier string `bigquery:"identifier"`
		}
		err := itr.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}
		known[values.Identifier] = struct{}{}
	}

	return known, nil
}

func (wbq *WrappedBigQuery) existingIdentifiersQuery() string {
	return fmt.Sprintf("SELECT DISTINCT identifier FROM `%s.%s.%s%s`", wbq.Project, wbq.Dataset, wbq.Table, SummaryTableSuffix)
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
