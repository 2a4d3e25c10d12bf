// Package report orchestrates a crawl across a month range and exports the
// aggregated private bandwidth as CSV, JSON, and a PNG chart.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/archive"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/awstats"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/bandwidth"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/stats"
)

type Logger interface {
	Printf(format string, args ...any)
}

// Fetcher retrieves the host table for one month. *awstats.Client satisfies
// it; tests substitute local servers or fakes.
type Fetcher interface {
	FetchMonthly(ctx context.Context, year, month int) (*awstats.HostTable, error)
}

type Options struct {
	Client      Fetcher
	Start       Period
	End         Period
	CSVPath     string
	JSONPath    string // empty leaves the JSON export off
	ChartPath   string
	ChartWidth  int
	ChartHeight int
	Workers     int
	Tracker     *stats.Tracker
	Archive     *archive.Store
	Logger      Logger
}

type Result struct {
	Aggregate Aggregate
	CSVPath   string
	JSONPath  string
	ChartPath string
	RunID     int64 // zero when the archive is off or the save failed
}

// Generate crawls every month in the range and writes the exports. Any fetch
// failure aborts the whole run before anything is written, so stale exports
// are never partially overwritten. A month without host data is only a
// warning and counts as zero bytes.
func Generate(ctx context.Context, opts Options) (Result, error) {
	var result Result
	logf := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger.Printf(format, args...)
		}
	}
	if opts.Client == nil {
		return result, fmt.Errorf("report: no client configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now().UTC()

	periods, err := PeriodRange(opts.Start, opts.End)
	if err != nil {
		return result, err
	}

	csvPath := strings.TrimSpace(opts.CSVPath)
	if csvPath == "" {
		csvPath = "monthly_bandwidth_data.csv"
	}
	chartPath := strings.TrimSpace(opts.ChartPath)
	if chartPath == "" {
		chartPath = "yearly_bandwidth_usage.png"
	}
	jsonPath := strings.TrimSpace(opts.JSONPath)

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	entries := make([]Entry, len(periods))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, period := range periods {
		i, period := i, period
		g.Go(func() error {
			logf("Processing %s...", period.Key())
			table, err := opts.Client.FetchMonthly(gctx, period.Year, period.Month)
			if err != nil {
				return err
			}
			if opts.Tracker != nil {
				opts.Tracker.RecordPage()
			}
			if table == nil {
				logf("Warning: no host data for %s; counting zero bytes", period.Key())
				if opts.Tracker != nil {
					opts.Tracker.RecordMissingTable()
				}
			}
			sum := awstats.SumPrivateBandwidth(table)
			if opts.Tracker != nil {
				opts.Tracker.RecordRows(sum.RowsIncluded, sum.RowsExcluded, sum.RowsSkipped)
				opts.Tracker.RecordUnparseable(sum.UnparseableCells)
				opts.Tracker.AddBytes(sum.TotalBytes)
			}
			logf("Total bandwidth for %s: %s", period.Key(), bandwidth.Format(sum.TotalBytes))
			entries[i] = Entry{Period: period, Bytes: sum.TotalBytes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	agg := Aggregate{Entries: entries}

	if err := WriteCSV(csvPath, agg); err != nil {
		return result, err
	}
	result.CSVPath = csvPath

	if jsonPath != "" {
		if err := WriteJSON(jsonPath, agg); err != nil {
			return result, err
		}
		result.JSONPath = jsonPath
	}

	if err := RenderChart(chartPath, agg, opts.ChartWidth, opts.ChartHeight); err != nil {
		return result, err
	}
	result.ChartPath = chartPath

	if opts.Archive != nil {
		rows := make([]archive.PeriodBytes, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, archive.PeriodBytes{Period: e.Period.Key(), Bytes: e.Bytes})
		}
		runID, err := opts.Archive.SaveRun(ctx, started, opts.Start.Key(), opts.End.Key(), rows)
		if err != nil {
			logf("Warning: failed to record run: %v", err)
		} else {
			result.RunID = runID
		}
	}

	result.Aggregate = agg
	return result, nil
}
