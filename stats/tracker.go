// Package stats tracks crawl counters for periodic console output and the
// end-of-run summary.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/bandwidth"
)

// Tracker tracks fetch and extraction statistics for one crawl.
type Tracker struct {
	// counters are atomics so parallel period workers don't fight over a mutex
	start            atomic.Int64
	pagesFetched     atomic.Uint64
	tablesMissing    atomic.Uint64
	rowsIncluded     atomic.Uint64
	rowsExcluded     atomic.Uint64
	rowsSkipped      atomic.Uint64
	unparseableCells atomic.Uint64
	totalBytes       atomic.Int64
}

// NewTracker creates a new stats tracker
func NewTracker() *Tracker {
	t := &Tracker{}
	t.start.Store(time.Now().UnixNano())
	return t
}

// RecordPage counts one successfully fetched report page.
func (t *Tracker) RecordPage() {
	t.pagesFetched.Add(1)
}

// RecordMissingTable counts a fetched page that carried no host table.
func (t *Tracker) RecordMissingTable() {
	t.tablesMissing.Add(1)
}

// RecordRows accumulates the row dispositions of one extraction pass.
func (t *Tracker) RecordRows(included, excluded, skipped int) {
	t.rowsIncluded.Add(uint64(included))
	t.rowsExcluded.Add(uint64(excluded))
	t.rowsSkipped.Add(uint64(skipped))
}

// RecordUnparseable counts bandwidth cells that did not parse and were
// treated as zero bytes.
func (t *Tracker) RecordUnparseable(n int) {
	t.unparseableCells.Add(uint64(n))
}

// AddBytes accumulates extracted private bandwidth.
func (t *Tracker) AddBytes(n int64) {
	t.totalBytes.Add(n)
}

// PagesFetched returns the cumulative number of fetched report pages.
func (t *Tracker) PagesFetched() uint64 {
	return t.pagesFetched.Load()
}

// TablesMissing returns the cumulative number of pages without a host table.
func (t *Tracker) TablesMissing() uint64 {
	return t.tablesMissing.Load()
}

// RowsIncluded returns the cumulative number of counted host rows.
func (t *Tracker) RowsIncluded() uint64 {
	return t.rowsIncluded.Load()
}

// RowsExcluded returns the cumulative number of public-host rows.
func (t *Tracker) RowsExcluded() uint64 {
	return t.rowsExcluded.Load()
}

// RowsSkipped returns the cumulative number of rows too short to carry a
// bandwidth column.
func (t *Tracker) RowsSkipped() uint64 {
	return t.rowsSkipped.Load()
}

// UnparseableCells returns the cumulative number of bandwidth cells treated
// as zero.
func (t *Tracker) UnparseableCells() uint64 {
	return t.unparseableCells.Load()
}

// TotalBytes returns the cumulative extracted private bandwidth.
func (t *Tracker) TotalBytes() int64 {
	return t.totalBytes.Load()
}

// Uptime returns how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	start := t.start.Load()
	return time.Since(time.Unix(0, start))
}

// Reset resets all counters
func (t *Tracker) Reset() {
	t.pagesFetched.Store(0)
	t.tablesMissing.Store(0)
	t.rowsIncluded.Store(0)
	t.rowsExcluded.Store(0)
	t.rowsSkipped.Store(0)
	t.unparseableCells.Store(0)
	t.totalBytes.Store(0)
	t.start.Store(time.Now().UnixNano())
}

// SnapshotLines returns human-readable stats ready for console display.
func (t *Tracker) SnapshotLines() []string {
	lines := make([]string, 0, 3)
	lines = append(lines, fmt.Sprintf("Pages fetched: %s (%s without host data)",
		humanize.Comma(int64(t.pagesFetched.Load())), humanize.Comma(int64(t.tablesMissing.Load()))))
	lines = append(lines, fmt.Sprintf("Rows: %s counted, %s public, %s skipped, %s unparseable",
		humanize.Comma(int64(t.rowsIncluded.Load())), humanize.Comma(int64(t.rowsExcluded.Load())),
		humanize.Comma(int64(t.rowsSkipped.Load())), humanize.Comma(int64(t.unparseableCells.Load()))))
	total := t.totalBytes.Load()
	lines = append(lines, fmt.Sprintf("Private bandwidth: %s (%s bytes)",
		bandwidth.Format(total), humanize.Comma(total)))
	return lines
}
