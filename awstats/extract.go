package awstats

import (
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/bandwidth"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/privip"
)

// othersToken is the bucket AWStats uses for hosts it stopped tracking
// individually. Their traffic is internal mirror noise here, so it counts.
const othersToken = "Others"

const (
	// headerRows is the number of leading rows before host data: the column
	// titles and the per-column totals line.
	headerRows = 2

	// minRowCells is the narrowest layout that still carries a bandwidth
	// column: host, pages, hits, two intermediate columns, bandwidth.
	minRowCells = 6

	hostCell      = 0
	bandwidthCell = 5
)

// Summary totals one extraction pass over a host table.
type Summary struct {
	TotalBytes       int64
	RowsIncluded     int // private hosts plus the "Others" bucket
	RowsExcluded     int // well-formed rows for public hosts
	RowsSkipped      int // rows with too few cells to carry a bandwidth column
	UnparseableCells int // included rows whose bandwidth cell did not parse
}

// Purpose: Sum the bandwidth column over private hosts and the "Others"
// bucket.
// Key aspects: Skips the two header rows, ignores short rows, and treats an
// unparseable bandwidth cell as zero bytes while counting it for diagnostics.
// A nil table (month without data) yields an all-zero summary.
// Upstream: report.Generate.
// Downstream: privip.IsPrivate, bandwidth.Parse.
func SumPrivateBandwidth(table *HostTable) Summary {
	var sum Summary
	if table == nil || len(table.Rows) <= headerRows {
		return sum
	}
	for _, cells := range table.Rows[headerRows:] {
		if len(cells) < minRowCells {
			sum.RowsSkipped++
			continue
		}
		host := cells[hostCell]
		if host != othersToken && !privip.IsPrivate(host) {
			sum.RowsExcluded++
			continue
		}
		n, ok := bandwidth.Parse(cells[bandwidthCell])
		if !ok {
			sum.UnparseableCells++
		}
		sum.RowsIncluded++
		sum.TotalBytes += n
	}
	return sum
}
