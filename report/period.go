package report

import "fmt"

// Period identifies one report month.
type Period struct {
	Year  int
	Month int
}

// Key returns the chronological label used in exports, e.g. "2024-03".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Entry is the aggregated private bandwidth of one month.
type Entry struct {
	Period Period
	Bytes  int64
}

// Aggregate holds per-month totals in chronological order.
type Aggregate struct {
	Entries []Entry
}

// TotalBytes sums the aggregate across all months.
func (a Aggregate) TotalBytes() int64 {
	var total int64
	for _, e := range a.Entries {
		total += e.Bytes
	}
	return total
}

// PeriodRange expands an inclusive start and end month into chronological
// order, crossing year boundaries as needed. An inverted or malformed range
// is an error rather than an empty crawl.
func PeriodRange(start, end Period) ([]Period, error) {
	if start.Year < 1 || end.Year < 1 {
		return nil, fmt.Errorf("report: year must be positive, got %d..%d", start.Year, end.Year)
	}
	if start.Month < 1 || start.Month > 12 {
		return nil, fmt.Errorf("report: start month %d out of range", start.Month)
	}
	if end.Month < 1 || end.Month > 12 {
		return nil, fmt.Errorf("report: end month %d out of range", end.Month)
	}
	if start.Year > end.Year || (start.Year == end.Year && start.Month > end.Month) {
		return nil, fmt.Errorf("report: range %s..%s is inverted", start.Key(), end.Key())
	}

	var periods []Period
	p := start
	for {
		periods = append(periods, p)
		if p == end {
			break
		}
		p.Month++
		if p.Month > 12 {
			p.Month = 1
			p.Year++
		}
	}
	return periods, nil
}
