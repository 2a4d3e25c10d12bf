package stats

import (
	"strings"
	"testing"
)

func TestTrackerCounters(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordPage()
	tracker.RecordPage()
	tracker.RecordMissingTable()
	tracker.RecordRows(3, 2, 1)
	tracker.RecordRows(1, 0, 0)
	tracker.RecordUnparseable(1)
	tracker.AddBytes(1024)
	tracker.AddBytes(2048)

	if got := tracker.PagesFetched(); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
	if got := tracker.TablesMissing(); got != 1 {
		t.Fatalf("expected 1 missing table, got %d", got)
	}
	if got := tracker.RowsIncluded(); got != 4 {
		t.Fatalf("expected 4 included rows, got %d", got)
	}
	if got := tracker.RowsExcluded(); got != 2 {
		t.Fatalf("expected 2 excluded rows, got %d", got)
	}
	if got := tracker.RowsSkipped(); got != 1 {
		t.Fatalf("expected 1 skipped row, got %d", got)
	}
	if got := tracker.UnparseableCells(); got != 1 {
		t.Fatalf("expected 1 unparseable cell, got %d", got)
	}
	if got := tracker.TotalBytes(); got != 3072 {
		t.Fatalf("expected 3072 bytes, got %d", got)
	}

	tracker.Reset()
	if tracker.PagesFetched() != 0 || tracker.TotalBytes() != 0 {
		t.Fatalf("expected counters to reset")
	}
}

func TestSnapshotLines(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordPage()
	tracker.RecordRows(2, 1, 0)
	tracker.AddBytes(1073741824)

	lines := tracker.SnapshotLines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[2], "1.00 GB") || !strings.Contains(lines[2], "1,073,741,824") {
		t.Fatalf("unexpected bandwidth line: %q", lines[2])
	}
}
