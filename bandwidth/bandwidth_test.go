package bandwidth

import "testing"

func TestParseKnownLiterals(t *testing.T) {
	cases := []struct {
		literal string
		want    int64
	}{
		{"12 KB", 12288},
		{"2.5 MB", 2621440},
		{"1 GB", 1073741824},
		{"0.5 TB", 549755813888},
		{"512 B", 512},
		{"0 B", 0},
		{"12KB", 12288},
		{"  12 KB  ", 12288},
		{"12 kb", 12288},
		{"2.5 mB", 2621440},
		{"1.5 GB", 1610612736},
		{"1.5\u00a0GB", 1610612736},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.literal)
		if !ok {
			t.Fatalf("Parse(%q) not ok", tc.literal)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.literal, got, tc.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"garbage",
		"KB",
		"KB 12",
		"-",
		"twelve KB",
		"1.5 PB",
	}
	for _, literal := range cases {
		got, ok := Parse(literal)
		if ok || got != 0 {
			t.Fatalf("Parse(%q) = (%d, %v), want (0, false)", literal, got, ok)
		}
	}
}

func TestParseRejectsOverflowingLiterals(t *testing.T) {
	// 2^33 GB is exactly 2^63 bytes, one past the largest count the codec can
	// represent; anything at or above that is corrupt report data.
	cases := []string{
		"8589934592 GB",
		"99999999999 TB",
	}
	for _, literal := range cases {
		got, ok := Parse(literal)
		if ok || got != 0 {
			t.Fatalf("Parse(%q) = (%d, %v), want (0, false)", literal, got, ok)
		}
	}

	// The largest whole-TB literal that still fits must keep parsing exactly.
	got, ok := Parse("8388607 TB")
	if !ok || got != 9223370937343148032 {
		t.Fatalf("Parse(8388607 TB) = (%d, %v), want (9223370937343148032, true)", got, ok)
	}
}

func TestParseIgnoresTrailingText(t *testing.T) {
	// AWStats cells sometimes carry footnotes after the size; the leading
	// literal still counts.
	got, ok := Parse("1.5 GB (estimated)")
	if !ok || got != 1610612736 {
		t.Fatalf("Parse with trailing text = (%d, %v), want (1610612736, true)", got, ok)
	}
}

func TestParseTruncatesTowardZero(t *testing.T) {
	got, ok := Parse("1.1 GB")
	if !ok {
		t.Fatalf("Parse(1.1 GB) not ok")
	}
	if got != 1181116006 {
		t.Fatalf("Parse(1.1 GB) = %d, want 1181116006", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1073741824, "1.00 GB"},
		{2621440, "2.50 MB"},
		{549755813888, "512.00 GB"},
		{1649267441664, "1.50 TB"},
	}
	for _, tc := range cases {
		if got := Format(tc.bytes); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestFormatRoundTripsThroughParse(t *testing.T) {
	values := []int64{0, 1, 1024, 12288, 2621440, 1073741824, 549755813888}
	for _, v := range values {
		got, ok := Parse(Format(v))
		if v > 0 && !ok {
			t.Fatalf("Parse(Format(%d)) not ok", v)
		}
		if got != v {
			t.Fatalf("Parse(Format(%d)) = %d, want exact round trip", v, got)
		}
	}
}
