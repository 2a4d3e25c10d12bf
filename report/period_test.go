package report

import "testing"

func TestPeriodKey(t *testing.T) {
	cases := []struct {
		period Period
		want   string
	}{
		{Period{2024, 3}, "2024-03"},
		{Period{2024, 12}, "2024-12"},
		{Period{999, 1}, "0999-01"},
	}
	for _, tc := range cases {
		if got := tc.period.Key(); got != tc.want {
			t.Fatalf("Key(%+v) = %q, want %q", tc.period, got, tc.want)
		}
	}
}

func TestPeriodRangeCrossesYearBoundary(t *testing.T) {
	periods, err := PeriodRange(Period{2023, 11}, Period{2024, 2})
	if err != nil {
		t.Fatalf("PeriodRange: %v", err)
	}
	want := []Period{{2023, 11}, {2023, 12}, {2024, 1}, {2024, 2}}
	if len(periods) != len(want) {
		t.Fatalf("expected %d periods, got %d: %+v", len(want), len(periods), periods)
	}
	for i, p := range want {
		if periods[i] != p {
			t.Fatalf("period %d: expected %+v, got %+v", i, p, periods[i])
		}
	}
}

func TestPeriodRangeSingleMonth(t *testing.T) {
	periods, err := PeriodRange(Period{2024, 6}, Period{2024, 6})
	if err != nil {
		t.Fatalf("PeriodRange: %v", err)
	}
	if len(periods) != 1 || periods[0] != (Period{2024, 6}) {
		t.Fatalf("unexpected periods: %+v", periods)
	}
}

func TestPeriodRangeFullYears(t *testing.T) {
	periods, err := PeriodRange(Period{2020, 1}, Period{2022, 12})
	if err != nil {
		t.Fatalf("PeriodRange: %v", err)
	}
	if len(periods) != 36 {
		t.Fatalf("expected 36 periods, got %d", len(periods))
	}
	if periods[0].Key() != "2020-01" || periods[35].Key() != "2022-12" {
		t.Fatalf("unexpected endpoints: %s..%s", periods[0].Key(), periods[35].Key())
	}
}

func TestPeriodRangeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name       string
		start, end Period
	}{
		{"inverted years", Period{2024, 1}, Period{2023, 12}},
		{"inverted months", Period{2024, 5}, Period{2024, 4}},
		{"zero month", Period{2024, 0}, Period{2024, 6}},
		{"thirteenth month", Period{2024, 1}, Period{2024, 13}},
		{"zero year", Period{0, 1}, Period{2024, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := PeriodRange(tc.start, tc.end); err == nil {
				t.Fatalf("expected error for %+v..%+v", tc.start, tc.end)
			}
		})
	}
}

func TestAggregateTotalBytes(t *testing.T) {
	agg := Aggregate{Entries: []Entry{
		{Period{2024, 1}, 1024},
		{Period{2024, 2}, 0},
		{Period{2024, 3}, 2048},
	}}
	if got := agg.TotalBytes(); got != 3072 {
		t.Fatalf("expected 3072, got %d", got)
	}
}
