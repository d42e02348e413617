package domain

import (
	"testing"
	"time"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		want   time.Time
	}{
		{PeriodDay, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2025, 3, 8, 14, 30, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC)},
		{PeriodQuarter, time.Date(2024, 12, 15, 14, 30, 0, 0, time.UTC)},
		{PeriodHalfYear, time.Date(2024, 9, 15, 14, 30, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got := tt.period.Start(now)
			if !got.Equal(tt.want) {
				t.Errorf("Start(%v) = %v, want %v", now, got, tt.want)
			}
		})
	}
}

func TestPeriodOr(t *testing.T) {
	if got := Period("fortnight").Or(DefaultMealPeriod); got != PeriodWeek {
		t.Errorf("unknown period fell back to %q, want %q", got, PeriodWeek)
	}
	if got := PeriodYear.Or(DefaultWeightPeriod); got != PeriodYear {
		t.Errorf("known period replaced by default: got %q", got)
	}
	if got := Period("").Or(DefaultWeightPeriod); got != PeriodMonth {
		t.Errorf("empty period fell back to %q, want %q", got, PeriodMonth)
	}
}

func TestPeriodStartDate(t *testing.T) {
	now := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)
	if got := PeriodMonth.StartDate(now); got != "2024-12-10" {
		t.Errorf("StartDate = %q, want 2024-12-10", got)
	}
}
