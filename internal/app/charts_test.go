package app

import (
	"reflect"
	"testing"
	"time"

	"nutrilog/internal/domain"
)

func TestBuildCalorieSeries(t *testing.T) {
	meals := []domain.MealRecord{
		{Calories: 300, MealTime: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)},  // Monday
		{Calories: 500, MealTime: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)}, // Monday again
		{Calories: 400, MealTime: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)},  // Tuesday
	}

	got := BuildCalorieSeries(meals, domain.PeriodWeek)

	if !reflect.DeepEqual(got.Labels, []string{"Mon", "Tue"}) {
		t.Errorf("Labels = %v, want [Mon Tue]", got.Labels)
	}
	if !reflect.DeepEqual(got.Values, []float64{800, 400}) {
		t.Errorf("Values = %v, want [800 400] (calories sum within a bucket)", got.Values)
	}
}

func TestBuildCalorieSeriesEmpty(t *testing.T) {
	got := BuildCalorieSeries(nil, domain.PeriodWeek)
	if len(got.Labels) != 0 || len(got.Values) != 0 {
		t.Errorf("got %+v, want empty series", got)
	}
	if got.Labels == nil || got.Values == nil {
		t.Error("series slices must be non-nil for JSON encoding")
	}
}

func TestBuildWeightSeriesLastWriteWins(t *testing.T) {
	records := []domain.WeightRecord{
		{WeightKG: 80, RecordDate: "2025-06-02"}, // Monday
		{WeightKG: 79, RecordDate: "2025-06-03"}, // Tuesday
		{WeightKG: 78, RecordDate: "2025-06-02"}, // Monday again, same date
	}

	got := BuildWeightSeries(records, domain.PeriodWeek)

	if !reflect.DeepEqual(got.Labels, []string{"Mon", "Tue"}) {
		t.Errorf("Labels = %v, want [Mon Tue]", got.Labels)
	}
	// Within a bucket the most recent record date wins; on a tie the
	// later entry in scan order wins.
	if !reflect.DeepEqual(got.Values, []float64{78, 79}) {
		t.Errorf("Values = %v, want [78 79]", got.Values)
	}
}

func TestBuildWeightSeriesLaterDateWinsRegardlessOfOrder(t *testing.T) {
	// Year period puts a whole month in one bucket; the record with the
	// later date wins even when it is scanned first.
	recs := []domain.WeightRecord{
		{WeightKG: 82, RecordDate: "2025-06-20"},
		{WeightKG: 81, RecordDate: "2025-06-05"},
	}
	got := BuildWeightSeries(recs, domain.PeriodYear)
	if !reflect.DeepEqual(got.Labels, []string{"Jun"}) {
		t.Fatalf("Labels = %v, want [Jun]", got.Labels)
	}
	if got.Values[0] != 82 {
		t.Errorf("Values[0] = %v, want 82 (latest record date wins)", got.Values[0])
	}
}

func TestBuildWeightSeriesSkipsUnparsableDates(t *testing.T) {
	records := []domain.WeightRecord{
		{WeightKG: 80, RecordDate: "not-a-date"},
		{WeightKG: 79, RecordDate: "2025-06-03"},
	}
	got := BuildWeightSeries(records, domain.PeriodWeek)
	if len(got.Values) != 1 || got.Values[0] != 79 {
		t.Errorf("got %+v, want only the parsable record", got)
	}
}

func TestBucketLabel(t *testing.T) {
	at := time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC) // Tuesday, ISO week 23

	tests := []struct {
		period domain.Period
		want   string
	}{
		{domain.PeriodDay, "14:00"},
		{domain.PeriodWeek, "Tue"},
		{domain.PeriodMonth, "3"},
		{domain.PeriodQuarter, "W23"},
		{domain.PeriodHalfYear, "Jun"},
		{domain.PeriodYear, "Jun"},
	}

	for _, tt := range tests {
		if got := bucketLabel(at, tt.period); got != tt.want {
			t.Errorf("bucketLabel(%v) = %q, want %q", tt.period, got, tt.want)
		}
	}
}
