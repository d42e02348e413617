package app

import (
	"fmt"
	"strconv"
	"time"

	"nutrilog/internal/domain"
)

// ChartSeries is a chart-ready set of labeled buckets. Labels appear in
// the order their bucket was first seen during the scan.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// bucketLabel maps a point in time to its grouping key for the period:
// hour of day, weekday, day of month, ISO week, or month.
func bucketLabel(t time.Time, p domain.Period) string {
	switch p {
	case domain.PeriodDay:
		return fmt.Sprintf("%02d:00", t.Hour())
	case domain.PeriodWeek:
		return t.Format("Mon")
	case domain.PeriodMonth:
		return strconv.Itoa(t.Day())
	case domain.PeriodQuarter:
		_, wk := t.ISOWeek()
		return fmt.Sprintf("W%02d", wk)
	default: // 6m, year
		return t.Format("Jan")
	}
}

// BuildCalorieSeries groups meals into period buckets, summing calories
// within a bucket. Calories are additive, unlike weight.
func BuildCalorieSeries(meals []domain.MealRecord, p domain.Period) ChartSeries {
	series := ChartSeries{Labels: []string{}, Values: []float64{}}
	index := map[string]int{}
	for _, m := range meals {
		label := bucketLabel(m.MealTime, p)
		i, ok := index[label]
		if !ok {
			i = len(series.Labels)
			index[label] = i
			series.Labels = append(series.Labels, label)
			series.Values = append(series.Values, 0)
		}
		series.Values[i] += float64(m.Calories)
	}
	return series
}

// BuildWeightSeries groups weight records into period buckets. Weight is
// a point-in-time quantity, so within a bucket the record with the most
// recent record_date observed during the single left-to-right scan wins.
func BuildWeightSeries(records []domain.WeightRecord, p domain.Period) ChartSeries {
	series := ChartSeries{Labels: []string{}, Values: []float64{}}
	index := map[string]int{}
	lastDate := map[string]string{}
	for _, r := range records {
		day, err := time.Parse(domain.DateLayout, r.RecordDate)
		if err != nil {
			continue
		}
		label := bucketLabel(day, p)
		i, ok := index[label]
		if !ok {
			i = len(series.Labels)
			index[label] = i
			series.Labels = append(series.Labels, label)
			series.Values = append(series.Values, r.WeightKG)
			lastDate[label] = r.RecordDate
			continue
		}
		if r.RecordDate >= lastDate[label] {
			series.Values[i] = r.WeightKG
			lastDate[label] = r.RecordDate
		}
	}
	return series
}
