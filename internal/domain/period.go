package domain

import "time"

// DateLayout is the calendar-day form used by water and weight records.
const DateLayout = "2006-01-02"

// Period is a named lookback window used to bound time-series queries.
type Period string

const (
	PeriodDay      Period = "day"
	PeriodWeek     Period = "week"
	PeriodMonth    Period = "month"
	PeriodQuarter  Period = "3m"
	PeriodHalfYear Period = "6m"
	PeriodYear     Period = "year"
)

// Collection defaults applied when a caller passes an unknown period.
const (
	DefaultMealPeriod   = PeriodWeek
	DefaultWaterPeriod  = PeriodWeek
	DefaultWeightPeriod = PeriodMonth
)

// Known reports whether p names one of the six lookback windows.
func (p Period) Known() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodHalfYear, PeriodYear:
		return true
	}
	return false
}

// Or returns p when it is a known period and def otherwise.
func (p Period) Or(def Period) Period {
	if p.Known() {
		return p
	}
	return def
}

// Start returns the inclusive lower bound of the window ending at now.
// "day" means the start of the current calendar day; the other windows
// are fixed offsets back from now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodQuarter:
		return now.AddDate(0, -3, 0)
	case PeriodHalfYear:
		return now.AddDate(0, -6, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	}
	return now.AddDate(0, 0, -7)
}

// StartDate returns the window lower bound as a DateLayout day, for
// collections keyed by calendar date rather than timestamp.
func (p Period) StartDate(now time.Time) string {
	return p.Start(now).Format(DateLayout)
}
