package reports

import (
	"errors"
	"time"
)

// Period names accepted by the report endpoints.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

var ErrUnknownPeriod = errors.New("unknown period")

// WindowStart maps a period name to its cutoff: today = midnight of the
// current day, week = seven days back, month = one calendar month back.
func WindowStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	}
	return time.Time{}, ErrUnknownPeriod
}

// WindowDays is the day count used for trend series per period.
func WindowDays(period string) int {
	switch period {
	case PeriodToday:
		return 1
	case PeriodWeek:
		return 7
	default:
		return 30
	}
}
