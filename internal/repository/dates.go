package repository

import "time"

// dayBounds returns the UTC midnight of date and of the following day,
// used for half-open calendar-day range queries.
func dayBounds(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
