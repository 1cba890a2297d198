package scheduling

import (
	"time"
)

// Default clinic working-hours window and slot granularity, UTC
const (
	DefaultStartHour   = 9
	DefaultEndHour     = 17
	DefaultSlotMinutes = 30
)

// GenerateGrid produces every [start, start+slotMinutes) interval with start on
// the slotMinutes grid between startHour:00 and endHour:00 on the given date,
// in UTC. Intervals with start at or before now are dropped, so the grid never
// offers retroactive bookings. For a fixed date and now the result is
// deterministic.
func GenerateGrid(date time.Time, startHour, endHour, slotMinutes int, now time.Time) []Interval {
	if slotMinutes <= 0 || endHour <= startHour {
		return nil
	}

	d := date.UTC()
	cursor := time.Date(d.Year(), d.Month(), d.Day(), startHour, 0, 0, 0, time.UTC)
	windowEnd := time.Date(d.Year(), d.Month(), d.Day(), endHour, 0, 0, 0, time.UTC)
	step := time.Duration(slotMinutes) * time.Minute

	var slots []Interval
	for !cursor.Add(step).After(windowEnd) {
		if cursor.After(now) {
			slots = append(slots, Interval{Start: cursor, End: cursor.Add(step)})
		}
		cursor = cursor.Add(step)
	}
	return slots
}

// DefaultGrid generates the grid with the clinic defaults (9:00-17:00, 30 minutes)
func DefaultGrid(date time.Time, now time.Time) []Interval {
	return GenerateGrid(date, DefaultStartHour, DefaultEndHour, DefaultSlotMinutes, now)
}
