package dietcalc

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// StartOfDay returns 00:00:00 of the same day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// utcMidnight returns midnight UTC of the calendar date t falls on in its own
// location. Differences between such values are whole days regardless of DST.
func utcMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDaysBetween returns the number of calendar days from a to b,
// counted on UTC-anchored midnights. b before a gives a negative result.
func CalendarDaysBetween(a, b time.Time) int {
	diff := utcMidnight(b).Sub(utcMidnight(a))
	return int(math.Floor(float64(diff) / float64(day)))
}

// localDaysBetween returns the rounded day distance between the local
// midnights of a and b. Rounding absorbs the 23h/25h days around DST
// transitions.
func localDaysBetween(a, b time.Time) int {
	diff := StartOfDay(b).Sub(StartOfDay(a))
	return int(math.Round(float64(diff) / float64(day)))
}

