// Package dietcalc derives the end-of-diet warning state shown for a diet:
// days remaining, severity, continuity with the next diet and the resulting
// display indicator. All functions are pure and take the current instant as
// a parameter.
package dietcalc

import (
	"sort"
	"time"

	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
)

// DaysUnknown is returned by DaysRemaining when the diet has no usable last
// day or has already ended.
const DaysUnknown = -1

// WarningStatus is the severity of a diet nearing its end.
type WarningStatus string

const (
	StatusCritical WarningStatus = "critical"
	StatusWarning  WarningStatus = "warning"
	StatusNormal   WarningStatus = "normal"
)

// datedDays returns the dates of every day that has one, in ascending order.
// Days with equal timestamps keep their stored order.
func datedDays(d model.Diet) []model.Timestamp {
	dates := make([]model.Timestamp, 0, len(d.Days))
	for _, dd := range d.Days {
		if dd.HasDate() {
			dates = append(dates, *dd.Date)
		}
	}
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Seconds < dates[j].Seconds
	})
	return dates
}

// FirstDay returns the chronologically first date of the diet. ok is false
// when no day carries a date.
func FirstDay(d model.Diet) (model.Timestamp, bool) {
	dates := datedDays(d)
	if len(dates) == 0 {
		return model.Timestamp{}, false
	}
	return dates[0], true
}

// LastDay returns the chronologically last date of the diet. ok is false
// when no day carries a date.
func LastDay(d model.Diet) (model.Timestamp, bool) {
	dates := datedDays(d)
	if len(dates) == 0 {
		return model.Timestamp{}, false
	}
	return dates[len(dates)-1], true
}

// DaysRemaining returns the number of calendar days from now until the
// diet's last day, 0 when it ends today. It returns DaysUnknown if the diet
// has no dated days or the last day is already in the past. The calendar
// dates are taken in now's location.
func DaysRemaining(d model.Diet, now time.Time) int {
	last, ok := LastDay(d)
	if !ok || last.Seconds < 0 || last.Seconds > model.MaxSeconds {
		return DaysUnknown
	}
	end := time.Unix(last.Seconds, 0).In(now.Location())
	days := CalendarDaysBetween(now, end)
	if days < 0 {
		return DaysUnknown
	}
	return days
}

// ClassifyDays maps a days-remaining count to a warning status: 0 or 1 is
// critical, 2 or 3 is warning, anything else (including DaysUnknown) is normal.
func ClassifyDays(days int) WarningStatus {
	switch {
	case days >= 0 && days <= 1:
		return StatusCritical
	case days > 1 && days <= 3:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// WarningStatusOf classifies the diet's remaining days.
func WarningStatusOf(d model.Diet, now time.Time) WarningStatus {
	return ClassifyDays(DaysRemaining(d, now))
}

// IsEnded reports whether the diet's end lies in the past. Diets without any
// dated day count as ended.
func IsEnded(d model.Diet, now time.Time) bool {
	return DaysRemaining(d, now) < 0
}

// StatusTextForDays returns the short status phrase for a days-remaining
// count. Diets more than three days from their end get no text.
func StatusTextForDays(days int, p i18n.Phrases) string {
	switch {
	case days < 0:
		return p.Ended
	case days == 0:
		return p.EndsToday
	case days == 1:
		return p.EndsTomorrow
	case days <= 3:
		return p.EndsInDays(days)
	default:
		return ""
	}
}

// StatusText returns the short status phrase for the diet.
func StatusText(d model.Diet, now time.Time, p i18n.Phrases) string {
	return StatusTextForDays(DaysRemaining(d, now), p)
}
