package dietcalc

import (
	"fmt"
	"sort"
	"time"

	"github.com/Tiliavir/dietwatch/internal/model"
)

// Row pairs a diet with its evaluated indicator.
type Row struct {
	Diet      model.Diet
	Indicator Indicator
}

// Snapshot evaluates every diet in diets against the whole collection, so
// continuity is found among each user's own diets.
func Snapshot(diets []model.Diet, now time.Time) []Row {
	rows := make([]Row, 0, len(diets))
	for _, d := range diets {
		rows = append(rows, Row{Diet: d, Indicator: Evaluate(d, diets, now)})
	}
	return rows
}

// Filter selects which rows a listing shows.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterEnded    Filter = "ended"
	FilterWarnings Filter = "warnings"
)

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterActive, FilterEnded, FilterWarnings:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, active, ended or warnings)", s)
}

func (f Filter) match(r Row) bool {
	switch f {
	case FilterActive:
		return r.Indicator.Kind != KindEnded
	case FilterEnded:
		return r.Indicator.Kind == KindEnded
	case FilterWarnings:
		return r.Indicator.Kind != KindEnded && r.Indicator.Kind != KindNone
	default:
		return true
	}
}

// FilterRows returns the rows matching f, preserving order.
func FilterRows(rows []Row, f Filter) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortKey orders a listing.
type SortKey string

const (
	SortDays     SortKey = "days"
	SortSeverity SortKey = "severity"
	SortUser     SortKey = "user"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortDays, SortSeverity, SortUser:
		return k, nil
	case "":
		return SortDays, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want days, severity or user)", s)
}

// lessDays orders by days remaining, ended diets last.
func lessDays(a, b Row) bool {
	da, db := a.Indicator.DaysRemaining, b.Indicator.DaysRemaining
	if (da < 0) != (db < 0) {
		return db < 0
	}
	return da < db
}

// SortRows sorts rows in place. The sort is stable.
func SortRows(rows []Row, key SortKey) {
	var less func(a, b Row) bool
	switch key {
	case SortSeverity:
		less = func(a, b Row) bool {
			ta, tb := a.Indicator.Tier(), b.Indicator.Tier()
			if ta != tb {
				return ta > tb
			}
			return lessDays(a, b)
		}
	case SortUser:
		less = func(a, b Row) bool {
			if a.Diet.UserID != b.Diet.UserID {
				return a.Diet.UserID < b.Diet.UserID
			}
			return lessDays(a, b)
		}
	default:
		less = lessDays
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

// Summary counts rows by state.
type Summary struct {
	Total            int `json:"total" yaml:"total"`
	Critical         int `json:"critical" yaml:"critical"`
	Warning          int `json:"warning" yaml:"warning"`
	Normal           int `json:"normal" yaml:"normal"`
	Ended            int `json:"ended" yaml:"ended"`
	WithoutSuccessor int `json:"withoutSuccessor" yaml:"without_successor"`
}

// Summarize counts rows. Ended diets are counted only as ended, never as
// normal. WithoutSuccessor counts critical and warning diets with nothing
// scheduled after them.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		s.Total++
		switch r.Indicator.Kind {
		case KindEnded:
			s.Ended++
			continue
		case KindCriticalNoSuccessor, KindWarningNoSuccessor:
			s.WithoutSuccessor++
		}
		switch r.Indicator.Status {
		case StatusCritical:
			s.Critical++
		case StatusWarning:
			s.Warning++
		default:
			s.Normal++
		}
	}
	return s
}
