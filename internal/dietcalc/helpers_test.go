package dietcalc_test

import (
	"time"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
	"github.com/Tiliavir/dietwatch/internal/model"
)

// now is the fixed instant every test evaluates against.
var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

// dayAt returns a timestamp at 09:00 on the day offset days from ref.
func dayAt(ref time.Time, offset int) *model.Timestamp {
	ts := model.TimestampFromTime(dietcalc.StartOfDay(ref).AddDate(0, 0, offset).Add(9 * time.Hour))
	return &ts
}

// newDiet builds a diet with one day per offset from now, in the given order.
func newDiet(id, user string, offsets ...int) model.Diet {
	d := model.Diet{ID: id, UserID: user}
	for _, off := range offsets {
		d.Days = append(d.Days, model.DietDay{Date: dayAt(now, off)})
	}
	return d
}
