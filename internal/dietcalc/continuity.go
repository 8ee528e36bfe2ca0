package dietcalc

import (
	"time"

	"github.com/Tiliavir/dietwatch/internal/model"
)

// minSuccessorGap allows a successor to start one day before the current
// diet ends.
const minSuccessorGap = -1

// Continuity describes whether a user already has a diet scheduled after the
// current one.
type Continuity struct {
	HasFutureDiet bool             `json:"hasFutureDiet"`
	GapDays       int              `json:"gapDays"`
	NextDietID    string           `json:"nextDietId,omitempty"`
	NextDietStart *model.Timestamp `json:"nextDietStartTimestamp,omitempty"`
}

// CheckFutureDiets scans all for the closest diet of the same user starting no
// earlier than one day before d ends. GapDays is the day distance between d's
// last day and the successor's first day, both taken at midnight in loc. On
// equal gaps the first diet in all wins. Diets without dates are skipped.
func CheckFutureDiets(d model.Diet, all []model.Diet, loc *time.Location) Continuity {
	none := Continuity{GapDays: DaysUnknown}
	if loc == nil {
		loc = time.Local
	}

	last, ok := LastDay(d)
	if !ok {
		return none
	}
	end := last.Time().In(loc)

	best := none
	for _, c := range all {
		if c.UserID != d.UserID || c.ID == d.ID {
			continue
		}
		first, ok := FirstDay(c)
		if !ok {
			continue
		}
		gap := localDaysBetween(end, first.Time().In(loc))
		if gap < minSuccessorGap {
			continue
		}
		if !best.HasFutureDiet || gap < best.GapDays {
			start := first
			best = Continuity{
				HasFutureDiet: true,
				GapDays:       gap,
				NextDietID:    c.ID,
				NextDietStart: &start,
			}
		}
	}
	return best
}
