package dietcalc

import (
	"time"

	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
)

// Kind is the display case a diet falls into.
type Kind int

const (
	KindNone Kind = iota
	KindEnded
	KindCriticalWithSuccessor
	KindCriticalNoSuccessor
	KindWarningWithSuccessor
	KindWarningNoSuccessor
)

var kindNames = map[Kind]string{
	KindNone:                  "none",
	KindEnded:                 "ended",
	KindCriticalWithSuccessor: "critical-with-successor",
	KindCriticalNoSuccessor:   "critical-no-successor",
	KindWarningWithSuccessor:  "warning-with-successor",
	KindWarningNoSuccessor:    "warning-no-successor",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Tier is the visual weight of an indicator. Higher values are more urgent,
// except TierNeutral which only marks an ended diet.
type Tier int

const (
	TierNone Tier = iota
	TierNeutral
	TierInfo
	TierCaution
	TierAlarm
)

var tierNames = [...]string{"none", "neutral", "info", "caution", "alarm"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// Tier returns the display tier of k. A critical diet that already has a
// successor drops to caution; a warning diet without one rises to caution.
func (k Kind) Tier() Tier {
	switch k {
	case KindEnded:
		return TierNeutral
	case KindCriticalNoSuccessor:
		return TierAlarm
	case KindCriticalWithSuccessor, KindWarningNoSuccessor:
		return TierCaution
	case KindWarningWithSuccessor:
		return TierInfo
	default:
		return TierNone
	}
}

// Indicator is the fully evaluated display state of one diet.
type Indicator struct {
	Kind          Kind
	DaysRemaining int
	Status        WarningStatus
	Continuity    Continuity
}

// Tier is shorthand for ind.Kind.Tier().
func (ind Indicator) Tier() Tier {
	return ind.Kind.Tier()
}

// Evaluate combines days remaining, warning status and continuity into the
// indicator shown for d. all should hold every diet of d's user; other users'
// diets are ignored.
func Evaluate(d model.Diet, all []model.Diet, now time.Time) Indicator {
	days := DaysRemaining(d, now)
	ind := Indicator{
		Kind:          KindNone,
		DaysRemaining: days,
		Status:        ClassifyDays(days),
		Continuity:    CheckFutureDiets(d, all, now.Location()),
	}

	switch {
	case days < 0:
		ind.Kind = KindEnded
	case days > 3 && ind.Status != StatusCritical:
		ind.Kind = KindNone
	case ind.Status == StatusCritical:
		if ind.Continuity.HasFutureDiet {
			ind.Kind = KindCriticalWithSuccessor
		} else {
			ind.Kind = KindCriticalNoSuccessor
		}
	case ind.Status == StatusWarning:
		if ind.Continuity.HasFutureDiet {
			ind.Kind = KindWarningWithSuccessor
		} else {
			ind.Kind = KindWarningNoSuccessor
		}
	}
	return ind
}

// IndicatorText renders the message for ind, e.g. "Ends tomorrow, next diet
// starts the day after". KindNone renders as the empty string.
func IndicatorText(ind Indicator, p i18n.Phrases) string {
	switch ind.Kind {
	case KindNone:
		return ""
	case KindEnded:
		return p.Ended
	case KindCriticalWithSuccessor, KindWarningWithSuccessor:
		return StatusTextForDays(ind.DaysRemaining, p) + ", " + SuccessorText(ind.Continuity.GapDays, p)
	default:
		return StatusTextForDays(ind.DaysRemaining, p) + ", " + p.NoSuccessor
	}
}

// SuccessorText describes when the next diet starts relative to the last day
// of the current one.
func SuccessorText(gapDays int, p i18n.Phrases) string {
	switch gapDays {
	case -1:
		return p.NextOverlaps
	case 0:
		return p.NextSameDay
	case 1:
		return p.NextDayAfter
	default:
		return p.NextInDays(gapDays)
	}
}
