package dietcalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
)

func TestDietWithoutDatesHasNoEnd(t *testing.T) {
	diets := map[string]model.Diet{
		"no days":        {ID: "a"},
		"nil dates":      {ID: "b", Days: []model.DietDay{{}, {Date: nil}}},
		"epoch date":     {ID: "c", Days: []model.DietDay{{Date: &model.Timestamp{}}}},
		"empty day list": {ID: "d", Days: []model.DietDay{}},
	}
	for name, d := range diets {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, dietcalc.DaysUnknown, dietcalc.DaysRemaining(d, now))
			assert.True(t, dietcalc.IsEnded(d, now))
			assert.Equal(t, dietcalc.StatusNormal, dietcalc.WarningStatusOf(d, now))
			assert.Equal(t, "Ended", dietcalc.StatusText(d, now, i18n.English()))
		})
	}
}

func TestFirstAndLastDay(t *testing.T) {
	d := newDiet("d1", "u1", 5, -2, 2)
	d.Days = append(d.Days, model.DietDay{})

	first, ok := dietcalc.FirstDay(d)
	require.True(t, ok)
	assert.Equal(t, dayAt(now, -2).Seconds, first.Seconds)

	last, ok := dietcalc.LastDay(d)
	require.True(t, ok)
	assert.Equal(t, dayAt(now, 5).Seconds, last.Seconds)

	_, ok = dietcalc.FirstDay(model.Diet{})
	assert.False(t, ok)
	_, ok = dietcalc.LastDay(model.Diet{Days: []model.DietDay{{}}})
	assert.False(t, ok)
}

func TestFirstDayStableOnEqualDates(t *testing.T) {
	ts := dayAt(now, 1)
	same := *ts
	same.Nanoseconds = 7
	d := model.Diet{Days: []model.DietDay{{Date: &same}, {Date: ts}}}

	first, ok := dietcalc.FirstDay(d)
	require.True(t, ok)
	assert.Equal(t, int64(7), first.Nanoseconds, "equal seconds keep stored order")
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name       string
		lastOffset int
		wantDays   int
		wantStatus dietcalc.WarningStatus
		wantText   string
		wantEnded  bool
	}{
		{"ends today", 0, 0, dietcalc.StatusCritical, "Ends today", false},
		{"ends tomorrow", 1, 1, dietcalc.StatusCritical, "Ends tomorrow", false},
		{"ends in two days", 2, 2, dietcalc.StatusWarning, "Ends in 2 days", false},
		{"ends in three days", 3, 3, dietcalc.StatusWarning, "Ends in 3 days", false},
		{"ends in four days", 4, 4, dietcalc.StatusNormal, "", false},
		{"ends in a month", 30, 30, dietcalc.StatusNormal, "", false},
		{"ended yesterday", -1, -1, dietcalc.StatusNormal, "Ended", true},
		{"ended five days ago", -5, -1, dietcalc.StatusNormal, "Ended", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiet("d1", "u1", tt.lastOffset-10, tt.lastOffset)
			assert.Equal(t, tt.wantDays, dietcalc.DaysRemaining(d, now))
			assert.Equal(t, tt.wantStatus, dietcalc.WarningStatusOf(d, now))
			assert.Equal(t, tt.wantText, dietcalc.StatusText(d, now, i18n.English()))
			assert.Equal(t, tt.wantEnded, dietcalc.IsEnded(d, now))
		})
	}
}

func TestDaysRemainingUnsortedDays(t *testing.T) {
	d := newDiet("d1", "u1", 2, 6, -3, 1)
	assert.Equal(t, 6, dietcalc.DaysRemaining(d, now))
}

func TestDaysRemainingIgnoresTimeOfDay(t *testing.T) {
	lateLast := model.TimestampFromTime(time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC))
	d := model.Diet{Days: []model.DietDay{{Date: &lateLast}}}

	earlyMorning := time.Date(2026, 10, 14, 0, 1, 0, 0, time.UTC)
	lateEvening := time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, dietcalc.DaysRemaining(d, earlyMorning))
	assert.Equal(t, 1, dietcalc.DaysRemaining(d, lateEvening))
	assert.Equal(t, 0, dietcalc.DaysRemaining(d, time.Date(2026, 10, 15, 23, 59, 30, 0, time.UTC)))
}

func TestDaysRemainingUsesLocalCalendarDate(t *testing.T) {
	warsawSummer := time.FixedZone("CEST", 2*60*60)
	// 22:30 UTC is already the next day at UTC+2.
	last := model.TimestampFromTime(time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC))
	d := model.Diet{Days: []model.DietDay{{Date: &last}}}

	localNow := time.Date(2026, 10, 14, 20, 0, 0, 0, warsawSummer)
	assert.Equal(t, 1, dietcalc.DaysRemaining(d, localNow))
	assert.Equal(t, 0, dietcalc.DaysRemaining(d, localNow.UTC()))
}

func TestDaysRemainingAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	// Clocks go back on 2026-10-25.
	localNow := time.Date(2026, 10, 24, 12, 0, 0, 0, loc)
	last := model.TimestampFromTime(time.Date(2026, 10, 27, 0, 30, 0, 0, loc))
	d := model.Diet{Days: []model.DietDay{{Date: &last}}}
	assert.Equal(t, 3, dietcalc.DaysRemaining(d, localNow))
}

func TestDaysRemainingEpochDateIsEnded(t *testing.T) {
	// A malformed date normalises to the epoch, which is long past.
	d := model.Diet{Days: []model.DietDay{{Date: &model.Timestamp{}}}}
	assert.Equal(t, dietcalc.DaysUnknown, dietcalc.DaysRemaining(d, now))
}

func TestDaysRemainingOutOfRangeSeconds(t *testing.T) {
	d := model.Diet{Days: []model.DietDay{{Date: &model.Timestamp{Seconds: 1 << 62}}}}
	assert.Equal(t, dietcalc.DaysUnknown, dietcalc.DaysRemaining(d, now))
}

func TestClassifyDays(t *testing.T) {
	tests := []struct {
		days int
		want dietcalc.WarningStatus
	}{
		{-100, dietcalc.StatusNormal},
		{-2, dietcalc.StatusNormal},
		{-1, dietcalc.StatusNormal},
		{0, dietcalc.StatusCritical},
		{1, dietcalc.StatusCritical},
		{2, dietcalc.StatusWarning},
		{3, dietcalc.StatusWarning},
		{4, dietcalc.StatusNormal},
		{365, dietcalc.StatusNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dietcalc.ClassifyDays(tt.days), "ClassifyDays(%d)", tt.days)
	}
}

func TestStatusTextForDaysPolish(t *testing.T) {
	p := i18n.Polish()
	assert.Equal(t, "Zakończona", dietcalc.StatusTextForDays(-1, p))
	assert.Equal(t, "Kończy się dzisiaj", dietcalc.StatusTextForDays(0, p))
	assert.Equal(t, "Kończy się jutro", dietcalc.StatusTextForDays(1, p))
	assert.Equal(t, "Kończy się za 2 dni", dietcalc.StatusTextForDays(2, p))
	assert.Equal(t, "", dietcalc.StatusTextForDays(4, p))
}

func TestDerivationsAreIdempotent(t *testing.T) {
	d := newDiet("d1", "u1", 3, 1, 2)
	snapshot := newDiet("d1", "u1", 3, 1, 2)

	assert.Equal(t, dietcalc.DaysRemaining(d, now), dietcalc.DaysRemaining(d, now))
	assert.Equal(t, dietcalc.WarningStatusOf(d, now), dietcalc.WarningStatusOf(d, now))
	assert.Equal(t, dietcalc.Evaluate(d, nil, now), dietcalc.Evaluate(d, nil, now))
	assert.Equal(t, snapshot, d, "derivations must not reorder the stored days")
}
