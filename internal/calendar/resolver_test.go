package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func standardPattern(effectiveFrom time.Time) WorkPattern {
	return WorkPattern{
		ID:            uuid.New(),
		SatkerID:      uuid.New(),
		EffectiveFrom: effectiveFrom,
		Monday:        true,
		Tuesday:       true,
		Wednesday:     true,
		Thursday:      true,
		Friday:        true,
		WorkStart:     "07:30",
		WorkEnd:       "16:00",
	}
}

func TestEffectivePattern_Selection(t *testing.T) {
	p1 := standardPattern(date(2024, 1, 1))
	p2 := standardPattern(date(2024, 6, 1))
	patterns := []WorkPattern{p1, p2}

	got := EffectivePattern(patterns, date(2024, 3, 15))
	assert.NotNil(t, got)
	assert.Equal(t, p1.ID, got.ID)

	got = EffectivePattern(patterns, date(2024, 7, 1))
	assert.NotNil(t, got)
	assert.Equal(t, p2.ID, got.ID)

	// Tepat di effective_from juga berlaku
	got = EffectivePattern(patterns, date(2024, 6, 1))
	assert.NotNil(t, got)
	assert.Equal(t, p2.ID, got.ID)
}

func TestEffectivePattern_AllInFuture(t *testing.T) {
	patterns := []WorkPattern{standardPattern(date(2025, 1, 1))}
	assert.Nil(t, EffectivePattern(patterns, date(2024, 12, 31)))
}

func TestResolveDay_RegularWorkday(t *testing.T) {
	p := standardPattern(date(2024, 1, 1))

	// 2024-03-15 adalah Jumat
	got := ResolveDay(&p, nil, date(2024, 3, 15))
	assert.Equal(t, DayTypeWorkday, got.DayType)
	assert.Equal(t, "07:30", *got.ExpectedStart)
	assert.Equal(t, "16:00", *got.ExpectedEnd)
}

func TestResolveDay_Weekend(t *testing.T) {
	p := standardPattern(date(2024, 1, 1))

	// 2024-03-16 adalah Sabtu
	got := ResolveDay(&p, nil, date(2024, 3, 16))
	assert.Equal(t, DayTypeHoliday, got.DayType)
	assert.Nil(t, got.ExpectedStart)
	assert.Nil(t, got.ExpectedEnd)
}

func TestResolveDay_NoPattern(t *testing.T) {
	got := ResolveDay(nil, nil, date(2024, 3, 15))
	assert.Equal(t, DayTypeHoliday, got.DayType)
}

func TestResolveDay_PatternHalfDay(t *testing.T) {
	p := standardPattern(date(2024, 1, 1))
	p.HalfDayWeekday = intPtr(int(time.Friday))
	p.HalfDayEnd = strPtr("11:30")

	got := ResolveDay(&p, nil, date(2024, 3, 15))
	assert.Equal(t, DayTypeHalfDay, got.DayType)
	assert.Equal(t, "07:30", *got.ExpectedStart)
	assert.Equal(t, "11:30", *got.ExpectedEnd)
}

func TestResolveDay_HolidayOverride(t *testing.T) {
	p := standardPattern(date(2024, 1, 1))
	holidays := []Holiday{{
		ID:          uuid.New(),
		Scope:       HolidayScopeNational,
		HolidayDate: date(2024, 3, 15),
		Kind:        HolidayKindHoliday,
		Name:        "Hari Libur Nasional",
	}}

	got := ResolveDay(&p, holidays, date(2024, 3, 15))
	assert.Equal(t, DayTypeHoliday, got.DayType)
	assert.Nil(t, got.ExpectedStart)
	assert.Nil(t, got.ExpectedEnd)
	assert.Equal(t, "Hari Libur Nasional", got.Note)
}

func TestResolveDay_SatkerOverridesNational(t *testing.T) {
	p := standardPattern(date(2024, 1, 1))
	satkerID := uuid.New()
	holidays := []Holiday{
		{
			ID:          uuid.New(),
			Scope:       HolidayScopeNational,
			HolidayDate: date(2024, 3, 15),
			Kind:        HolidayKindHoliday,
			Name:        "Libur Nasional",
		},
		{
			ID:          uuid.New(),
			Scope:       HolidayScopeSatker,
			SatkerID:    &satkerID,
			HolidayDate: date(2024, 3, 15),
			Kind:        HolidayKindHalfDay,
			Name:        "Setengah Hari Satker",
			HalfDayEnd:  strPtr("12:00"),
		},
	}

	got := ResolveDay(&p, holidays, date(2024, 3, 15))
	assert.Equal(t, DayTypeHalfDay, got.DayType)
	assert.Equal(t, "Setengah Hari Satker", got.Note)
	assert.Equal(t, "12:00", *got.ExpectedEnd)
}

func TestResolveDay_HalfDayHolidayFallsBackToPatternEnd(t *testing.T) {
	p := standardPattern(date(2024, 1, 1))
	p.HalfDayEnd = strPtr("11:00")
	holidays := []Holiday{{
		ID:          uuid.New(),
		Scope:       HolidayScopeNational,
		HolidayDate: date(2024, 3, 15),
		Kind:        HolidayKindHalfDay,
		Name:        "Cuti Bersama Setengah Hari",
	}}

	got := ResolveDay(&p, holidays, date(2024, 3, 15))
	assert.Equal(t, DayTypeHalfDay, got.DayType)
	assert.Equal(t, "11:00", *got.ExpectedEnd)
}

func TestParseDayType_RejectsUnknown(t *testing.T) {
	_, err := ParseDayType("WEEKEND")
	assert.Error(t, err)

	got, err := ParseDayType("HALF_DAY")
	assert.NoError(t, err)
	assert.Equal(t, DayTypeHalfDay, got)
}
