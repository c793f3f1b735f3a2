package calendar

import "time"

// ResolvedDay adalah ekspektasi kerja satu tanggal sebelum dimaterialisasi.
type ResolvedDay struct {
	DayType       DayType
	ExpectedStart *string
	ExpectedEnd   *string
	Note          string
}

// EffectivePattern memilih pola dengan effective_from terakhir yang <= date.
// patterns harus terurut ascending by effective_from. Nil jika semua pola
// masih di masa depan.
func EffectivePattern(patterns []WorkPattern, date time.Time) *WorkPattern {
	var effective *WorkPattern
	for i := range patterns {
		if patterns[i].EffectiveFrom.After(date) {
			break
		}
		effective = &patterns[i]
	}
	return effective
}

// ResolveDay menggabungkan pola mingguan dengan override hari libur.
// Holiday scope SATKER menang atas NATIONAL pada tanggal yang sama.
func ResolveDay(pattern *WorkPattern, holidays []Holiday, date time.Time) ResolvedDay {
	day := resolveFromPattern(pattern, date)

	override := pickHolidayOverride(holidays, date)
	if override == nil {
		return day
	}

	switch override.Kind {
	case HolidayKindHoliday:
		return ResolvedDay{
			DayType: DayTypeHoliday,
			Note:    override.Name,
		}
	default: // HALF_DAY
		end := override.HalfDayEnd
		if end == nil && pattern != nil {
			end = pattern.HalfDayEnd
		}
		if end == nil {
			end = day.ExpectedEnd
		}
		return ResolvedDay{
			DayType:       DayTypeHalfDay,
			ExpectedStart: day.ExpectedStart,
			ExpectedEnd:   end,
			Note:          override.Name,
		}
	}
}

func resolveFromPattern(pattern *WorkPattern, date time.Time) ResolvedDay {
	if pattern == nil || !pattern.WorksOn(date.Weekday()) {
		return ResolvedDay{DayType: DayTypeHoliday}
	}

	start := pattern.WorkStart
	end := pattern.WorkEnd

	if pattern.HalfDayWeekday != nil &&
		pattern.HalfDayEnd != nil &&
		time.Weekday(*pattern.HalfDayWeekday) == date.Weekday() {
		return ResolvedDay{
			DayType:       DayTypeHalfDay,
			ExpectedStart: &start,
			ExpectedEnd:   pattern.HalfDayEnd,
		}
	}

	return ResolvedDay{
		DayType:       DayTypeWorkday,
		ExpectedStart: &start,
		ExpectedEnd:   &end,
	}
}

// pickHolidayOverride memilih override untuk satu tanggal; entri SATKER
// mengalahkan entri NATIONAL.
func pickHolidayOverride(holidays []Holiday, date time.Time) *Holiday {
	var national *Holiday
	for i := range holidays {
		h := &holidays[i]
		if !sameDate(h.HolidayDate, date) {
			continue
		}
		if h.Scope == HolidayScopeSatker {
			return h
		}
		if national == nil {
			national = h
		}
	}
	return national
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
