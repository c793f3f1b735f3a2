package tukin

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Jendela toleransi kehadiran untuk hari dengan jadwal dinas
	dutyGraceBefore = 30 * time.Minute
	dutyGraceAfter  = 180 * time.Minute
)

// Sumber kredit per hari pada breakdown snapshot
const (
	DaySourceDuty           = "DUTY"
	DaySourceCalendar       = "CALENDAR"
	DaySourceHolidayIgnored = "HOLIDAY_IGNORED"
	DaySourceNoCalendar     = "NO_CALENDAR"
)

type PolicyParams struct {
	MissingCheckoutPenaltyPct float64
	LateToleranceMin          int
	LatePenaltyPctPerMin      float64
	MaxDailyPenaltyPct        float64
	OutOfFencePenaltyPct      float64
}

type LeaveRuleParams struct {
	Credit          decimal.Decimal
	CountsAsPresent bool
}

type DutyWindow struct {
	StartAt time.Time
	EndAt   time.Time
}

// AttendanceMark adalah timestamp sesi per work_date.
type AttendanceMark struct {
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

type CalendarExpectation struct {
	DayType       string
	ExpectedStart *string // "HH:MM", nil saat tidak relevan
}

type LeaveSpan struct {
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
}

// EngineInput adalah potret read-only semua masukan akrual satu user satu
// bulan; engine murni dan tidak menyentuh store apa pun.
type EngineInput struct {
	UserID      string
	Month       string // YYYY-MM
	PeriodStart time.Time
	PeriodEnd   time.Time // inklusif
	Location    *time.Location

	BaseTukin  int64
	Policy     PolicyParams
	LeaveRules map[string]LeaveRuleParams

	Duties   []DutyWindow
	Calendar map[string]CalendarExpectation // key YYYY-MM-DD
	Sessions map[string]AttendanceMark      // key YYYY-MM-DD
	Leaves   []LeaveSpan
}

type DayResult struct {
	Date            string          `json:"date"`
	Source          string          `json:"source"`
	ExpectedUnit    decimal.Decimal `json:"expected_unit"`
	PresenceCredit  decimal.Decimal `json:"presence_credit"`
	LeaveCredit     decimal.Decimal `json:"leave_credit"`
	DayCredit       decimal.Decimal `json:"day_credit"`
	LeaveType       string          `json:"leave_type,omitempty"`
	LateMinutes     int             `json:"late_minutes"`
	MissingCheckout bool            `json:"missing_checkout"`
}

type UserAccrual struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`

	ExpectedUnits       decimal.Decimal `json:"expected_units"`
	EarnedCredit        decimal.Decimal `json:"earned_credit"`
	PresentDays         int             `json:"present_days"`
	AbsentDays          int             `json:"absent_days"`
	MissingCheckoutDays int             `json:"missing_checkout_days"`
	DutyPresentDays     int             `json:"duty_present_days"`
	DutyAbsentDays      int             `json:"duty_absent_days"`
	TotalLateMinutes    int             `json:"total_late_minutes"`

	AttendanceRatio decimal.Decimal `json:"attendance_ratio"`
	BaseTukin       int64           `json:"base_tukin"`
	FinalTukin      int64           `json:"final_tukin"`

	Days []DayResult `json:"days"`
}

// Accrue merekonsiliasi jadwal dinas, kalender, presensi, dan cuti menjadi
// kredit harian lalu agregat bulanan. Hari berjadwal dinas menimpa kalender;
// hari libur diabaikan seluruhnya; selain itu kredit hari adalah
// max(kredit kehadiran, kredit cuti).
func Accrue(in EngineInput) UserAccrual {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	one := decimal.NewFromInt(1)
	missingCheckoutCredit := one.Sub(decimal.NewFromFloat(in.Policy.MissingCheckoutPenaltyPct).Div(decimal.NewFromInt(100)))
	if missingCheckoutCredit.IsNegative() {
		missingCheckoutCredit = decimal.Zero
	}

	out := UserAccrual{
		UserID:          in.UserID,
		Month:           in.Month,
		ExpectedUnits:   decimal.Zero,
		EarnedCredit:    decimal.Zero,
		AttendanceRatio: decimal.Zero,
		BaseTukin:       in.BaseTukin,
	}

	for date := in.PeriodStart; !date.After(in.PeriodEnd); date = date.AddDate(0, 0, 1) {
		key := date.Format("2006-01-02")
		day := DayResult{
			Date:           key,
			ExpectedUnit:   decimal.Zero,
			PresenceCredit: decimal.Zero,
			LeaveCredit:    decimal.Zero,
			DayCredit:      decimal.Zero,
		}

		if duty, ok := dutyStartingOn(in.Duties, key, loc); ok {
			day = accrueDutyDay(day, duty, in, missingCheckoutCredit)
			if day.DayCredit.IsPositive() {
				out.DutyPresentDays++
			} else {
				out.DutyAbsentDays++
			}
		} else {
			day = accrueCalendarDay(day, key, date, in, missingCheckoutCredit, loc)
		}

		if day.ExpectedUnit.IsPositive() {
			out.ExpectedUnits = out.ExpectedUnits.Add(day.ExpectedUnit)
			out.EarnedCredit = out.EarnedCredit.Add(day.DayCredit)
			if day.DayCredit.IsPositive() {
				out.PresentDays++
			} else {
				out.AbsentDays++
			}
			if day.MissingCheckout {
				out.MissingCheckoutDays++
			}
			out.TotalLateMinutes += day.LateMinutes
		}

		out.Days = append(out.Days, day)
	}

	if out.ExpectedUnits.IsPositive() {
		out.AttendanceRatio = out.EarnedCredit.Div(out.ExpectedUnits)
	}
	out.FinalTukin = decimal.NewFromInt(in.BaseTukin).Mul(out.AttendanceRatio).Round(0).IntPart()

	return out
}

func dutyStartingOn(duties []DutyWindow, dateKey string, loc *time.Location) (DutyWindow, bool) {
	for _, d := range duties {
		if d.StartAt.In(loc).Format("2006-01-02") == dateKey {
			return d, true
		}
	}
	return DutyWindow{}, false
}

func accrueDutyDay(day DayResult, duty DutyWindow, in EngineInput, missingCheckoutCredit decimal.Decimal) DayResult {
	day.Source = DaySourceDuty
	day.ExpectedUnit = decimal.NewFromInt(1)

	windowStart := duty.StartAt.Add(-dutyGraceBefore)
	windowEnd := duty.EndAt.Add(dutyGraceAfter)

	checkIn, checkOut := marksInWindow(in.Sessions, windowStart, windowEnd)

	switch {
	case checkIn == nil:
		// Absen dinas: tidak ada kredit
	case checkOut == nil:
		day.PresenceCredit = missingCheckoutCredit
		day.MissingCheckout = true
	default:
		day.PresenceCredit = decimal.NewFromInt(1)
	}

	if checkIn != nil {
		day.LateMinutes = lateMinutes(*checkIn, duty.StartAt, in.Policy.LateToleranceMin)
	}

	day.DayCredit = day.PresenceCredit
	return day
}

// marksInWindow mencari CHECK_IN paling awal dan CHECK_OUT paling akhir di
// dalam jendela toleransi, menjelajahi semua sesi karena dinas bisa melewati
// batas hari.
func marksInWindow(sessions map[string]AttendanceMark, start, end time.Time) (*time.Time, *time.Time) {
	var earliestIn, latestOut *time.Time
	for _, m := range sessions {
		if m.CheckInAt != nil && !m.CheckInAt.Before(start) && !m.CheckInAt.After(end) {
			if earliestIn == nil || m.CheckInAt.Before(*earliestIn) {
				earliestIn = m.CheckInAt
			}
		}
		if m.CheckOutAt != nil && !m.CheckOutAt.Before(start) && !m.CheckOutAt.After(end) {
			if latestOut == nil || m.CheckOutAt.After(*latestOut) {
				latestOut = m.CheckOutAt
			}
		}
	}
	return earliestIn, latestOut
}

func accrueCalendarDay(day DayResult, key string, date time.Time, in EngineInput, missingCheckoutCredit decimal.Decimal, loc *time.Location) DayResult {
	cal, ok := in.Calendar[key]
	if !ok {
		day.Source = DaySourceNoCalendar
		return day
	}
	if cal.DayType == "HOLIDAY" {
		day.Source = DaySourceHolidayIgnored
		return day
	}

	day.Source = DaySourceCalendar
	day.ExpectedUnit = decimal.NewFromInt(1)

	mark := in.Sessions[key]
	switch {
	case mark.CheckInAt == nil:
		// Tanpa check-in kredit kehadiran nol
	case mark.CheckOutAt == nil:
		day.PresenceCredit = missingCheckoutCredit
		day.MissingCheckout = true
	default:
		day.PresenceCredit = decimal.NewFromInt(1)
	}

	if mark.CheckInAt != nil && cal.ExpectedStart != nil {
		if expected, err := expectedStartOn(date, *cal.ExpectedStart, loc); err == nil {
			day.LateMinutes = lateMinutes(*mark.CheckInAt, expected, in.Policy.LateToleranceMin)
		}
	}

	if leaveType, ok := leaveCovering(in.Leaves, date); ok {
		day.LeaveType = leaveType
		if rule, ok := in.LeaveRules[leaveType]; ok {
			day.LeaveCredit = rule.Credit
		}
	}

	// Cuti tidak pernah mengurangi hari yang sudah dikredit oleh kehadiran,
	// dan sebaliknya.
	day.DayCredit = decimal.Max(day.PresenceCredit, day.LeaveCredit)
	return day
}

func expectedStartOn(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func lateMinutes(checkIn, start time.Time, toleranceMin int) int {
	late := int(checkIn.Sub(start).Minutes())
	late -= toleranceMin
	if late < 0 {
		return 0
	}
	return late
}

// leaveCovering mengembalikan span pertama yang mencakup tanggal; urutan
// masukan menentukan pemenang saat tumpang tindih.
func leaveCovering(leaves []LeaveSpan, date time.Time) (string, bool) {
	for _, l := range leaves {
		if !date.Before(l.StartDate) && !date.After(l.EndDate) {
			return l.LeaveType, true
		}
	}
	return "", false
}
