package calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DayType string

const (
	DayTypeWorkday DayType = "WORKDAY"
	DayTypeHoliday DayType = "HOLIDAY"
	DayTypeHalfDay DayType = "HALF_DAY"
)

// ParseDayType menolak nilai tak dikenal, tidak ada default diam-diam.
func ParseDayType(s string) (DayType, error) {
	switch DayType(s) {
	case DayTypeWorkday, DayTypeHoliday, DayTypeHalfDay:
		return DayType(s), nil
	default:
		return "", fmt.Errorf("unknown day type: %q", s)
	}
}

type HolidayScope string

const (
	HolidayScopeNational HolidayScope = "NATIONAL"
	HolidayScopeSatker   HolidayScope = "SATKER"
)

func ParseHolidayScope(s string) (HolidayScope, error) {
	switch HolidayScope(s) {
	case HolidayScopeNational, HolidayScopeSatker:
		return HolidayScope(s), nil
	default:
		return "", fmt.Errorf("unknown holiday scope: %q", s)
	}
}

type HolidayKind string

const (
	HolidayKindHoliday HolidayKind = "HOLIDAY"
	HolidayKindHalfDay HolidayKind = "HALF_DAY"
)

func ParseHolidayKind(s string) (HolidayKind, error) {
	switch HolidayKind(s) {
	case HolidayKindHoliday, HolidayKindHalfDay:
		return HolidayKind(s), nil
	default:
		return "", fmt.Errorf("unknown holiday kind: %q", s)
	}
}

// WorkPattern adalah pola kerja mingguan satker. Pola yang berlaku untuk
// sebuah tanggal adalah baris dengan effective_from terakhir yang tidak
// melewati tanggal itu.
type WorkPattern struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID      uuid.UUID `gorm:"type:uuid;not null;index:idx_work_patterns_satker_from"`
	EffectiveFrom time.Time `gorm:"type:date;not null;index:idx_work_patterns_satker_from"`

	Monday    bool `gorm:"not null;default:true"`
	Tuesday   bool `gorm:"not null;default:true"`
	Wednesday bool `gorm:"not null;default:true"`
	Thursday  bool `gorm:"not null;default:true"`
	Friday    bool `gorm:"not null;default:true"`
	Saturday  bool `gorm:"not null;default:false"`
	Sunday    bool `gorm:"not null;default:false"`

	WorkStart string `gorm:"type:varchar(5);not null;default:'07:30'"` // HH:MM
	WorkEnd   string `gorm:"type:varchar(5);not null;default:'16:00'"`

	// Hari pendek opsional (mis. Jumat), aktif hanya jika HalfDayEnd terisi
	HalfDayWeekday *int    `gorm:"type:smallint"` // 0=Minggu .. 6=Sabtu, mengikuti time.Weekday
	HalfDayEnd     *string `gorm:"type:varchar(5)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p WorkPattern) WorksOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return p.Monday
	case time.Tuesday:
		return p.Tuesday
	case time.Wednesday:
		return p.Wednesday
	case time.Thursday:
		return p.Thursday
	case time.Friday:
		return p.Friday
	case time.Saturday:
		return p.Saturday
	default:
		return p.Sunday
	}
}

type Holiday struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Scope       HolidayScope `gorm:"type:varchar(10);not null"`
	SatkerID    *uuid.UUID   `gorm:"type:uuid;index"` // nil untuk NATIONAL
	HolidayDate time.Time    `gorm:"type:date;not null;index"`
	Kind        HolidayKind  `gorm:"type:varchar(10);not null;default:'HOLIDAY'"`
	Name        string       `gorm:"type:varchar(150);not null"`
	HalfDayEnd  *string      `gorm:"type:varchar(5)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalendarDay adalah hasil resolve yang dimaterialisasi per (satker, tanggal)
// supaya bisa dikoreksi manual setelah digenerate.
type CalendarDay struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_calendar_days_satker_date"`
	WorkDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_calendar_days_satker_date"`

	DayType       DayType `gorm:"type:varchar(10);not null"`
	ExpectedStart *string `gorm:"type:varchar(5)"`
	ExpectedEnd   *string `gorm:"type:varchar(5)"`
	Note          string  `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
