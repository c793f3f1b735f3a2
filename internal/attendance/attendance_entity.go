package attendance

import (
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"

	"github.com/google/uuid"
)

const (
	EventCheckIn  = "CHECK_IN"
	EventCheckOut = "CHECK_OUT"
)

const (
	StatusOpen      = "OPEN"
	StatusComplete  = "COMPLETE"
	StatusCorrected = "CORRECTED"
)

const (
	LeaveTypeNormal    = "NORMAL"
	LeaveTypeDinasLuar = "DINAS_LUAR"
	LeaveTypeSakit     = "SAKIT"
	LeaveTypeIzin      = "IZIN"
)

var allowedLeaveTypes = map[string]struct{}{
	LeaveTypeNormal:    {},
	LeaveTypeDinasLuar: {},
	LeaveTypeSakit:     {},
	LeaveTypeIzin:      {},
}

// ParseLeaveType menolak tipe yang tidak dikenal alih-alih memakai default.
func ParseLeaveType(v string) (string, error) {
	if v == "" {
		return LeaveTypeNormal, nil
	}
	if _, ok := allowedLeaveTypes[v]; !ok {
		return "", attendanceerrors.ErrInvalidLeaveType
	}
	return v, nil
}

// AttendanceSession adalah satu baris per (user_id, work_date); dibuat lewat
// upsert ON CONFLICT supaya dua check-in bersamaan konvergen ke baris yang sama.
type AttendanceSession struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_sessions_satker"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_sessions_user_date"`
	WorkDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_sessions_user_date"`

	CheckInAt  *time.Time
	CheckOutAt *time.Time
	Status     string `gorm:"type:varchar(20);not null;default:'OPEN'"`

	Corrected      bool       `gorm:"not null;default:false"`
	CorrectionNote *string    `gorm:"type:text"`
	CorrectedBy    *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

// AttendanceEvent bersifat append-only; di alur normal sebuah sesi punya
// paling banyak satu CHECK_IN dan satu CHECK_OUT.
type AttendanceEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_events_session"`
	EventType string    `gorm:"type:varchar(20);not null"`

	OccurredAt time.Time `gorm:"not null"`
	Lat        float64   `gorm:"not null"`
	Lon        float64   `gorm:"not null"`
	AccuracyM  float64
	GeofenceID uuid.UUID `gorm:"type:uuid;not null"`
	DistanceM  float64   `gorm:"not null"`
	DeviceID   string    `gorm:"type:varchar(100);not null"`

	LeaveType string `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	Notes     string `gorm:"type:text"`

	// Skor liveness/match dihitung di luar sistem; di sini hanya direkam apa
	// adanya bersama kunci objek selfie.
	SelfieKey     string   `gorm:"type:varchar(255)"`
	LivenessScore *float64 `gorm:"type:decimal(5,4)"`
	MatchScore    *float64 `gorm:"type:decimal(5,4)"`

	CreatedAt time.Time
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}
