package dutyschedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCanceled  = "CANCELLED"
)

// DutySchedule adalah penugasan terjadwal yang menimpa ekspektasi kalender
// reguler; tidak boleh saling tumpang tindih untuk user yang sama.
type DutySchedule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_duty_schedules_satker"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_duty_schedules_user_start"`

	StartAt time.Time `gorm:"not null;index:idx_duty_schedules_user_start"`
	EndAt   time.Time `gorm:"not null"`
	Notes   string    `gorm:"type:text"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_duty_schedules_deleted_at"`
}

func (DutySchedule) TableName() string {
	return "duty_schedules"
}

// DutyScheduleRequest adalah jalur pengajuan; baris DutySchedule baru dibuat
// saat pengajuan disetujui, dengan pengecekan ulang overlap pada saat itu.
type DutyScheduleRequest struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_duty_schedule_requests_satker_status"`
	UserID   uuid.UUID `gorm:"type:uuid;not null"`

	StartAt time.Time `gorm:"not null"`
	EndAt   time.Time `gorm:"not null"`
	Notes   string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'SUBMITTED';index:idx_duty_schedule_requests_satker_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`
	ScheduleID      *uuid.UUID `gorm:"type:uuid"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_duty_schedule_requests_deleted_at"`
}

func (DutyScheduleRequest) TableName() string {
	return "duty_schedule_requests"
}
