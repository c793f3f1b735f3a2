package leave

import (
	"time"

	leaveerrors "go-presensi/internal/leave/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCanceled  = "CANCELLED"
)

const (
	TypeCutiTahunan = "CUTI_TAHUNAN"
	TypeCutiBesar   = "CUTI_BESAR"
	TypeSakit       = "SAKIT"
	TypeIzin        = "IZIN"
	TypeDinasLuar   = "DINAS_LUAR"
)

var allowedLeaveTypes = map[string]struct{}{
	TypeCutiTahunan: {},
	TypeCutiBesar:   {},
	TypeSakit:       {},
	TypeIzin:        {},
	TypeDinasLuar:   {},
}

// ParseLeaveType menolak tipe yang tidak dikenal alih-alih memakai default.
func ParseLeaveType(v string) (string, error) {
	if _, ok := allowedLeaveTypes[v]; !ok {
		return "", leaveerrors.ErrInvalidLeaveType
	}
	return v, nil
}

type LeaveRequest struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_satker_status"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'SUBMITTED';index:idx_leave_requests_satker_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
