package tukin

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ScopeGlobal = "GLOBAL"
	ScopeSatker = "SATKER"
)

// TukinPolicy memegang parameter pemotongan; kebijakan SATKER yang mencakup
// periode menang atas GLOBAL.
type TukinPolicy struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Scope    string     `gorm:"type:varchar(10);not null;index:idx_tukin_policies_scope_from"`
	SatkerID *uuid.UUID `gorm:"type:uuid;index"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;index:idx_tukin_policies_scope_from"`
	EffectiveTo   *time.Time `gorm:"type:date"`

	MissingCheckoutPenaltyPct float64 `gorm:"type:decimal(5,2);not null;default:0"`
	LateToleranceMin          int     `gorm:"type:int;not null;default:0"`
	LatePenaltyPctPerMin      float64 `gorm:"type:decimal(5,2);not null;default:0"`
	MaxDailyPenaltyPct        float64 `gorm:"type:decimal(5,2);not null;default:100"`
	OutOfFencePenaltyPct      float64 `gorm:"type:decimal(5,2);not null;default:0"`

	LeaveRules []TukinLeaveRule `gorm:"foreignKey:PolicyID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_tukin_policies_deleted_at"`
}

func (TukinPolicy) TableName() string {
	return "tukin_policies"
}

// TukinLeaveRule memetakan tipe cuti APPROVED ke kredit harian 0..1.
type TukinLeaveRule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PolicyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_tukin_leave_rules_policy_type"`

	LeaveType       string  `gorm:"type:varchar(30);not null;uniqueIndex:uq_tukin_leave_rules_policy_type"`
	Credit          float64 `gorm:"type:decimal(3,2);not null"`
	CountsAsPresent bool    `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TukinLeaveRule) TableName() string {
	return "tukin_leave_rules"
}

// TukinCalculation adalah snapshot bulanan idempoten, unik per (month,
// user_id). force=false memakai baris ini sebagai cache.
type TukinCalculation struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Month    string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_tukin_calculations_month_user"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_tukin_calculations_month_user"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_tukin_calculations_satker"`

	ExpectedUnits       float64 `gorm:"type:decimal(6,2);not null"`
	EarnedCredit        float64 `gorm:"type:decimal(6,2);not null"`
	PresentDays         int     `gorm:"type:int;not null"`
	AbsentDays          int     `gorm:"type:int;not null"`
	MissingCheckoutDays int     `gorm:"type:int;not null"`
	DutyPresentDays     int     `gorm:"type:int;not null"`
	DutyAbsentDays      int     `gorm:"type:int;not null"`
	TotalLateMinutes    int     `gorm:"type:int;not null"`

	AttendanceRatio float64 `gorm:"type:decimal(7,6);not null"`
	BaseTukin       int64   `gorm:"type:bigint;not null"`
	FinalTukin      int64   `gorm:"type:bigint;not null"`

	Breakdown   datatypes.JSON `gorm:"type:jsonb;not null"`
	GeneratedBy uuid.UUID      `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TukinCalculation) TableName() string {
	return "tukin_calculations"
}
