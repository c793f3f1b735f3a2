package dutyschedule

import (
	"context"
	"database/sql"
	"time"

	"go-presensi/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateSchedule(ctx context.Context, d *DutySchedule) error
	FindSchedulesBySatker(ctx context.Context, satkerID string) ([]DutySchedule, error)
	DeleteSchedule(ctx context.Context, satkerID, id string) error
	HasOverlappingSchedule(ctx context.Context, userID string, startAt, endAt time.Time, excludeID *string) (bool, error)
	// FindSchedulesByUserInRange dipakai engine akrual: jadwal yang start_at-nya
	// jatuh di [from, to], urut naik.
	FindSchedulesByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]DutySchedule, error)

	CreateRequest(ctx context.Context, req *DutyScheduleRequest) error
	FindRequestsBySatker(ctx context.Context, satkerID string) ([]DutyScheduleRequest, error)
	FindRequestByIDAndSatker(ctx context.Context, satkerID, id string) (*DutyScheduleRequest, error)
	UpdateRequest(ctx context.Context, req *DutyScheduleRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx mengikat seluruh operasi repo ke transaksi milik pemanggil;
// commit/rollback tetap di tangan service.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := connection.GormOverTx(tx)
	if err != nil {
		return r
	}
	return &repository{db: db}
}

func (r *repository) CreateSchedule(ctx context.Context, d *DutySchedule) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindSchedulesBySatker(ctx context.Context, satkerID string) ([]DutySchedule, error) {
	var schedules []DutySchedule
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Order("start_at DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) DeleteSchedule(ctx context.Context, satkerID, id string) error {
	return r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Delete(&DutySchedule{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingSchedule(ctx context.Context, userID string, startAt, endAt time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&DutySchedule{}).
		Where("user_id = ?", userID).
		Where("NOT (end_at <= ? OR start_at >= ?)", startAt, endAt)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindSchedulesByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]DutySchedule, error) {
	var schedules []DutySchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_at >= ? AND start_at < ?", from, to).
		Order("start_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) CreateRequest(ctx context.Context, req *DutyScheduleRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequestsBySatker(ctx context.Context, satkerID string) ([]DutyScheduleRequest, error) {
	var requests []DutyScheduleRequest
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindRequestByIDAndSatker(ctx context.Context, satkerID, id string) (*DutyScheduleRequest, error) {
	var req DutyScheduleRequest
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) UpdateRequest(ctx context.Context, req *DutyScheduleRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
