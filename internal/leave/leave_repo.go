package leave

import (
	"context"
	"database/sql"
	"time"

	"go-presensi/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAllBySatker(ctx context.Context, satkerID string) ([]LeaveRequest, error)
	FindByIDAndSatker(ctx context.Context, satkerID, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	// FindApprovedByUserInRange dipakai engine akrual: hanya baris APPROVED
	// yang periodenya beririsan dengan [from, to].
	FindApprovedByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllBySatker(ctx context.Context, satkerID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndSatker(ctx context.Context, satkerID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status NOT IN ?", []string{StatusRejected, StatusCanceled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", from, to).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}
