package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-presensi/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// UpsertSession konvergen pada constraint unik (user_id, work_date): insert
	// jika belum ada, sentuh updated_at jika sudah ada.
	UpsertSession(ctx context.Context, s *AttendanceSession) error
	FindSessionByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*AttendanceSession, error)
	FindSessionsByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]AttendanceSession, error)
	FindSessionsBySatkerAndDate(ctx context.Context, satkerID string, workDate time.Time) ([]AttendanceSession, error)
	UpdateSession(ctx context.Context, s *AttendanceSession) error

	HasEvent(ctx context.Context, sessionID, eventType string) (bool, error)
	CreateEvent(ctx context.Context, e *AttendanceEvent) error
	FindEventsBySession(ctx context.Context, sessionID string) ([]AttendanceEvent, error)
	DeleteEventsBySession(ctx context.Context, sessionID string) error
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

func (r *repository) UpsertSession(ctx context.Context, s *AttendanceSession) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(s).Error
}

func (r *repository) FindSessionByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*AttendanceSession, error) {
	var s AttendanceSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("work_date = ?", workDate.Format("2006-01-02")).
		First(&s).Error
	return &s, err
}

func (r *repository) FindSessionsByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]AttendanceSession, error) {
	var sessions []AttendanceSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("work_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("work_date ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repository) FindSessionsBySatkerAndDate(ctx context.Context, satkerID string, workDate time.Time) ([]AttendanceSession, error) {
	var sessions []AttendanceSession
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Where("work_date = ?", workDate.Format("2006-01-02")).
		Order("check_in_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repository) UpdateSession(ctx context.Context, s *AttendanceSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) HasEvent(ctx context.Context, sessionID, eventType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AttendanceEvent{}).
		Where("session_id = ?", sessionID).
		Where("event_type = ?", eventType).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateEvent(ctx context.Context, e *AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindEventsBySession(ctx context.Context, sessionID string) ([]AttendanceEvent, error) {
	var events []AttendanceEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) DeleteEventsBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&AttendanceEvent{}).Error
}
