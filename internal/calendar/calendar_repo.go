package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreatePattern(ctx context.Context, p *WorkPattern) error
	// FindPatternsBySatker urut ascending by effective_from, sesuai kontrak
	// EffectivePattern.
	FindPatternsBySatker(ctx context.Context, satkerID string) ([]WorkPattern, error)
	DeletePattern(ctx context.Context, satkerID, id string) error

	CreateHoliday(ctx context.Context, h *Holiday) error
	// FindHolidaysInRange memuat holiday NATIONAL plus holiday SATKER milik
	// satker terkait untuk rentang tanggal inklusif.
	FindHolidaysInRange(ctx context.Context, satkerID string, from, to time.Time) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error

	UpsertCalendarDay(ctx context.Context, d *CalendarDay) error
	FindCalendarDay(ctx context.Context, satkerID string, date time.Time) (*CalendarDay, error)
	FindCalendarDaysInRange(ctx context.Context, satkerID string, from, to time.Time) ([]CalendarDay, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePattern(ctx context.Context, p *WorkPattern) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPatternsBySatker(ctx context.Context, satkerID string) ([]WorkPattern, error) {
	var patterns []WorkPattern
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Order("effective_from ASC").
		Find(&patterns).Error
	return patterns, err
}

func (r *repository) DeletePattern(ctx context.Context, satkerID, id string) error {
	return r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Delete(&WorkPattern{}, "id = ?", id).Error
}

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindHolidaysInRange(ctx context.Context, satkerID string, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", from, to).
		Where("scope = ? OR satker_id = ?", HolidayScopeNational, satkerID).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) DeleteHoliday(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}

func (r *repository) UpsertCalendarDay(ctx context.Context, d *CalendarDay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "satker_id"}, {Name: "work_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"day_type", "expected_start", "expected_end", "note", "updated_at",
			}),
		}).
		Create(d).Error
}

func (r *repository) FindCalendarDay(ctx context.Context, satkerID string, date time.Time) (*CalendarDay, error) {
	var d CalendarDay
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Where("work_date = ?", date).
		First(&d).Error
	return &d, err
}

func (r *repository) FindCalendarDaysInRange(ctx context.Context, satkerID string, from, to time.Time) ([]CalendarDay, error) {
	var days []CalendarDay
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Where("work_date BETWEEN ? AND ?", from, to).
		Order("work_date ASC").
		Find(&days).Error
	return days, err
}
