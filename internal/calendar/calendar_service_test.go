package calendar

import (
	"context"
	"testing"
	"time"

	calendarerrors "go-presensi/internal/calendar/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	patterns []WorkPattern
	holidays []Holiday
	upserted []CalendarDay
}

func (f *fakeRepo) CreatePattern(ctx context.Context, p *WorkPattern) error {
	f.patterns = append(f.patterns, *p)
	return nil
}
func (f *fakeRepo) FindPatternsBySatker(ctx context.Context, satkerID string) ([]WorkPattern, error) {
	return f.patterns, nil
}
func (f *fakeRepo) DeletePattern(ctx context.Context, satkerID, id string) error { return nil }
func (f *fakeRepo) CreateHoliday(ctx context.Context, h *Holiday) error {
	f.holidays = append(f.holidays, *h)
	return nil
}
func (f *fakeRepo) FindHolidaysInRange(ctx context.Context, satkerID string, from, to time.Time) ([]Holiday, error) {
	return f.holidays, nil
}
func (f *fakeRepo) DeleteHoliday(ctx context.Context, id string) error { return nil }
func (f *fakeRepo) UpsertCalendarDay(ctx context.Context, d *CalendarDay) error {
	f.upserted = append(f.upserted, *d)
	return nil
}
func (f *fakeRepo) FindCalendarDay(ctx context.Context, satkerID string, date time.Time) (*CalendarDay, error) {
	return nil, nil
}
func (f *fakeRepo) FindCalendarDaysInRange(ctx context.Context, satkerID string, from, to time.Time) ([]CalendarDay, error) {
	return f.upserted, nil
}

func TestService_Generate_MaterializesRange(t *testing.T) {
	repo := &fakeRepo{patterns: []WorkPattern{standardPattern(date(2024, 1, 1))}}
	svc := NewService(repo)

	// 2024-03-11 (Senin) s/d 2024-03-17 (Minggu)
	n, err := svc.Generate(context.Background(), uuid.New().String(), "2024-03-11", "2024-03-17")
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Len(t, repo.upserted, 7)

	workdays := 0
	for _, d := range repo.upserted {
		if d.DayType == DayTypeWorkday {
			workdays++
		}
	}
	assert.Equal(t, 5, workdays)
}

func TestService_Generate_RangeTooLarge(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Generate(context.Background(), uuid.New().String(), "2024-01-01", "2025-06-01")
	assert.ErrorIs(t, err, calendarerrors.ErrRangeTooLarge)
	assert.Empty(t, repo.upserted)
}

func TestService_Generate_InvalidRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Generate(context.Background(), uuid.New().String(), "2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, calendarerrors.ErrInvalidDateRange)
}
