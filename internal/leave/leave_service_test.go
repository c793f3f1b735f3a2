package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-presensi/internal/leave"
	leaveerrors "go-presensi/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn                  func(tx *sql.Tx) leave.Repository
	createFn                  func(ctx context.Context, l *leave.LeaveRequest) error
	findAllBySatkerFn         func(ctx context.Context, satkerID string) ([]leave.LeaveRequest, error)
	findByIDAndSatkerFn       func(ctx context.Context, satkerID, id string) (*leave.LeaveRequest, error)
	updateFn                  func(ctx context.Context, l *leave.LeaveRequest) error
	hasOverlappingPeriodFn    func(ctx context.Context, userID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	findApprovedByUserRangeFn func(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllBySatker(ctx context.Context, satkerID string) ([]leave.LeaveRequest, error) {
	if f.findAllBySatkerFn != nil {
		return f.findAllBySatkerFn(ctx, satkerID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndSatker(ctx context.Context, satkerID, id string) (*leave.LeaveRequest, error) {
	if f.findByIDAndSatkerFn != nil {
		return f.findByIDAndSatkerFn(ctx, satkerID, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, userID, startDate, endDate, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindApprovedByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	if f.findApprovedByUserRangeFn != nil {
		return f.findApprovedByUserRangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leave.NewService(db, repo)

	return &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	satkerID := uuid.New().String()
	actorID := uuid.New().String()
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			UserID:    userID,
			LeaveType: leave.TypeCutiTahunan,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Acara keluarga",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, uid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			assert.Equal(t, userID, uid)
			assert.Nil(t, excludeID)
			assert.Equal(t, "2026-03-01", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-03-03", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(satkerID), l.SatkerID)
			assert.Equal(t, uuid.MustParse(userID), l.UserID)
			assert.Equal(t, uuid.MustParse(actorID), l.CreatedBy)
			assert.Equal(t, leave.TypeCutiTahunan, l.LeaveType)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusSubmitted, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, satkerID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, satkerID, resp.SatkerID)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.StatusSubmitted, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlap period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			UserID:    userID,
			LeaveType: leave.TypeCutiTahunan,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, uid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, satkerID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			UserID:    userID,
			LeaveType: "LIBURAN",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}

		_, err := deps.service.Create(ctx, satkerID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	satkerID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndSatkerFn = func(ctx context.Context, sid, targetID string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:       uuid.MustParse(targetID),
				SatkerID: uuid.MustParse(sid),
				UserID:   uuid.New(),
				Status:   leave.StatusSubmitted,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusApproved, l.Status)
			assert.NotNil(t, l.ApprovedBy)
			assert.Equal(t, actorID, l.ApprovedBy.String())
			assert.NotNil(t, l.ApprovedAt)
			return nil
		}

		resp, err := deps.service.Approve(ctx, satkerID, actorID, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndSatkerFn = func(ctx context.Context, sid, targetID string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:       uuid.MustParse(targetID),
				SatkerID: uuid.MustParse(sid),
				Status:   leave.StatusApproved,
			}, nil
		}

		_, err := deps.service.Approve(ctx, satkerID, actorID, id)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	satkerID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()

	t.Run("negative without reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndSatkerFn = func(ctx context.Context, sid, targetID string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:       uuid.MustParse(targetID),
				SatkerID: uuid.MustParse(sid),
				Status:   leave.StatusSubmitted,
			}, nil
		}

		_, err := deps.service.Reject(ctx, satkerID, actorID, id, "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndSatkerFn = func(ctx context.Context, sid, targetID string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:       uuid.MustParse(targetID),
				SatkerID: uuid.MustParse(sid),
				Status:   leave.StatusSubmitted,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusRejected, l.Status)
			assert.NotNil(t, l.RejectionReason)
			assert.Equal(t, "Kuota cuti habis", *l.RejectionReason)
			assert.Nil(t, l.ApprovedBy)
			return nil
		}

		resp, err := deps.service.Reject(ctx, satkerID, actorID, id, "Kuota cuti habis")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	satkerID := uuid.New().String()

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllBySatkerFn = func(ctx context.Context, sid string) ([]leave.LeaveRequest, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(ctx, satkerID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
