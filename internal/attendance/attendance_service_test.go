package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-presensi/internal/attendance"
	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/bootstrap"
	"go-presensi/internal/challenge"
	challengeerrors "go-presensi/internal/challenge/errors"
	"go-presensi/internal/geofence"
	"go-presensi/internal/identity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceRepository struct {
	sessions map[string]*attendance.AttendanceSession
	events   []attendance.AttendanceEvent

	upsertErr error
}

func newFakeAttendanceRepository() *fakeAttendanceRepository {
	return &fakeAttendanceRepository{sessions: map[string]*attendance.AttendanceSession{}}
}

func sessionKey(userID string, workDate time.Time) string {
	return userID + "|" + workDate.Format("2006-01-02")
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) UpsertSession(ctx context.Context, s *attendance.AttendanceSession) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := sessionKey(s.UserID.String(), s.WorkDate)
	if _, ok := f.sessions[key]; !ok {
		cp := *s
		f.sessions[key] = &cp
	}
	return nil
}

func (f *fakeAttendanceRepository) FindSessionByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*attendance.AttendanceSession, error) {
	if s, ok := f.sessions[sessionKey(userID, workDate)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAttendanceRepository) FindSessionsByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.AttendanceSession, error) {
	var out []attendance.AttendanceSession
	for _, s := range f.sessions {
		if s.UserID.String() == userID && !s.WorkDate.Before(from) && !s.WorkDate.After(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepository) FindSessionsBySatkerAndDate(ctx context.Context, satkerID string, workDate time.Time) ([]attendance.AttendanceSession, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) UpdateSession(ctx context.Context, s *attendance.AttendanceSession) error {
	cp := *s
	f.sessions[sessionKey(s.UserID.String(), s.WorkDate)] = &cp
	return nil
}

func (f *fakeAttendanceRepository) HasEvent(ctx context.Context, sessionID, eventType string) (bool, error) {
	for _, e := range f.events {
		if e.SessionID.String() == sessionID && e.EventType == eventType {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepository) CreateEvent(ctx context.Context, e *attendance.AttendanceEvent) error {
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeAttendanceRepository) FindEventsBySession(ctx context.Context, sessionID string) ([]attendance.AttendanceEvent, error) {
	var out []attendance.AttendanceEvent
	for _, e := range f.events {
		if e.SessionID.String() == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepository) DeleteEventsBySession(ctx context.Context, sessionID string) error {
	kept := f.events[:0]
	for _, e := range f.events {
		if e.SessionID.String() != sessionID {
			kept = append(kept, e)
		}
	}
	f.events = kept
	return nil
}

type fakeChallengeService struct {
	consumeErr error
	consumed   []string
}

func (f *fakeChallengeService) Issue(ctx context.Context, userID, satkerID, deviceID string) (challenge.IssuedChallenge, error) {
	return challenge.IssuedChallenge{}, nil
}

func (f *fakeChallengeService) Consume(ctx context.Context, challengeID, userID, satkerID, deviceID string) error {
	f.consumed = append(f.consumed, challengeID)
	return f.consumeErr
}

type fakeGuard struct {
	err error
}

func (f *fakeGuard) Check(ctx context.Context, userID, deviceID string, lat, lon float64, now time.Time) error {
	return f.err
}

type fakeGeofenceService struct {
	nearest    geofence.NearestResult
	nearestErr error
}

func (f *fakeGeofenceService) Create(ctx context.Context, satkerID string, req geofence.CreateGeofenceRequest) (geofence.GeofenceResponse, error) {
	return geofence.GeofenceResponse{}, nil
}
func (f *fakeGeofenceService) GetAll(ctx context.Context, satkerID string) ([]geofence.GeofenceResponse, error) {
	return nil, nil
}
func (f *fakeGeofenceService) Update(ctx context.Context, satkerID, id string, req geofence.UpdateGeofenceRequest) (geofence.GeofenceResponse, error) {
	return geofence.GeofenceResponse{}, nil
}
func (f *fakeGeofenceService) Delete(ctx context.Context, satkerID, id string) error { return nil }
func (f *fakeGeofenceService) Nearest(ctx context.Context, satkerID string, lat, lon float64) (geofence.NearestResult, error) {
	return f.nearest, f.nearestErr
}

type fakeIdentityRepository struct {
	satker *identity.Satker
}

func (f *fakeIdentityRepository) FindUserByID(ctx context.Context, userID string) (*identity.User, error) {
	return nil, nil
}
func (f *fakeIdentityRepository) FindUsersBySatker(ctx context.Context, satkerID string) ([]identity.User, error) {
	return nil, nil
}
func (f *fakeIdentityRepository) FindSatkerByID(ctx context.Context, satkerID string) (*identity.Satker, error) {
	return f.satker, nil
}
func (f *fakeIdentityRepository) BaseTukinForUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

type fakeAuditLogger struct {
	entries []bootstrap.AuditLog
}

func (f *fakeAuditLogger) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.entries = append(f.entries, entry)
}

type attendanceServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    attendance.Service
	repo       *fakeAttendanceRepository
	challenges *fakeChallengeService
	guard      *fakeGuard
	fences     *fakeGeofenceService
	audit      *fakeAuditLogger
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := newFakeAttendanceRepository()
	challenges := &fakeChallengeService{}
	guard := &fakeGuard{}
	fences := &fakeGeofenceService{
		nearest: geofence.NearestResult{
			GeofenceID: uuid.New(),
			Name:       "Kantor Pusat",
			DistanceM:  20,
			RadiusM:    50,
		},
	}
	audit := &fakeAuditLogger{}
	tz := identity.NewTimezoneResolver(&fakeIdentityRepository{
		satker: &identity.Satker{ID: uuid.New(), Name: "Satker Uji", Timezone: "Asia/Jakarta"},
	}, nil)

	svc := attendance.NewService(db, repo, challenges, guard, fences, tz, audit)

	return &attendanceServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		challenges: challenges,
		guard:      guard,
		fences:     fences,
		audit:      audit,
	}
}

func floatPtr(v float64) *float64 { return &v }

func checkRequest() attendance.CheckRequest {
	return attendance.CheckRequest{
		ChallengeID: uuid.New().String(),
		Lat:         floatPtr(-6.2),
		Lon:         floatPtr(106.8),
		AccuracyM:   8,
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	satkerID := uuid.New().String()
	deviceID := "device-1"

	t.Run("success inside fence forces NORMAL", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		req := checkRequest()
		req.LeaveType = attendance.LeaveTypeSakit // diabaikan karena di dalam fence

		resp, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, req)

		assert.NoError(t, err)
		assert.NotNil(t, resp.CheckInAt)
		assert.Len(t, resp.Events, 1)
		assert.Equal(t, attendance.LeaveTypeNormal, resp.Events[0].LeaveType)
		assert.Equal(t, attendance.EventCheckIn, resp.Events[0].EventType)
		assert.Len(t, deps.challenges.consumed, 1)
	})

	t.Run("negative out of fence without justification", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.fences.nearest.DistanceM = 200 // radius 50

		_, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, checkRequest())

		assert.ErrorIs(t, err, attendanceerrors.ErrOutOfFenceJustification)
	})

	t.Run("success out of fence with exception type", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.fences.nearest.DistanceM = 200

		req := checkRequest()
		req.LeaveType = attendance.LeaveTypeDinasLuar
		req.Notes = "Pengamanan kunjungan kerja"

		resp, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, req)

		assert.NoError(t, err)
		assert.Equal(t, attendance.LeaveTypeDinasLuar, resp.Events[0].LeaveType)
	})

	t.Run("negative duplicate check-in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, checkRequest())
		assert.NoError(t, err)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		_, err = deps.service.CheckIn(ctx, userID, satkerID, deviceID, checkRequest())

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("negative challenge rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.challenges.consumeErr = challengeerrors.ErrChallengeNotFound

		_, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, checkRequest())

		assert.ErrorIs(t, err, challengeerrors.ErrChallengeNotFound)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		req := checkRequest()
		req.LeaveType = "WFH"

		_, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, req)

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidLeaveType)
		assert.Empty(t, deps.challenges.consumed)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	satkerID := uuid.New().String()
	deviceID := "device-1"

	t.Run("negative without prior check-in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CheckOut(ctx, userID, satkerID, deviceID, checkRequest())

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})

	t.Run("success after check-in marks session complete", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err := deps.service.CheckIn(ctx, userID, satkerID, deviceID, checkRequest())
		assert.NoError(t, err)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		resp, err := deps.service.CheckOut(ctx, userID, satkerID, deviceID, checkRequest())

		assert.NoError(t, err)
		assert.NotNil(t, resp.CheckOutAt)
		assert.Equal(t, attendance.StatusComplete, resp.Status)
	})
}

func TestAttendanceService_Correct(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	satkerID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("success overwrites timestamps and replaces events", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err := deps.service.CheckIn(ctx, userID, satkerID, "device-1", checkRequest())
		assert.NoError(t, err)

		workDate := time.Now().In(mustLoadJakarta(t)).Format("2006-01-02")
		checkInAt := workDate + "T07:30:00Z"
		checkOutAt := workDate + "T16:00:00Z"

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		resp, err := deps.service.Correct(ctx, satkerID, actorID, attendance.CorrectionRequest{
			UserID:     userID,
			WorkDate:   workDate,
			CheckInAt:  &checkInAt,
			CheckOutAt: &checkOutAt,
			Note:       "Perbaikan manual hasil verifikasi",
		})

		assert.NoError(t, err)
		assert.True(t, resp.Corrected)
		assert.Equal(t, attendance.StatusCorrected, resp.Status)
		assert.Len(t, resp.Events, 2)
		assert.Len(t, deps.audit.entries, 1)
		assert.Equal(t, "ATTENDANCE_CORRECTED", deps.audit.entries[0].Action)

		// Event lama diganti, bukan ditambah
		events, _ := deps.repo.FindEventsBySession(ctx, resp.ID)
		assert.Len(t, events, 2)
	})

	t.Run("negative without note", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Correct(ctx, satkerID, actorID, attendance.CorrectionRequest{
			UserID:   userID,
			WorkDate: "2026-02-10",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrCorrectionNoteRequired)
	})
}

func mustLoadJakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)
	return loc
}
