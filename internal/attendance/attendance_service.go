package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/bootstrap"
	"go-presensi/internal/challenge"
	"go-presensi/internal/geofence"
	"go-presensi/internal/geoguard"
	"go-presensi/internal/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CheckIn(ctx context.Context, userID, satkerID, deviceID string, req CheckRequest) (SessionResponse, error)
	CheckOut(ctx context.Context, userID, satkerID, deviceID string, req CheckRequest) (SessionResponse, error)
	GetMySessions(ctx context.Context, userID, from, to string) ([]SessionResponse, error)
	// Correct adalah jalur administratif: bebas menimpa kedua timestamp dan
	// mengganti total event CHECK_IN/CHECK_OUT milik sesi tersebut.
	Correct(ctx context.Context, satkerID, actorID string, req CorrectionRequest) (SessionResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	challenges challenge.Service
	guard      geoguard.Guard
	fences     geofence.Service
	tz         *identity.TimezoneResolver
	audit      bootstrap.AuditLogger
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	challenges challenge.Service,
	guard geoguard.Guard,
	fences geofence.Service,
	tz *identity.TimezoneResolver,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		challenges: challenges,
		guard:      guard,
		fences:     fences,
		tz:         tz,
		audit:      audit,
		logger:     l,
	}
}

func (s *service) CheckIn(ctx context.Context, userID, satkerID, deviceID string, req CheckRequest) (SessionResponse, error) {
	return s.record(ctx, userID, satkerID, deviceID, EventCheckIn, req)
}

func (s *service) CheckOut(ctx context.Context, userID, satkerID, deviceID string, req CheckRequest) (SessionResponse, error) {
	return s.record(ctx, userID, satkerID, deviceID, EventCheckOut, req)
}

func (s *service) record(ctx context.Context, userID, satkerID, deviceID, eventType string, req CheckRequest) (SessionResponse, error) {
	s.logger.Debug("attendance record requested",
		zap.String("user_id", userID),
		zap.String("satker_id", satkerID),
		zap.String("device_id", deviceID),
		zap.String("event_type", eventType),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return SessionResponse{}, attendanceerrors.ErrInvalidUserID
	}
	satkerUUID, err := uuid.Parse(satkerID)
	if err != nil {
		return SessionResponse{}, attendanceerrors.ErrInvalidSatkerID
	}
	leaveType, err := ParseLeaveType(req.LeaveType)
	if err != nil {
		return SessionResponse{}, err
	}
	if req.Lat == nil || req.Lon == nil {
		return SessionResponse{}, attendanceerrors.ErrCoordinatesRequired
	}
	lat, lon := *req.Lat, *req.Lon

	if err := s.challenges.Consume(ctx, req.ChallengeID, userID, satkerID, deviceID); err != nil {
		s.logger.Warn("challenge consume rejected",
			zap.String("user_id", userID),
			zap.String("challenge_id", req.ChallengeID),
			zap.Error(err),
		)
		return SessionResponse{}, err
	}

	now := time.Now().UTC()
	if err := s.guard.Check(ctx, userID, deviceID, lat, lon, now); err != nil {
		return SessionResponse{}, err
	}

	// Satker tanpa geofence aktif adalah kegagalan keras: presensi tidak bisa
	// diatribusikan ke perimeter mana pun.
	nearest, err := s.fences.Nearest(ctx, satkerID, lat, lon)
	if err != nil {
		return SessionResponse{}, err
	}

	if nearest.WithinRadius() {
		leaveType = LeaveTypeNormal
	} else if leaveType == LeaveTypeNormal || req.Notes == "" {
		s.logger.Warn("out-of-fence attendance without justification",
			zap.String("user_id", userID),
			zap.Float64("distance_m", nearest.DistanceM),
		)
		return SessionResponse{}, attendanceerrors.ErrOutOfFenceJustification
	}

	loc, err := s.tz.Location(ctx, satkerID)
	if err != nil {
		return SessionResponse{}, err
	}
	local := now.In(loc)
	workDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("attendance record begin tx failed", zap.Error(err))
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.UpsertSession(ctx, &AttendanceSession{
		ID:       uuid.New(),
		SatkerID: satkerUUID,
		UserID:   userUUID,
		WorkDate: workDate,
		Status:   StatusOpen,
	}); err != nil {
		s.logger.Error("attendance session upsert failed", zap.Error(err))
		return SessionResponse{}, err
	}

	// Baca ulang baris hasil upsert; saat konflik, ID yang menang adalah milik
	// baris yang sudah ada.
	session, err := qtx.FindSessionByUserAndDate(ctx, userID, workDate)
	if err != nil {
		return SessionResponse{}, err
	}

	if eventType == EventCheckOut && session.CheckInAt == nil {
		return SessionResponse{}, attendanceerrors.ErrNotCheckedIn
	}

	exists, err := qtx.HasEvent(ctx, session.ID.String(), eventType)
	if err != nil {
		return SessionResponse{}, err
	}
	if exists {
		if eventType == EventCheckIn {
			return SessionResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		return SessionResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	event := &AttendanceEvent{
		ID:            uuid.New(),
		SessionID:     session.ID,
		EventType:     eventType,
		OccurredAt:    now,
		Lat:           lat,
		Lon:           lon,
		AccuracyM:     req.AccuracyM,
		GeofenceID:    nearest.GeofenceID,
		DistanceM:     nearest.DistanceM,
		DeviceID:      deviceID,
		LeaveType:     leaveType,
		Notes:         req.Notes,
		SelfieKey:     req.SelfieKey,
		LivenessScore: req.LivenessScore,
		MatchScore:    req.MatchScore,
	}
	if err := qtx.CreateEvent(ctx, event); err != nil {
		s.logger.Error("attendance event persist failed", zap.Error(err))
		return SessionResponse{}, err
	}

	// Timestamp hanya diisi saat masih kosong, tidak pernah ditimpa di alur
	// normal.
	switch eventType {
	case EventCheckIn:
		if session.CheckInAt == nil {
			session.CheckInAt = &now
		}
	case EventCheckOut:
		if session.CheckOutAt == nil {
			session.CheckOutAt = &now
		}
	}
	if session.CheckInAt != nil && session.CheckOutAt != nil {
		session.Status = StatusComplete
	}
	if err := qtx.UpdateSession(ctx, session); err != nil {
		return SessionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("attendance record commit failed", zap.Error(err))
		return SessionResponse{}, err
	}

	s.logger.Info("attendance recorded",
		zap.String("session_id", session.ID.String()),
		zap.String("user_id", userID),
		zap.String("event_type", eventType),
		zap.String("work_date", workDate.Format("2006-01-02")),
		zap.Float64("distance_m", nearest.DistanceM),
		zap.String("leave_type", leaveType),
	)

	return mapSessionToResponse(*session, []AttendanceEvent{*event}), nil
}

func (s *service) GetMySessions(ctx context.Context, userID, from, to string) ([]SessionResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	sessions, err := s.repo.FindSessionsByUserInRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	resp := make([]SessionResponse, len(sessions))
	for i, sess := range sessions {
		resp[i] = mapSessionToResponse(sess, nil)
	}
	return resp, nil
}

func (s *service) Correct(ctx context.Context, satkerID, actorID string, req CorrectionRequest) (SessionResponse, error) {
	if req.Note == "" {
		return SessionResponse{}, attendanceerrors.ErrCorrectionNoteRequired
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SessionResponse{}, attendanceerrors.ErrInvalidUserID
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return SessionResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	var checkInAt, checkOutAt *time.Time
	if req.CheckInAt != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInAt)
		if err != nil {
			return SessionResponse{}, attendanceerrors.ErrInvalidDateFormat
		}
		t = t.UTC()
		checkInAt = &t
	}
	if req.CheckOutAt != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutAt)
		if err != nil {
			return SessionResponse{}, attendanceerrors.ErrInvalidDateFormat
		}
		t = t.UTC()
		checkOutAt = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	session, err := qtx.FindSessionByUserAndDate(ctx, req.UserID, workDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, attendanceerrors.ErrSessionNotFound
		}
		return SessionResponse{}, err
	}

	if err := qtx.DeleteEventsBySession(ctx, session.ID.String()); err != nil {
		return SessionResponse{}, err
	}

	events := make([]AttendanceEvent, 0, 2)
	if checkInAt != nil {
		events = append(events, AttendanceEvent{
			ID:         uuid.New(),
			SessionID:  session.ID,
			EventType:  EventCheckIn,
			OccurredAt: *checkInAt,
			DeviceID:   "ADMIN_CORRECTION",
			LeaveType:  LeaveTypeNormal,
			Notes:      req.Note,
		})
	}
	if checkOutAt != nil {
		events = append(events, AttendanceEvent{
			ID:         uuid.New(),
			SessionID:  session.ID,
			EventType:  EventCheckOut,
			OccurredAt: *checkOutAt,
			DeviceID:   "ADMIN_CORRECTION",
			LeaveType:  LeaveTypeNormal,
			Notes:      req.Note,
		})
	}
	for i := range events {
		if err := qtx.CreateEvent(ctx, &events[i]); err != nil {
			return SessionResponse{}, err
		}
	}

	session.CheckInAt = checkInAt
	session.CheckOutAt = checkOutAt
	session.Status = StatusCorrected
	session.Corrected = true
	session.CorrectionNote = &req.Note
	session.CorrectedBy = &actorUUID
	if err := qtx.UpdateSession(ctx, session); err != nil {
		return SessionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SessionResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "ATTENDANCE_CORRECTED",
		Actor:   actorID,
		Message: "sesi presensi dikoreksi manual",
		Meta: map[string]any{
			"session_id": session.ID.String(),
			"user_id":    req.UserID,
			"work_date":  req.WorkDate,
			"satker_id":  satkerID,
		},
	})
	s.logger.Info("attendance corrected",
		zap.String("session_id", session.ID.String()),
		zap.String("actor_id", actorID),
	)

	return mapSessionToResponse(*session, events), nil
}

func mapSessionToResponse(s AttendanceSession, events []AttendanceEvent) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID.String(),
		SatkerID:       s.SatkerID.String(),
		UserID:         s.UserID.String(),
		WorkDate:       s.WorkDate.Format("2006-01-02"),
		Status:         s.Status,
		Corrected:      s.Corrected,
		CorrectionNote: s.CorrectionNote,
	}
	if s.CheckInAt != nil {
		v := s.CheckInAt.Format(time.RFC3339)
		resp.CheckInAt = &v
	}
	if s.CheckOutAt != nil {
		v := s.CheckOutAt.Format(time.RFC3339)
		resp.CheckOutAt = &v
	}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			ID:         e.ID.String(),
			EventType:  e.EventType,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
			Lat:        e.Lat,
			Lon:        e.Lon,
			AccuracyM:  e.AccuracyM,
			GeofenceID: e.GeofenceID.String(),
			DistanceM:  e.DistanceM,
			DeviceID:   e.DeviceID,
			LeaveType:  e.LeaveType,
			Notes:      e.Notes,
			SelfieKey:  e.SelfieKey,
			Liveness:   e.LivenessScore,
			Match:      e.MatchScore,
		})
	}
	return resp
}
