package dutyschedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dutyerrors "go-presensi/internal/dutyschedule/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateSchedule(ctx context.Context, satkerID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error)
	GetSchedules(ctx context.Context, satkerID string) ([]ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, satkerID, id string) error

	CreateRequest(ctx context.Context, satkerID, actorID string, req CreateRequestRequest) (RequestResponse, error)
	GetRequests(ctx context.Context, satkerID string) ([]RequestResponse, error)
	Approve(ctx context.Context, satkerID, actorID, id string) (RequestResponse, error)
	Reject(ctx context.Context, satkerID, actorID, id, rejectionReason string) (RequestResponse, error)
	Cancel(ctx context.Context, satkerID, actorID, id string) (RequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dutyschedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dutyschedule.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateSchedule(ctx context.Context, satkerID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error) {
	satkerUUID, userUUID, actorUUID, startAt, endAt, err := validateScheduleInput(satkerID, actorID, req.UserID, req.StartAt, req.EndAt)
	if err != nil {
		s.logger.Warn("create duty schedule validation failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create duty schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingSchedule(ctx, req.UserID, startAt, endAt, nil)
	if err != nil {
		s.logger.Error("create duty schedule overlap check failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	if overlap {
		return ScheduleResponse{}, dutyerrors.ErrScheduleOverlap
	}

	d := &DutySchedule{
		ID:        uuid.New(),
		SatkerID:  satkerUUID,
		UserID:    userUUID,
		StartAt:   startAt,
		EndAt:     endAt,
		Notes:     req.Notes,
		CreatedBy: actorUUID,
	}
	if err := qtx.CreateSchedule(ctx, d); err != nil {
		s.logger.Error("create duty schedule persist failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create duty schedule commit failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	s.logger.Info("create duty schedule success",
		zap.String("schedule_id", d.ID.String()),
		zap.String("user_id", req.UserID),
	)
	return mapScheduleToResponse(*d), nil
}

func (s *service) GetSchedules(ctx context.Context, satkerID string) ([]ScheduleResponse, error) {
	schedules, err := s.repo.FindSchedulesBySatker(ctx, satkerID)
	if err != nil {
		return nil, err
	}
	resp := make([]ScheduleResponse, len(schedules))
	for i, d := range schedules {
		resp[i] = mapScheduleToResponse(d)
	}
	return resp, nil
}

func (s *service) DeleteSchedule(ctx context.Context, satkerID, id string) error {
	return s.repo.DeleteSchedule(ctx, satkerID, id)
}

func (s *service) CreateRequest(ctx context.Context, satkerID, actorID string, req CreateRequestRequest) (RequestResponse, error) {
	satkerUUID, userUUID, actorUUID, startAt, endAt, err := validateScheduleInput(satkerID, actorID, req.UserID, req.StartAt, req.EndAt)
	if err != nil {
		s.logger.Warn("create duty schedule request validation failed", zap.Error(err))
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Overlap dicek saat pengajuan untuk umpan balik dini; keputusan final
	// tetap pada pengecekan ulang saat approval.
	overlap, err := qtx.HasOverlappingSchedule(ctx, req.UserID, startAt, endAt, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	if overlap {
		return RequestResponse{}, dutyerrors.ErrScheduleOverlap
	}

	r := &DutyScheduleRequest{
		ID:        uuid.New(),
		SatkerID:  satkerUUID,
		UserID:    userUUID,
		StartAt:   startAt,
		EndAt:     endAt,
		Notes:     req.Notes,
		Status:    StatusSubmitted,
		CreatedBy: actorUUID,
	}
	if err := qtx.CreateRequest(ctx, r); err != nil {
		s.logger.Error("create duty schedule request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("create duty schedule request success",
		zap.String("request_id", r.ID.String()),
		zap.String("user_id", req.UserID),
	)
	return mapRequestToResponse(*r), nil
}

func (s *service) GetRequests(ctx context.Context, satkerID string) ([]RequestResponse, error) {
	requests, err := s.repo.FindRequestsBySatker(ctx, satkerID)
	if err != nil {
		return nil, err
	}
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapRequestToResponse(r)
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, satkerID, actorID, id string) (RequestResponse, error) {
	s.logger.Debug("approve duty schedule request",
		zap.String("request_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(satkerID); err != nil {
		return RequestResponse{}, dutyerrors.ErrInvalidSatkerID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, dutyerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve duty schedule begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindRequestByIDAndSatker(ctx, satkerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, dutyerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if r.Status != StatusSubmitted {
		return RequestResponse{}, dutyerrors.ErrInvalidStatusTransition
	}

	// Pengecekan ulang overlap pada saat approval: jadwal lain bisa saja
	// masuk di antara pengajuan dan persetujuan.
	overlap, err := qtx.HasOverlappingSchedule(ctx, r.UserID.String(), r.StartAt, r.EndAt, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("approve duty schedule overlap detected",
			zap.String("request_id", id),
			zap.String("user_id", r.UserID.String()),
		)
		return RequestResponse{}, dutyerrors.ErrScheduleOverlap
	}

	d := &DutySchedule{
		ID:        uuid.New(),
		SatkerID:  r.SatkerID,
		UserID:    r.UserID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		Notes:     r.Notes,
		CreatedBy: actorUUID,
	}
	if err := qtx.CreateSchedule(ctx, d); err != nil {
		s.logger.Error("approve duty schedule create schedule failed", zap.Error(err))
		return RequestResponse{}, err
	}

	now := time.Now().UTC()
	r.Status = StatusApproved
	r.ApprovedBy = &actorUUID
	r.ApprovedAt = &now
	r.RejectionReason = nil
	r.ScheduleID = &d.ID
	if err := qtx.UpdateRequest(ctx, r); err != nil {
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve duty schedule commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("approve duty schedule success",
		zap.String("request_id", id),
		zap.String("schedule_id", d.ID.String()),
	)
	return mapRequestToResponse(*r), nil
}

func (s *service) Reject(ctx context.Context, satkerID, actorID, id, rejectionReason string) (RequestResponse, error) {
	if rejectionReason == "" {
		return RequestResponse{}, dutyerrors.ErrRejectionReasonRequired
	}
	return s.transitionRequest(ctx, satkerID, actorID, id, StatusRejected, &rejectionReason)
}

func (s *service) Cancel(ctx context.Context, satkerID, actorID, id string) (RequestResponse, error) {
	return s.transitionRequest(ctx, satkerID, actorID, id, StatusCanceled, nil)
}

func (s *service) transitionRequest(ctx context.Context, satkerID, actorID, id, targetStatus string, rejectionReason *string) (RequestResponse, error) {
	if _, err := uuid.Parse(satkerID); err != nil {
		return RequestResponse{}, dutyerrors.ErrInvalidSatkerID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return RequestResponse{}, dutyerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindRequestByIDAndSatker(ctx, satkerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, dutyerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if r.Status != StatusSubmitted {
		return RequestResponse{}, dutyerrors.ErrInvalidStatusTransition
	}

	r.Status = targetStatus
	r.RejectionReason = rejectionReason
	if err := qtx.UpdateRequest(ctx, r); err != nil {
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("transition duty schedule request success",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
	)
	return mapRequestToResponse(*r), nil
}

func validateScheduleInput(satkerID, actorID, userID, startAtRaw, endAtRaw string) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	satkerUUID, err := uuid.Parse(satkerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, dutyerrors.ErrInvalidSatkerID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, dutyerrors.ErrInvalidUserID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, dutyerrors.ErrInvalidActorID
	}
	startAt, err := time.Parse(time.RFC3339, startAtRaw)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, dutyerrors.ErrInvalidTimeFormat
	}
	endAt, err := time.Parse(time.RFC3339, endAtRaw)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, dutyerrors.ErrInvalidTimeFormat
	}
	if !startAt.Before(endAt) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, dutyerrors.ErrInvalidTimeRange
	}
	return satkerUUID, userUUID, actorUUID, startAt.UTC(), endAt.UTC(), nil
}

func mapScheduleToResponse(d DutySchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        d.ID.String(),
		SatkerID:  d.SatkerID.String(),
		UserID:    d.UserID.String(),
		StartAt:   d.StartAt.Format(time.RFC3339),
		EndAt:     d.EndAt.Format(time.RFC3339),
		Notes:     d.Notes,
		CreatedBy: d.CreatedBy.String(),
	}
}

func mapRequestToResponse(r DutyScheduleRequest) RequestResponse {
	resp := RequestResponse{
		ID:        r.ID.String(),
		SatkerID:  r.SatkerID.String(),
		UserID:    r.UserID.String(),
		StartAt:   r.StartAt.Format(time.RFC3339),
		EndAt:     r.EndAt.Format(time.RFC3339),
		Notes:     r.Notes,
		Status:    r.Status,
		CreatedBy: r.CreatedBy.String(),
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if r.ScheduleID != nil {
		v := r.ScheduleID.String()
		resp.ScheduleID = &v
	}
	resp.RejectionReason = r.RejectionReason
	return resp
}
