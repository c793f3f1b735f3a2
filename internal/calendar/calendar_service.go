package calendar

import (
	"context"
	"time"

	calendarerrors "go-presensi/internal/calendar/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxGenerateDays = 370

type Service interface {
	CreatePattern(ctx context.Context, satkerID string, req CreateWorkPatternRequest) (WorkPatternResponse, error)
	GetPatterns(ctx context.Context, satkerID string) ([]WorkPatternResponse, error)
	DeletePattern(ctx context.Context, satkerID, id string) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error

	// Generate mematerialisasi CalendarDay untuk rentang tanggal inklusif,
	// idempoten (upsert), maksimal 370 hari per panggilan.
	Generate(ctx context.Context, satkerID, fromStr, toStr string) (int, error)
	GetDays(ctx context.Context, satkerID, fromStr, toStr string) ([]CalendarDayResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, logger: l}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, calendarerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func validTimeOfDay(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

func (s *service) CreatePattern(ctx context.Context, satkerID string, req CreateWorkPatternRequest) (WorkPatternResponse, error) {
	satkerUUID, err := uuid.Parse(satkerID)
	if err != nil {
		return WorkPatternResponse{}, calendarerrors.ErrInvalidDateFormat
	}
	effectiveFrom, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return WorkPatternResponse{}, err
	}
	if !validTimeOfDay(req.WorkStart) || !validTimeOfDay(req.WorkEnd) {
		return WorkPatternResponse{}, calendarerrors.ErrInvalidTimeFormat
	}
	if req.HalfDayEnd != nil && !validTimeOfDay(*req.HalfDayEnd) {
		return WorkPatternResponse{}, calendarerrors.ErrInvalidTimeFormat
	}

	p := &WorkPattern{
		ID:             uuid.New(),
		SatkerID:       satkerUUID,
		EffectiveFrom:  effectiveFrom,
		Monday:         req.Monday,
		Tuesday:        req.Tuesday,
		Wednesday:      req.Wednesday,
		Thursday:       req.Thursday,
		Friday:         req.Friday,
		Saturday:       req.Saturday,
		Sunday:         req.Sunday,
		WorkStart:      req.WorkStart,
		WorkEnd:        req.WorkEnd,
		HalfDayWeekday: req.HalfDayWeekday,
		HalfDayEnd:     req.HalfDayEnd,
	}

	if err := s.repo.CreatePattern(ctx, p); err != nil {
		s.logger.Error("create work pattern failed", zap.Error(err))
		return WorkPatternResponse{}, err
	}

	s.logger.Info("work pattern created",
		zap.String("pattern_id", p.ID.String()),
		zap.String("satker_id", satkerID),
		zap.String("effective_from", req.EffectiveFrom),
	)
	return mapPatternToResponse(*p), nil
}

func (s *service) GetPatterns(ctx context.Context, satkerID string) ([]WorkPatternResponse, error) {
	patterns, err := s.repo.FindPatternsBySatker(ctx, satkerID)
	if err != nil {
		return nil, err
	}
	resp := make([]WorkPatternResponse, len(patterns))
	for i, p := range patterns {
		resp[i] = mapPatternToResponse(p)
	}
	return resp, nil
}

func (s *service) DeletePattern(ctx context.Context, satkerID, id string) error {
	return s.repo.DeletePattern(ctx, satkerID, id)
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	scope, err := ParseHolidayScope(req.Scope)
	if err != nil {
		return HolidayResponse{}, calendarerrors.ErrInvalidScope
	}
	kind, err := ParseHolidayKind(req.Kind)
	if err != nil {
		return HolidayResponse{}, calendarerrors.ErrInvalidKind
	}
	date, err := parseDate(req.HolidayDate)
	if err != nil {
		return HolidayResponse{}, err
	}
	if req.HalfDayEnd != nil && !validTimeOfDay(*req.HalfDayEnd) {
		return HolidayResponse{}, calendarerrors.ErrInvalidTimeFormat
	}

	var satkerUUID *uuid.UUID
	if scope == HolidayScopeSatker {
		if req.SatkerID == nil {
			return HolidayResponse{}, calendarerrors.ErrSatkerIDRequired
		}
		parsed, err := uuid.Parse(*req.SatkerID)
		if err != nil {
			return HolidayResponse{}, calendarerrors.ErrSatkerIDRequired
		}
		satkerUUID = &parsed
	}

	h := &Holiday{
		ID:          uuid.New(),
		Scope:       scope,
		SatkerID:    satkerUUID,
		HolidayDate: date,
		Kind:        kind,
		Name:        req.Name,
		HalfDayEnd:  req.HalfDayEnd,
	}

	if err := s.repo.CreateHoliday(ctx, h); err != nil {
		s.logger.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	return mapHolidayToResponse(*h), nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	return s.repo.DeleteHoliday(ctx, id)
}

func (s *service) Generate(ctx context.Context, satkerID, fromStr, toStr string) (int, error) {
	satkerUUID, err := uuid.Parse(satkerID)
	if err != nil {
		return 0, calendarerrors.ErrInvalidDateFormat
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return 0, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return 0, err
	}
	if from.After(to) {
		return 0, calendarerrors.ErrInvalidDateRange
	}

	totalDays := int(to.Sub(from).Hours()/24) + 1
	if totalDays > maxGenerateDays {
		return 0, calendarerrors.ErrRangeTooLarge
	}

	patterns, err := s.repo.FindPatternsBySatker(ctx, satkerID)
	if err != nil {
		return 0, err
	}
	holidays, err := s.repo.FindHolidaysInRange(ctx, satkerID, from, to)
	if err != nil {
		return 0, err
	}

	generated := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		resolved := ResolveDay(EffectivePattern(patterns, d), holidays, d)
		row := &CalendarDay{
			ID:            uuid.New(),
			SatkerID:      satkerUUID,
			WorkDate:      d,
			DayType:       resolved.DayType,
			ExpectedStart: resolved.ExpectedStart,
			ExpectedEnd:   resolved.ExpectedEnd,
			Note:          resolved.Note,
		}
		if err := s.repo.UpsertCalendarDay(ctx, row); err != nil {
			s.logger.Error("upsert calendar day failed",
				zap.String("satker_id", satkerID),
				zap.String("work_date", d.Format("2006-01-02")),
				zap.Error(err),
			)
			return generated, err
		}
		generated++
	}

	s.logger.Info("calendar generated",
		zap.String("satker_id", satkerID),
		zap.String("from", fromStr),
		zap.String("to", toStr),
		zap.Int("days", generated),
	)
	return generated, nil
}

func (s *service) GetDays(ctx context.Context, satkerID, fromStr, toStr string) ([]CalendarDayResponse, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, calendarerrors.ErrInvalidDateRange
	}

	days, err := s.repo.FindCalendarDaysInRange(ctx, satkerID, from, to)
	if err != nil {
		return nil, err
	}
	resp := make([]CalendarDayResponse, len(days))
	for i, d := range days {
		resp[i] = mapDayToResponse(d)
	}
	return resp, nil
}

func mapPatternToResponse(p WorkPattern) WorkPatternResponse {
	return WorkPatternResponse{
		ID:             p.ID.String(),
		SatkerID:       p.SatkerID.String(),
		EffectiveFrom:  p.EffectiveFrom.Format("2006-01-02"),
		Monday:         p.Monday,
		Tuesday:        p.Tuesday,
		Wednesday:      p.Wednesday,
		Thursday:       p.Thursday,
		Friday:         p.Friday,
		Saturday:       p.Saturday,
		Sunday:         p.Sunday,
		WorkStart:      p.WorkStart,
		WorkEnd:        p.WorkEnd,
		HalfDayWeekday: p.HalfDayWeekday,
		HalfDayEnd:     p.HalfDayEnd,
	}
}

func mapHolidayToResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:          h.ID.String(),
		Scope:       string(h.Scope),
		HolidayDate: h.HolidayDate.Format("2006-01-02"),
		Kind:        string(h.Kind),
		Name:        h.Name,
		HalfDayEnd:  h.HalfDayEnd,
	}
	if h.SatkerID != nil {
		v := h.SatkerID.String()
		resp.SatkerID = &v
	}
	return resp
}

func mapDayToResponse(d CalendarDay) CalendarDayResponse {
	return CalendarDayResponse{
		ID:            d.ID.String(),
		SatkerID:      d.SatkerID.String(),
		WorkDate:      d.WorkDate.Format("2006-01-02"),
		DayType:       string(d.DayType),
		ExpectedStart: d.ExpectedStart,
		ExpectedEnd:   d.ExpectedEnd,
		Note:          d.Note,
	}
}
