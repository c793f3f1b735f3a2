package tukin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/calendar"
	"go-presensi/internal/dutyschedule"
	"go-presensi/internal/events"
	"go-presensi/internal/identity"
	"go-presensi/internal/leave"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/shared/contextutil"
	tukinerrors "go-presensi/internal/tukin/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	GetPolicies(ctx context.Context) ([]PolicyResponse, error)
	DeletePolicy(ctx context.Context, id string) error

	// Preview menjalankan engine akrual tanpa menulis snapshot maupun event.
	// Cakupan sama dengan Generate: user_id tunggal, atau seluruh anggota
	// satker bila hanya satker_id yang diisi.
	Preview(ctx context.Context, month string, satkerID, userID *string) ([]UserAccrual, error)
	// Generate menghitung dan mempersistenkan snapshot bulanan. force=false
	// memakai snapshot yang sudah ada sebagai cache; force=true menimpa.
	Generate(ctx context.Context, actorID string, req GenerateRequest) (GenerateResponse, error)

	GetCalculations(ctx context.Context, month string, satkerID *string) ([]CalculationResponse, error)
	GetCalculation(ctx context.Context, month, userID string) (CalculationResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	users       identity.Repository
	tz          *identity.TimezoneResolver
	calendars   calendar.Repository
	leaves      leave.Repository
	duties      dutyschedule.Repository
	attendances attendance.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users identity.Repository,
	tz *identity.TimezoneResolver,
	calendars calendar.Repository,
	leaves leave.Repository,
	duties dutyschedule.Repository,
	attendances attendance.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("tukin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tukin.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		users:       users,
		tz:          tz,
		calendars:   calendars,
		leaves:      leaves,
		duties:      duties,
		attendances: attendances,
		outbox:      outbox,
		logger:      l,
	}
}

func (s *service) CreatePolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	if req.Scope != ScopeGlobal && req.Scope != ScopeSatker {
		return PolicyResponse{}, tukinerrors.ErrInvalidScope
	}

	var satkerUUID *uuid.UUID
	if req.Scope == ScopeSatker {
		if req.SatkerID == nil {
			return PolicyResponse{}, tukinerrors.ErrSatkerIDRequired
		}
		parsed, err := uuid.Parse(*req.SatkerID)
		if err != nil {
			return PolicyResponse{}, tukinerrors.ErrInvalidSatkerID
		}
		satkerUUID = &parsed
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return PolicyResponse{}, tukinerrors.ErrInvalidDateFormat
	}
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		to, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return PolicyResponse{}, tukinerrors.ErrInvalidDateFormat
		}
		effectiveTo = &to
	}

	for _, rule := range req.LeaveRules {
		if rule.Credit < 0 || rule.Credit > 1 {
			return PolicyResponse{}, tukinerrors.ErrInvalidCredit
		}
	}

	p := &TukinPolicy{
		ID:            uuid.New(),
		Scope:         req.Scope,
		SatkerID:      satkerUUID,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,

		MissingCheckoutPenaltyPct: req.MissingCheckoutPenaltyPct,
		LateToleranceMin:          req.LateToleranceMin,
		LatePenaltyPctPerMin:      req.LatePenaltyPctPerMin,
		MaxDailyPenaltyPct:        req.MaxDailyPenaltyPct,
		OutOfFencePenaltyPct:      req.OutOfFencePenaltyPct,
	}
	for _, rule := range req.LeaveRules {
		p.LeaveRules = append(p.LeaveRules, TukinLeaveRule{
			ID:              uuid.New(),
			PolicyID:        p.ID,
			LeaveType:       rule.LeaveType,
			Credit:          rule.Credit,
			CountsAsPresent: rule.CountsAsPresent,
		})
	}

	if err := s.repo.CreatePolicy(ctx, p); err != nil {
		s.logger.Error("gagal membuat kebijakan tukin", zap.Error(err))
		return PolicyResponse{}, err
	}

	s.logger.Info("kebijakan tukin dibuat",
		zap.String("policy_id", p.ID.String()),
		zap.String("scope", p.Scope),
	)
	return toPolicyResponse(*p), nil
}

func (s *service) GetPolicies(ctx context.Context) ([]PolicyResponse, error) {
	policies, err := s.repo.FindPolicies(ctx)
	if err != nil {
		s.logger.Error("gagal memuat kebijakan tukin", zap.Error(err))
		return nil, err
	}
	out := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, toPolicyResponse(p))
	}
	return out, nil
}

func (s *service) DeletePolicy(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return tukinerrors.ErrPolicyNotFound
	}
	if _, err := s.repo.FindPolicyByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tukinerrors.ErrPolicyNotFound
		}
		return err
	}
	return s.repo.DeletePolicy(ctx, id)
}

func (s *service) Preview(ctx context.Context, month string, satkerID, userID *string) ([]UserAccrual, error) {
	periodStart, periodEnd, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	targets, err := s.resolveUsers(ctx, satkerID, userID)
	if err != nil {
		return nil, err
	}

	out := make([]UserAccrual, 0, len(targets))
	for i := range targets {
		accrual, err := s.accrueUser(ctx, &targets[i], month, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, accrual)
	}
	return out, nil
}

func (s *service) Generate(ctx context.Context, actorID string, req GenerateRequest) (GenerateResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return GenerateResponse{}, tukinerrors.ErrNoUsersResolved
	}
	periodStart, periodEnd, err := parseMonth(req.Month)
	if err != nil {
		return GenerateResponse{}, err
	}

	targets, err := s.resolveUsers(ctx, req.SatkerID, req.UserID)
	if err != nil {
		return GenerateResponse{}, err
	}

	resp := GenerateResponse{Month: req.Month, Forced: req.Force}
	var fresh []TukinCalculation

	for i := range targets {
		user := &targets[i]

		if !req.Force {
			if cached, err := s.repo.FindCalculation(ctx, req.Month, user.ID.String()); err == nil {
				resp.Results = append(resp.Results, toCalculationResponse(*cached))
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return GenerateResponse{}, err
			}
		}

		accrual, err := s.accrueUser(ctx, user, req.Month, periodStart, periodEnd)
		if err != nil {
			return GenerateResponse{}, err
		}

		snapshot, err := toCalculation(accrual, user.SatkerID, actorUUID)
		if err != nil {
			return GenerateResponse{}, err
		}
		fresh = append(fresh, snapshot)
	}

	if len(fresh) > 0 {
		if err := s.persistCalculations(ctx, req, actorUUID, fresh); err != nil {
			return GenerateResponse{}, err
		}
		for _, c := range fresh {
			resp.Results = append(resp.Results, toCalculationResponse(c))
		}
	}

	resp.UserCount = len(resp.Results)
	s.logger.Info("generate tukin selesai",
		zap.String("month", req.Month),
		zap.Int("user_count", resp.UserCount),
		zap.Int("fresh_count", len(fresh)),
		zap.Bool("forced", req.Force),
	)
	return resp, nil
}

// persistCalculations menulis semua snapshot baru plus satu event outbox
// dalam satu transaksi; event tidak pernah lolos tanpa snapshotnya.
func (s *service) persistCalculations(ctx context.Context, req GenerateRequest, actorUUID uuid.UUID, fresh []TukinCalculation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("gagal memulai transaksi generate tukin", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	for i := range fresh {
		if err := txRepo.UpsertCalculation(ctx, &fresh[i]); err != nil {
			s.logger.Error("gagal menyimpan snapshot tukin",
				zap.String("user_id", fresh[i].UserID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	payload, err := json.Marshal(events.TukinGeneratedEvent{
		EventType:   events.TukinCalculationGenerated,
		Month:       req.Month,
		SatkerID:    derefOrEmpty(req.SatkerID),
		UserCount:   len(fresh),
		GeneratedBy: actorUUID.String(),
		Forced:      req.Force,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "TUKIN_CALCULATION",
		AggregateID:   uuid.NewString(),
		EventType:     events.TukinCalculationGenerated,
		Topic:         events.TukinLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("gagal menulis event outbox tukin", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (s *service) GetCalculations(ctx context.Context, month string, satkerID *string) ([]CalculationResponse, error) {
	if _, _, err := parseMonth(month); err != nil {
		return nil, err
	}
	if satkerID != nil {
		if _, err := uuid.Parse(*satkerID); err != nil {
			return nil, tukinerrors.ErrInvalidSatkerID
		}
	}

	calcs, err := s.repo.FindCalculationsByMonth(ctx, month, satkerID)
	if err != nil {
		s.logger.Error("gagal memuat snapshot tukin", zap.String("month", month), zap.Error(err))
		return nil, err
	}
	out := make([]CalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, toCalculationResponse(c))
	}
	return out, nil
}

func (s *service) GetCalculation(ctx context.Context, month, userID string) (CalculationResponse, error) {
	if _, _, err := parseMonth(month); err != nil {
		return CalculationResponse{}, err
	}
	c, err := s.repo.FindCalculation(ctx, month, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalculationResponse{}, tukinerrors.ErrCalculationNotFound
		}
		return CalculationResponse{}, err
	}
	return toCalculationResponse(*c), nil
}

// resolveUsers menerjemahkan cakupan ke daftar user: user_id tunggal menang
// atas satker_id, keduanya kosong adalah kesalahan pemanggil.
func (s *service) resolveUsers(ctx context.Context, satkerID, userID *string) ([]identity.User, error) {
	switch {
	case userID != nil:
		user, err := s.users.FindUserByID(ctx, *userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, tukinerrors.ErrNoUsersResolved
			}
			return nil, err
		}
		return []identity.User{*user}, nil
	case satkerID != nil:
		users, err := s.users.FindUsersBySatker(ctx, *satkerID)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			return nil, tukinerrors.ErrNoUsersResolved
		}
		return users, nil
	default:
		return nil, tukinerrors.ErrNoUsersResolved
	}
}

// accrueUser merakit seluruh masukan read-only engine untuk satu user lalu
// menjalankan Accrue. Tidak ada tulis di jalur ini; Preview memakainya
// langsung.
func (s *service) accrueUser(ctx context.Context, user *identity.User, month string, periodStart, periodEnd time.Time) (UserAccrual, error) {
	satkerID := user.SatkerID.String()
	userID := user.ID.String()

	policy, err := s.activePolicy(ctx, satkerID, periodStart)
	if err != nil {
		return UserAccrual{}, err
	}

	baseTukin, err := s.users.BaseTukinForUser(ctx, userID)
	if err != nil {
		return UserAccrual{}, err
	}

	loc, err := s.tz.Location(ctx, satkerID)
	if err != nil {
		return UserAccrual{}, err
	}

	days, err := s.calendars.FindCalendarDaysInRange(ctx, satkerID, periodStart, periodEnd)
	if err != nil {
		return UserAccrual{}, err
	}
	calendarByDate := make(map[string]CalendarExpectation, len(days))
	for _, d := range days {
		calendarByDate[d.WorkDate.Format("2006-01-02")] = CalendarExpectation{
			DayType:       string(d.DayType),
			ExpectedStart: d.ExpectedStart,
		}
	}

	sessions, err := s.attendances.FindSessionsByUserInRange(ctx, userID, periodStart, periodEnd)
	if err != nil {
		return UserAccrual{}, err
	}
	sessionByDate := make(map[string]AttendanceMark, len(sessions))
	for _, sess := range sessions {
		sessionByDate[sess.WorkDate.Format("2006-01-02")] = AttendanceMark{
			CheckInAt:  sess.CheckInAt,
			CheckOutAt: sess.CheckOutAt,
		}
	}

	// Rentang query jadwal dinas memakai batas hari lokal satker supaya dinas
	// yang mulai malam tanggal 1 waktu lokal tetap terjaring.
	dutyFrom := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, loc)
	dutyTo := dutyFrom.AddDate(0, 1, 0)
	schedules, err := s.duties.FindSchedulesByUserInRange(ctx, userID, dutyFrom, dutyTo)
	if err != nil {
		return UserAccrual{}, err
	}
	duties := make([]DutyWindow, 0, len(schedules))
	for _, d := range schedules {
		duties = append(duties, DutyWindow{StartAt: d.StartAt, EndAt: d.EndAt})
	}

	approvedLeaves, err := s.leaves.FindApprovedByUserInRange(ctx, userID, periodStart, periodEnd)
	if err != nil {
		return UserAccrual{}, err
	}
	spans := make([]LeaveSpan, 0, len(approvedLeaves))
	for _, l := range approvedLeaves {
		spans = append(spans, LeaveSpan{
			LeaveType: l.LeaveType,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
		})
	}

	rules := make(map[string]LeaveRuleParams, len(policy.LeaveRules))
	for _, rule := range policy.LeaveRules {
		rules[rule.LeaveType] = LeaveRuleParams{
			Credit:          decimal.NewFromFloat(rule.Credit),
			CountsAsPresent: rule.CountsAsPresent,
		}
	}

	return Accrue(EngineInput{
		UserID:      userID,
		Month:       month,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Location:    loc,

		BaseTukin: baseTukin,
		Policy: PolicyParams{
			MissingCheckoutPenaltyPct: policy.MissingCheckoutPenaltyPct,
			LateToleranceMin:          policy.LateToleranceMin,
			LatePenaltyPctPerMin:      policy.LatePenaltyPctPerMin,
			MaxDailyPenaltyPct:        policy.MaxDailyPenaltyPct,
			OutOfFencePenaltyPct:      policy.OutOfFencePenaltyPct,
		},
		LeaveRules: rules,

		Duties:   duties,
		Calendar: calendarByDate,
		Sessions: sessionByDate,
		Leaves:   spans,
	}), nil
}

// activePolicy memilih kebijakan SATKER termutakhir yang mencakup awal
// periode; GLOBAL hanya fallback. Tanpa kebijakan sama sekali kalkulasi
// gagal keras.
func (s *service) activePolicy(ctx context.Context, satkerID string, at time.Time) (*TukinPolicy, error) {
	policies, err := s.repo.FindPoliciesCovering(ctx, satkerID, at)
	if err != nil {
		return nil, err
	}

	var global *TukinPolicy
	for i := range policies {
		switch policies[i].Scope {
		case ScopeSatker:
			return &policies[i], nil
		case ScopeGlobal:
			if global == nil {
				global = &policies[i]
			}
		}
	}
	if global != nil {
		return global, nil
	}
	return nil, tukinerrors.ErrNoActivePolicy
}

func parseMonth(month string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, tukinerrors.ErrInvalidMonthFormat
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

func toCalculation(acc UserAccrual, satkerID, actorUUID uuid.UUID) (TukinCalculation, error) {
	breakdown, err := json.Marshal(acc.Days)
	if err != nil {
		return TukinCalculation{}, err
	}
	userUUID, err := uuid.Parse(acc.UserID)
	if err != nil {
		return TukinCalculation{}, err
	}

	return TukinCalculation{
		ID:       uuid.New(),
		Month:    acc.Month,
		UserID:   userUUID,
		SatkerID: satkerID,

		ExpectedUnits:       acc.ExpectedUnits.InexactFloat64(),
		EarnedCredit:        acc.EarnedCredit.InexactFloat64(),
		PresentDays:         acc.PresentDays,
		AbsentDays:          acc.AbsentDays,
		MissingCheckoutDays: acc.MissingCheckoutDays,
		DutyPresentDays:     acc.DutyPresentDays,
		DutyAbsentDays:      acc.DutyAbsentDays,
		TotalLateMinutes:    acc.TotalLateMinutes,

		AttendanceRatio: acc.AttendanceRatio.Round(6).InexactFloat64(),
		BaseTukin:       acc.BaseTukin,
		FinalTukin:      acc.FinalTukin,

		Breakdown:   breakdown,
		GeneratedBy: actorUUID,
	}, nil
}

func derefOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
