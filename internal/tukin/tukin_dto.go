package tukin

import (
	"time"

	"gorm.io/datatypes"
)

type LeaveRuleRequest struct {
	LeaveType       string  `json:"leave_type" binding:"required"`
	Credit          float64 `json:"credit"`
	CountsAsPresent bool    `json:"counts_as_present"`
}

type CreatePolicyRequest struct {
	Scope         string  `json:"scope" binding:"required,oneof=GLOBAL SATKER"`
	SatkerID      *string `json:"satker_id" binding:"omitempty,uuid"`
	EffectiveFrom string  `json:"effective_from" binding:"required"`
	EffectiveTo   *string `json:"effective_to"`

	MissingCheckoutPenaltyPct float64 `json:"missing_checkout_penalty_pct" binding:"min=0,max=100"`
	LateToleranceMin          int     `json:"late_tolerance_min" binding:"min=0"`
	LatePenaltyPctPerMin      float64 `json:"late_penalty_pct_per_min" binding:"min=0,max=100"`
	MaxDailyPenaltyPct        float64 `json:"max_daily_penalty_pct" binding:"min=0,max=100"`
	OutOfFencePenaltyPct      float64 `json:"out_of_fence_penalty_pct" binding:"min=0,max=100"`

	LeaveRules []LeaveRuleRequest `json:"leave_rules" binding:"dive"`
}

// GenerateRequest memicu kalkulasi bulanan; salah satu satker_id atau user_id
// menentukan cakupan, force memaksa hitung ulang snapshot yang sudah ada.
type GenerateRequest struct {
	Month    string  `json:"month" binding:"required"`
	SatkerID *string `json:"satker_id" binding:"omitempty,uuid"`
	UserID   *string `json:"user_id" binding:"omitempty,uuid"`
	Force    bool    `json:"force"`
}

type LeaveRuleResponse struct {
	ID              string  `json:"id"`
	LeaveType       string  `json:"leave_type"`
	Credit          float64 `json:"credit"`
	CountsAsPresent bool    `json:"counts_as_present"`
}

type PolicyResponse struct {
	ID            string  `json:"id"`
	Scope         string  `json:"scope"`
	SatkerID      *string `json:"satker_id,omitempty"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`

	MissingCheckoutPenaltyPct float64 `json:"missing_checkout_penalty_pct"`
	LateToleranceMin          int     `json:"late_tolerance_min"`
	LatePenaltyPctPerMin      float64 `json:"late_penalty_pct_per_min"`
	MaxDailyPenaltyPct        float64 `json:"max_daily_penalty_pct"`
	OutOfFencePenaltyPct      float64 `json:"out_of_fence_penalty_pct"`

	LeaveRules []LeaveRuleResponse `json:"leave_rules"`
	CreatedAt  time.Time           `json:"created_at"`
}

type CalculationResponse struct {
	ID       string `json:"id"`
	Month    string `json:"month"`
	UserID   string `json:"user_id"`
	SatkerID string `json:"satker_id"`

	ExpectedUnits       float64 `json:"expected_units"`
	EarnedCredit        float64 `json:"earned_credit"`
	PresentDays         int     `json:"present_days"`
	AbsentDays          int     `json:"absent_days"`
	MissingCheckoutDays int     `json:"missing_checkout_days"`
	DutyPresentDays     int     `json:"duty_present_days"`
	DutyAbsentDays      int     `json:"duty_absent_days"`
	TotalLateMinutes    int     `json:"total_late_minutes"`

	AttendanceRatio float64 `json:"attendance_ratio"`
	BaseTukin       int64   `json:"base_tukin"`
	FinalTukin      int64   `json:"final_tukin"`

	Breakdown   datatypes.JSON `json:"breakdown"`
	GeneratedBy string         `json:"generated_by"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type GenerateResponse struct {
	Month     string                `json:"month"`
	UserCount int                   `json:"user_count"`
	Forced    bool                  `json:"forced"`
	Results   []CalculationResponse `json:"results"`
}

func toLeaveRuleResponse(r TukinLeaveRule) LeaveRuleResponse {
	return LeaveRuleResponse{
		ID:              r.ID.String(),
		LeaveType:       r.LeaveType,
		Credit:          r.Credit,
		CountsAsPresent: r.CountsAsPresent,
	}
}

func toPolicyResponse(p TukinPolicy) PolicyResponse {
	resp := PolicyResponse{
		ID:            p.ID.String(),
		Scope:         p.Scope,
		EffectiveFrom: p.EffectiveFrom.Format("2006-01-02"),

		MissingCheckoutPenaltyPct: p.MissingCheckoutPenaltyPct,
		LateToleranceMin:          p.LateToleranceMin,
		LatePenaltyPctPerMin:      p.LatePenaltyPctPerMin,
		MaxDailyPenaltyPct:        p.MaxDailyPenaltyPct,
		OutOfFencePenaltyPct:      p.OutOfFencePenaltyPct,

		LeaveRules: make([]LeaveRuleResponse, 0, len(p.LeaveRules)),
		CreatedAt:  p.CreatedAt,
	}
	if p.SatkerID != nil {
		id := p.SatkerID.String()
		resp.SatkerID = &id
	}
	if p.EffectiveTo != nil {
		to := p.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	for _, rule := range p.LeaveRules {
		resp.LeaveRules = append(resp.LeaveRules, toLeaveRuleResponse(rule))
	}
	return resp
}

func toCalculationResponse(c TukinCalculation) CalculationResponse {
	return CalculationResponse{
		ID:       c.ID.String(),
		Month:    c.Month,
		UserID:   c.UserID.String(),
		SatkerID: c.SatkerID.String(),

		ExpectedUnits:       c.ExpectedUnits,
		EarnedCredit:        c.EarnedCredit,
		PresentDays:         c.PresentDays,
		AbsentDays:          c.AbsentDays,
		MissingCheckoutDays: c.MissingCheckoutDays,
		DutyPresentDays:     c.DutyPresentDays,
		DutyAbsentDays:      c.DutyAbsentDays,
		TotalLateMinutes:    c.TotalLateMinutes,

		AttendanceRatio: c.AttendanceRatio,
		BaseTukin:       c.BaseTukin,
		FinalTukin:      c.FinalTukin,

		Breakdown:   c.Breakdown,
		GeneratedBy: c.GeneratedBy.String(),
		GeneratedAt: c.UpdatedAt,
	}
}
