package tukin

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

	CreatePolicy(ctx context.Context, p *TukinPolicy) error
	FindPolicies(ctx context.Context) ([]TukinPolicy, error)
	FindPolicyByID(ctx context.Context, id string) (*TukinPolicy, error)
	// FindPoliciesCovering memuat kebijakan yang rentang efektifnya mencakup
	// tanggal acuan, scope SATKER milik satker terkait plus GLOBAL, urut
	// effective_from DESC supaya pemanggil tinggal mengambil yang pertama per
	// scope.
	FindPoliciesCovering(ctx context.Context, satkerID string, at time.Time) ([]TukinPolicy, error)
	DeletePolicy(ctx context.Context, id string) error

	CreateLeaveRule(ctx context.Context, r *TukinLeaveRule) error
	FindLeaveRulesByPolicy(ctx context.Context, policyID string) ([]TukinLeaveRule, error)
	DeleteLeaveRule(ctx context.Context, policyID, id string) error

	UpsertCalculation(ctx context.Context, c *TukinCalculation) error
	FindCalculation(ctx context.Context, month, userID string) (*TukinCalculation, error)
	FindCalculationsByMonth(ctx context.Context, month string, satkerID *string) ([]TukinCalculation, error)
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

func (r *repository) CreatePolicy(ctx context.Context, p *TukinPolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPolicies(ctx context.Context) ([]TukinPolicy, error) {
	var policies []TukinPolicy
	err := r.db.WithContext(ctx).
		Preload("LeaveRules").
		Order("effective_from DESC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindPolicyByID(ctx context.Context, id string) (*TukinPolicy, error) {
	var p TukinPolicy
	err := r.db.WithContext(ctx).
		Preload("LeaveRules").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindPoliciesCovering(ctx context.Context, satkerID string, at time.Time) ([]TukinPolicy, error) {
	var policies []TukinPolicy
	err := r.db.WithContext(ctx).
		Preload("LeaveRules").
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to >= ?", at).
		Where("scope = ? OR (scope = ? AND satker_id = ?)", ScopeGlobal, ScopeSatker, satkerID).
		Order("effective_from DESC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) DeletePolicy(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TukinPolicy{}, "id = ?", id).Error
}

func (r *repository) CreateLeaveRule(ctx context.Context, rule *TukinLeaveRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindLeaveRulesByPolicy(ctx context.Context, policyID string) ([]TukinLeaveRule, error) {
	var rules []TukinLeaveRule
	err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("leave_type ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) DeleteLeaveRule(ctx context.Context, policyID, id string) error {
	return r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Delete(&TukinLeaveRule{}, "id = ?", id).Error
}

// UpsertCalculation menimpa snapshot lama untuk (month, user_id) yang sama;
// generate ulang dengan force selalu aman diulang.
func (r *repository) UpsertCalculation(ctx context.Context, c *TukinCalculation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "month"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"satker_id",
				"expected_units", "earned_credit",
				"present_days", "absent_days", "missing_checkout_days",
				"duty_present_days", "duty_absent_days", "total_late_minutes",
				"attendance_ratio", "base_tukin", "final_tukin",
				"breakdown", "generated_by", "updated_at",
			}),
		}).
		Create(c).Error
}

func (r *repository) FindCalculation(ctx context.Context, month, userID string) (*TukinCalculation, error) {
	var c TukinCalculation
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("user_id = ?", userID).
		First(&c).Error
	return &c, err
}

func (r *repository) FindCalculationsByMonth(ctx context.Context, month string, satkerID *string) ([]TukinCalculation, error) {
	var calcs []TukinCalculation
	q := r.db.WithContext(ctx).Where("month = ?", month)
	if satkerID != nil {
		q = q.Where("satker_id = ?", *satkerID)
	}
	err := q.Order("user_id ASC").Find(&calcs).Error
	return calcs, err
}
