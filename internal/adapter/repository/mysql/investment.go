package mysql

import (
	"context"

	invDomain "investorhub/internal/domain/investment"

	"gorm.io/gorm"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id uint64) (*invDomain.Investment, error) {
	var out invDomain.Investment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *InvestmentRepository) ListByUser(ctx context.Context, userID uint64) ([]invDomain.Investment, error) {
	var out []invDomain.Investment
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) List(ctx context.Context) ([]invDomain.Investment, error) {
	var out []invDomain.Investment
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestmentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&invDomain.Investment{}, id).Error
}

func (r *InvestmentRepository) CreatePayout(ctx context.Context, p *invDomain.Payout) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *InvestmentRepository) ListPayoutsByInvestment(ctx context.Context, investmentID uint64) ([]invDomain.Payout, error) {
	var out []invDomain.Payout
	res := r.db.WithContext(ctx).
		Where("investment_id = ?", investmentID).
		Order("paid_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) ListPayoutsByUser(ctx context.Context, userID uint64) ([]invDomain.Payout, error) {
	var out []invDomain.Payout
	res := r.db.WithContext(ctx).
		Joins("JOIN investments ON investments.id = payouts.investment_id").
		Where("investments.user_id = ?", userID).
		Order("payouts.paid_at DESC, payouts.id DESC").
		Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) DeletePayout(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&invDomain.Payout{}, id).Error
}

func (r *InvestmentRepository) CreateAgreement(ctx context.Context, a *invDomain.Agreement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *InvestmentRepository) GetAgreementByInvestment(ctx context.Context, investmentID uint64) (*invDomain.Agreement, error) {
	var out invDomain.Agreement
	res := r.db.WithContext(ctx).Where("investment_id = ?", investmentID).First(&out)
	return &out, res.Error
}
