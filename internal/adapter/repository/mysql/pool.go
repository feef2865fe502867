package mysql

import (
	"context"

	poolDomain "investorhub/internal/domain/pool"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PoolRepository struct{ db *gorm.DB }

func NewPoolRepository(db *gorm.DB) *PoolRepository { return &PoolRepository{db: db} }

func (r *PoolRepository) Create(ctx context.Context, p *poolDomain.Pool) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PoolRepository) GetByID(ctx context.Context, id uint64) (*poolDomain.Pool, error) {
	var out poolDomain.Pool
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// GetByIDForUpdate takes a row lock; only meaningful inside a transaction.
func (r *PoolRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*poolDomain.Pool, error) {
	var out poolDomain.Pool
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *PoolRepository) List(ctx context.Context) ([]poolDomain.Pool, error) {
	var out []poolDomain.Pool
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *PoolRepository) Save(ctx context.Context, p *poolDomain.Pool) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PoolRepository) Delete(ctx context.Context, id uint64) error {
	// membership edges go with the pool
	if err := r.db.WithContext(ctx).
		Where("pool_id = ?", id).
		Delete(&poolDomain.PoolLoan{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&poolDomain.Pool{}, id).Error
}

func (r *PoolRepository) AddLoan(ctx context.Context, pl *poolDomain.PoolLoan) error {
	return r.db.WithContext(ctx).Create(pl).Error
}

func (r *PoolRepository) RemoveLoan(ctx context.Context, poolID uint64, mifosLoanID int64) error {
	return r.db.WithContext(ctx).
		Where("pool_id = ? AND mifos_loan_id = ?", poolID, mifosLoanID).
		Delete(&poolDomain.PoolLoan{}).Error
}

func (r *PoolRepository) LoansFor(ctx context.Context, poolID uint64) ([]poolDomain.PoolLoan, error) {
	var out []poolDomain.PoolLoan
	res := r.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("added_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
