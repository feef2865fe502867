package mysql

import (
	"context"

	mifosDomain "investorhub/internal/domain/mifos"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MifosLoanRepository struct{ db *gorm.DB }

func NewMifosLoanRepository(db *gorm.DB) *MifosLoanRepository { return &MifosLoanRepository{db: db} }

func (r *MifosLoanRepository) Upsert(ctx context.Context, l *mifosDomain.Loan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "mifos_loan_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"account_no", "client_name", "principal",
				"total_outstanding", "total_repaid", "status", "synced_at",
			}),
		}).
		Create(l).Error
}

func (r *MifosLoanRepository) GetByMifosIDs(ctx context.Context, ids []int64) ([]mifosDomain.Loan, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []mifosDomain.Loan
	res := r.db.WithContext(ctx).Where("mifos_loan_id IN ?", ids).Find(&out)
	return out, res.Error
}

func (r *MifosLoanRepository) List(ctx context.Context) ([]mifosDomain.Loan, error) {
	var out []mifosDomain.Loan
	res := r.db.WithContext(ctx).Order("mifos_loan_id ASC").Find(&out)
	return out, res.Error
}

func (r *MifosLoanRepository) ListExcluding(ctx context.Context, ids []int64) ([]mifosDomain.Loan, error) {
	if len(ids) == 0 {
		return r.List(ctx)
	}
	var out []mifosDomain.Loan
	res := r.db.WithContext(ctx).
		Where("mifos_loan_id NOT IN ?", ids).
		Order("mifos_loan_id ASC").
		Find(&out)
	return out, res.Error
}
