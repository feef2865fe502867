package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByID(ctx context.Context, id uint64) (*Investment, error)
	ListByUser(ctx context.Context, userID uint64) ([]Investment, error)
	List(ctx context.Context) ([]Investment, error)
	Save(ctx context.Context, inv *Investment) error
	Delete(ctx context.Context, id uint64) error

	CreatePayout(ctx context.Context, p *Payout) error
	ListPayoutsByInvestment(ctx context.Context, investmentID uint64) ([]Payout, error)
	ListPayoutsByUser(ctx context.Context, userID uint64) ([]Payout, error)
	DeletePayout(ctx context.Context, id uint64) error

	CreateAgreement(ctx context.Context, a *Agreement) error
	GetAgreementByInvestment(ctx context.Context, investmentID uint64) (*Agreement, error)
}
