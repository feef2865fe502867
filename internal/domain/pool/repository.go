package pool

import "context"

type Repository interface {
	Create(ctx context.Context, p *Pool) error
	GetByID(ctx context.Context, id uint64) (*Pool, error)
	// GetByIDForUpdate locks the row for the scope of the surrounding
	// transaction; status transitions go through it.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Pool, error)
	List(ctx context.Context) ([]Pool, error)
	Save(ctx context.Context, p *Pool) error
	Delete(ctx context.Context, id uint64) error

	AddLoan(ctx context.Context, pl *PoolLoan) error
	// RemoveLoan deletes the edge if present; removing an absent edge is
	// not an error.
	RemoveLoan(ctx context.Context, poolID uint64, mifosLoanID int64) error
	LoansFor(ctx context.Context, poolID uint64) ([]PoolLoan, error)
}
