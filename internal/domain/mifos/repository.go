package mifos

import "context"

type Repository interface {
	// Upsert inserts the snapshot row or refreshes it in place, keyed by
	// the external loan id.
	Upsert(ctx context.Context, l *Loan) error

	// GetByMifosIDs is the one batched lookup the pool aggregator uses;
	// ids absent from the snapshot are simply missing from the result.
	GetByMifosIDs(ctx context.Context, ids []int64) ([]Loan, error)

	List(ctx context.Context) ([]Loan, error)
	// ListExcluding returns every snapshot row whose external id is not in
	// the given set.
	ListExcluding(ctx context.Context, ids []int64) ([]Loan, error)
}
