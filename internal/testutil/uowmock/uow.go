// Package uowmock is a pass-through UnitOfWork for usecase tests: no
// real transaction, just the repos you hand it.
package uowmock

import (
	"context"

	"investorhub/internal/domain/pool"
	"investorhub/internal/domain/uow"
)

type UoW struct {
	Repos uow.Repos
	// WithinTxErr, when set, is returned before fn runs.
	WithinTxErr error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.WithinTxErr != nil {
		return u.WithinTxErr
	}
	return fn(u.Repos)
}

func (u *UoW) WithinPoolTx(ctx context.Context, poolID uint64, fn func(r uow.Repos, p *pool.Pool) error) error {
	if u.WithinTxErr != nil {
		return u.WithinTxErr
	}
	p, err := u.Repos.Pools.GetByIDForUpdate(ctx, poolID)
	if err != nil {
		return err
	}
	return fn(u.Repos, p)
}
