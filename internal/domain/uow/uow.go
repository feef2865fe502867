package uow

import (
	"context"

	"investorhub/internal/domain/pool"
	"investorhub/internal/domain/waterfall"
)

// Repos are the repositories a transactional flow may touch together.
type Repos struct {
	Waterfall waterfall.Repository
	Pools     pool.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn with all repos bound to one transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinPoolTx locks the pool row first, then passes it in. Status
	// transitions use it so two racing requests serialize on the row and
	// the loser revalidates against the committed state.
	WithinPoolTx(ctx context.Context, poolID uint64, fn func(r Repos, p *pool.Pool) error) error
}
