package pool

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"investorhub/internal/domain/fault"
	"investorhub/internal/domain/mifos"
	"investorhub/internal/domain/pool"
	"investorhub/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct {
	pools pool.Repository
	loans mifos.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(pools pool.Repository, loans mifos.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{pools: pools, loans: loans, uow: tx}
}

type PoolDTO struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	TargetAmount float64    `json:"target_amount"`
	Status       string     `json:"status"`
	LockedAt     *time.Time `json:"locked_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type PoolWithMetrics struct {
	PoolDTO
	pool.Metrics
}

type CreateInput struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*PoolDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: pool name is required", fault.ErrValidation)
	}
	target := in.TargetAmount
	if math.IsNaN(target) || math.IsInf(target, 0) {
		target = 0
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: target amount must not be negative", fault.ErrValidation)
	}
	p := &pool.Pool{Name: name, TargetAmount: target, Status: pool.StatusDraft}
	if err := u.pools.Create(ctx, p); err != nil {
		return nil, err
	}
	return poolDTO(p), nil
}

// Transition advances the pool along draft→open→locked→closed. The pool
// row is locked for the duration, so of two racing requests the loser
// re-reads the committed status and fails the table check.
func (u *Usecase) Transition(ctx context.Context, id uint64, target pool.Status) (*PoolDTO, error) {
	if !pool.ValidStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", fault.ErrValidation, string(target))
	}
	var dto *PoolDTO
	err := u.uow.WithinPoolTx(ctx, id, func(r uow.Repos, p *pool.Pool) error {
		if !pool.CanTransition(p.Status, target) {
			return fmt.Errorf("%w: cannot move pool from %s to %s",
				fault.ErrInvalidTransition, p.Status, target)
		}
		if target == pool.StatusLocked {
			now := time.Now().UTC()
			p.LockedAt = &now
		}
		p.Status = target
		if err := r.Pools.Save(ctx, p); err != nil {
			return err
		}
		dto = poolDTO(p)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	err := u.uow.WithinPoolTx(ctx, id, func(r uow.Repos, p *pool.Pool) error {
		if p.Status != pool.StatusDraft {
			return fmt.Errorf("%w: only draft pools can be deleted", fault.ErrInvalidState)
		}
		return r.Pools.Delete(ctx, p.ID)
	})
	return mapNotFound(err)
}

func (u *Usecase) AddLoan(ctx context.Context, id uint64, mifosLoanID int64) (*pool.PoolLoan, error) {
	if mifosLoanID <= 0 {
		return nil, fmt.Errorf("%w: loan id must be positive", fault.ErrValidation)
	}
	var edge *pool.PoolLoan
	err := u.uow.WithinPoolTx(ctx, id, func(r uow.Repos, p *pool.Pool) error {
		if !p.Status.Mutable() {
			return fmt.Errorf("%w: loans cannot be changed once the pool is %s",
				fault.ErrInvalidState, p.Status)
		}
		edge = &pool.PoolLoan{PoolID: p.ID, MifosLoanID: mifosLoanID}
		return r.Pools.AddLoan(ctx, edge)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return edge, nil
}

func (u *Usecase) RemoveLoan(ctx context.Context, id uint64, mifosLoanID int64) error {
	err := u.uow.WithinPoolTx(ctx, id, func(r uow.Repos, p *pool.Pool) error {
		if !p.Status.Mutable() {
			return fmt.Errorf("%w: loans cannot be changed once the pool is %s",
				fault.ErrInvalidState, p.Status)
		}
		// absent edge is a no-op
		return r.Pools.RemoveLoan(ctx, p.ID, mifosLoanID)
	})
	return mapNotFound(err)
}

// Get returns the pool with metrics summed from its snapshot rows.
func (u *Usecase) Get(ctx context.Context, id uint64) (*PoolWithMetrics, error) {
	p, err := u.pools.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	m, err := u.metrics(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &PoolWithMetrics{PoolDTO: *poolDTO(p), Metrics: *m}, nil
}

func (u *Usecase) List(ctx context.Context) ([]PoolWithMetrics, error) {
	ps, err := u.pools.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PoolWithMetrics, 0, len(ps))
	for i := range ps {
		m, err := u.metrics(ctx, ps[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, PoolWithMetrics{PoolDTO: *poolDTO(&ps[i]), Metrics: *m})
	}
	return out, nil
}

// AvailableLoans lists synced loans not yet allocated to this pool. This
// is the only exclusivity filter, and it is per-pool.
func (u *Usecase) AvailableLoans(ctx context.Context, id uint64) ([]mifos.Loan, error) {
	if _, err := u.pools.GetByID(ctx, id); err != nil {
		return nil, mapNotFound(err)
	}
	edges, err := u.pools.LoansFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.loans.ListExcluding(ctx, edgeIDs(edges))
}

// metrics does a single batched snapshot lookup per pool; edges whose
// loan has not synced yet count toward LoanCount but add zero to the
// monetary sums.
func (u *Usecase) metrics(ctx context.Context, poolID uint64) (*pool.Metrics, error) {
	edges, err := u.pools.LoansFor(ctx, poolID)
	if err != nil {
		return nil, err
	}
	m := &pool.Metrics{LoanCount: len(edges)}
	rows, err := u.loans.GetByMifosIDs(ctx, edgeIDs(edges))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		m.TotalPrincipal += rows[i].Principal
		m.TotalOutstanding += rows[i].TotalOutstanding
		m.TotalRepaid += rows[i].TotalRepaid
	}
	return m, nil
}

func edgeIDs(edges []pool.PoolLoan) []int64 {
	ids := make([]int64, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].MifosLoanID)
	}
	return ids
}

func poolDTO(p *pool.Pool) *PoolDTO {
	return &PoolDTO{
		ID:           p.ID,
		Name:         p.Name,
		TargetAmount: p.TargetAmount,
		Status:       string(p.Status),
		LockedAt:     p.LockedAt,
		CreatedAt:    p.CreatedAt,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: pool does not exist", fault.ErrNotFound)
	}
	return err
}
