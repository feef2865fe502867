// Package poolmock is an in-memory pool.Repository for usecase tests.
package poolmock

import (
	"context"
	"sort"
	"time"

	"investorhub/internal/domain/pool"

	"gorm.io/gorm"
)

type Repo struct {
	nextID uint64
	Pools  map[uint64]*pool.Pool
	Edges  []pool.PoolLoan
	// ForcedErr makes every call fail; for error-path tests.
	ForcedErr error
}

func New() *Repo {
	return &Repo{nextID: 1, Pools: make(map[uint64]*pool.Pool)}
}

func (m *Repo) Create(ctx context.Context, p *pool.Pool) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now().UTC()
	cp := *p
	m.Pools[p.ID] = &cp
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*pool.Pool, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	p, ok := m.Pools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*pool.Pool, error) {
	return m.GetByID(ctx, id)
}

func (m *Repo) List(ctx context.Context) ([]pool.Pool, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	ids := make([]uint64, 0, len(m.Pools))
	for id := range m.Pools {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]pool.Pool, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.Pools[id])
	}
	return out, nil
}

func (m *Repo) Save(ctx context.Context, p *pool.Pool) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	cp := *p
	m.Pools[p.ID] = &cp
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	delete(m.Pools, id)
	kept := m.Edges[:0]
	for _, e := range m.Edges {
		if e.PoolID != id {
			kept = append(kept, e)
		}
	}
	m.Edges = kept
	return nil
}

func (m *Repo) AddLoan(ctx context.Context, pl *pool.PoolLoan) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	pl.ID = uint64(len(m.Edges) + 1)
	pl.AddedAt = time.Now().UTC()
	m.Edges = append(m.Edges, *pl)
	return nil
}

func (m *Repo) RemoveLoan(ctx context.Context, poolID uint64, mifosLoanID int64) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	kept := m.Edges[:0]
	for _, e := range m.Edges {
		if !(e.PoolID == poolID && e.MifosLoanID == mifosLoanID) {
			kept = append(kept, e)
		}
	}
	m.Edges = kept
	return nil
}

func (m *Repo) LoansFor(ctx context.Context, poolID uint64) ([]pool.PoolLoan, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	var out []pool.PoolLoan
	for _, e := range m.Edges {
		if e.PoolID == poolID {
			out = append(out, e)
		}
	}
	return out, nil
}
