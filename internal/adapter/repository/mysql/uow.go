package mysql

import (
	"context"

	"investorhub/internal/domain/pool"
	"investorhub/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Waterfall: &WaterfallRepository{db: tx},
			Pools:     &PoolRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinPoolTx(ctx context.Context, poolID uint64, fn func(r uow.Repos, p *pool.Pool) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Waterfall: &WaterfallRepository{db: tx},
			Pools:     &PoolRepository{db: tx},
		}
		// lock the pool row up-front so racing transitions serialize
		p, err := r.Pools.GetByIDForUpdate(ctx, poolID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
