package mysql

import (
	"context"

	waterfallDomain "investorhub/internal/domain/waterfall"

	"gorm.io/gorm"
)

type WaterfallRepository struct{ db *gorm.DB }

func NewWaterfallRepository(db *gorm.DB) *WaterfallRepository { return &WaterfallRepository{db: db} }

func (r *WaterfallRepository) GetConfig(ctx context.Context) (*waterfallDomain.Config, error) {
	var out waterfallDomain.Config
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	return &out, res.Error
}

func (r *WaterfallRepository) SaveConfig(ctx context.Context, c *waterfallDomain.Config) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *WaterfallRepository) CreateDistribution(ctx context.Context, d *waterfallDomain.Distribution) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *WaterfallRepository) ListDistributions(ctx context.Context) ([]waterfallDomain.Distribution, error) {
	var out []waterfallDomain.Distribution
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}
