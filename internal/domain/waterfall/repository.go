package waterfall

import "context"

type Repository interface {
	// GetConfig returns the active config row, gorm.ErrRecordNotFound when
	// none has been created yet.
	GetConfig(ctx context.Context) (*Config, error)
	SaveConfig(ctx context.Context, c *Config) error

	// CreateDistribution appends one run to the history. Rows are never
	// updated or deleted.
	CreateDistribution(ctx context.Context, d *Distribution) error
	ListDistributions(ctx context.Context) ([]Distribution, error)
}
