package waterfall

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"investorhub/internal/domain/fault"
	"investorhub/internal/domain/uow"
	"investorhub/internal/domain/waterfall"

	"gorm.io/gorm"
)

type Usecase struct {
	repo waterfall.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r waterfall.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

type ConfigDTO struct {
	Percentages waterfall.Percentages `json:"percentages"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type DistributionDTO struct {
	ID               uint64                `json:"id"`
	Month            string                `json:"month"`
	TotalCollections float64               `json:"total_collections"`
	ServicingFee     float64               `json:"servicing_fee"`
	InvestorReturns  float64               `json:"investor_returns"`
	ReserveFund      float64               `json:"reserve_fund"`
	SponsorProfit    float64               `json:"sponsor_profit"`
	Percentages      waterfall.Percentages `json:"percentages"`
	CreatedAt        time.Time             `json:"created_at"`
}

// GetConfig returns the active split, materializing the 2/70/10/18
// default on first access.
func (u *Usecase) GetConfig(ctx context.Context) (*ConfigDTO, error) {
	cfg, err := u.getOrCreateConfig(ctx, u.repo)
	if err != nil {
		return nil, err
	}
	return configDTO(cfg), nil
}

// SetConfig overwrites the singleton row. Past distributions keep the
// percentages they were run with.
func (u *Usecase) SetConfig(ctx context.Context, p waterfall.Percentages) (*ConfigDTO, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg, err := u.getOrCreateConfig(ctx, u.repo)
	if err != nil {
		return nil, err
	}
	cfg.ServicingFeePercent = p.ServicingFee
	cfg.InvestorReturnsPercent = p.InvestorReturns
	cfg.ReserveFundPercent = p.ReserveFund
	cfg.SponsorProfitPercent = p.SponsorProfit
	if err := u.repo.SaveConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return configDTO(cfg), nil
}

// Distribute runs one waterfall split and appends it to the history.
// Deliberately not idempotent: each call is a distinct distribution
// event, even for a repeated month label.
func (u *Usecase) Distribute(ctx context.Context, month string, totalCollections float64) (*DistributionDTO, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return nil, fmt.Errorf("%w: month is required", fault.ErrValidation)
	}
	if math.IsNaN(totalCollections) || math.IsInf(totalCollections, 0) {
		return nil, fmt.Errorf("%w: total collections must be a finite number", fault.ErrValidation)
	}
	if totalCollections <= 0 {
		return nil, fmt.Errorf("%w: total collections must be greater than zero", fault.ErrValidation)
	}

	var dto *DistributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := u.getOrCreateConfig(ctx, r.Waterfall)
		if err != nil {
			return err
		}
		d := &waterfall.Distribution{
			Month:            month,
			TotalCollections: totalCollections,

			// straight percentage products; no remainder correction, so the
			// four amounts may differ from the total by float rounding
			ServicingFee:    totalCollections * cfg.ServicingFeePercent / 100,
			InvestorReturns: totalCollections * cfg.InvestorReturnsPercent / 100,
			ReserveFund:     totalCollections * cfg.ReserveFundPercent / 100,
			SponsorProfit:   totalCollections * cfg.SponsorProfitPercent / 100,

			ServicingFeePercent:    cfg.ServicingFeePercent,
			InvestorReturnsPercent: cfg.InvestorReturnsPercent,
			ReserveFundPercent:     cfg.ReserveFundPercent,
			SponsorProfitPercent:   cfg.SponsorProfitPercent,
		}
		if err := r.Waterfall.CreateDistribution(ctx, d); err != nil {
			return err
		}
		dto = distributionDTO(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListDistributions(ctx context.Context) ([]DistributionDTO, error) {
	rows, err := u.repo.ListDistributions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DistributionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *distributionDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) getOrCreateConfig(ctx context.Context, repo waterfall.Repository) (*waterfall.Config, error) {
	cfg, err := repo.GetConfig(ctx)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		cfg = waterfall.DefaultConfig()
		if err := repo.SaveConfig(ctx, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, err
	}
}

func configDTO(c *waterfall.Config) *ConfigDTO {
	return &ConfigDTO{
		Percentages: waterfall.Percentages{
			ServicingFee:    c.ServicingFeePercent,
			InvestorReturns: c.InvestorReturnsPercent,
			ReserveFund:     c.ReserveFundPercent,
			SponsorProfit:   c.SponsorProfitPercent,
		},
		UpdatedAt: c.UpdatedAt,
	}
}

func distributionDTO(d *waterfall.Distribution) *DistributionDTO {
	return &DistributionDTO{
		ID:               d.ID,
		Month:            d.Month,
		TotalCollections: d.TotalCollections,
		ServicingFee:     d.ServicingFee,
		InvestorReturns:  d.InvestorReturns,
		ReserveFund:      d.ReserveFund,
		SponsorProfit:    d.SponsorProfit,
		Percentages: waterfall.Percentages{
			ServicingFee:    d.ServicingFeePercent,
			InvestorReturns: d.InvestorReturnsPercent,
			ReserveFund:     d.ReserveFundPercent,
			SponsorProfit:   d.SponsorProfitPercent,
		},
		CreatedAt: d.CreatedAt,
	}
}
