package waterfall

import (
	"time"
)

// Default split applied when no config row exists yet.
const (
	DefaultServicingFeePercent    = 2.0
	DefaultInvestorReturnsPercent = 70.0
	DefaultReserveFundPercent     = 10.0
	DefaultSponsorProfitPercent   = 18.0
)

// Config is the single active waterfall split. One row, mutated in place.
type Config struct {
	ID                     uint64    `gorm:"primaryKey;column:id" json:"-"`
	ServicingFeePercent    float64   `gorm:"type:decimal(5,2);column:servicing_fee_percent" json:"servicing_fee_percent"`
	InvestorReturnsPercent float64   `gorm:"type:decimal(5,2);column:investor_returns_percent" json:"investor_returns_percent"`
	ReserveFundPercent     float64   `gorm:"type:decimal(5,2);column:reserve_fund_percent" json:"reserve_fund_percent"`
	SponsorProfitPercent   float64   `gorm:"type:decimal(5,2);column:sponsor_profit_percent" json:"sponsor_profit_percent"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Config) TableName() string { return "waterfall_configs" }

// DefaultConfig returns the documented 2/70/10/18 split.
func DefaultConfig() *Config {
	return &Config{
		ServicingFeePercent:    DefaultServicingFeePercent,
		InvestorReturnsPercent: DefaultInvestorReturnsPercent,
		ReserveFundPercent:     DefaultReserveFundPercent,
		SponsorProfitPercent:   DefaultSponsorProfitPercent,
	}
}

// Distribution records one waterfall run. Rows are append-only: the
// percentages are copied onto the row so later config edits never rewrite
// history.
type Distribution struct {
	ID               uint64  `gorm:"primaryKey;column:id" json:"id"`
	Month            string  `gorm:"size:64;column:month" json:"month"`
	TotalCollections float64 `gorm:"type:decimal(18,2);column:total_collections" json:"total_collections"`

	ServicingFee    float64 `gorm:"type:decimal(18,2);column:servicing_fee" json:"servicing_fee"`
	InvestorReturns float64 `gorm:"type:decimal(18,2);column:investor_returns" json:"investor_returns"`
	ReserveFund     float64 `gorm:"type:decimal(18,2);column:reserve_fund" json:"reserve_fund"`
	SponsorProfit   float64 `gorm:"type:decimal(18,2);column:sponsor_profit" json:"sponsor_profit"`

	ServicingFeePercent    float64 `gorm:"type:decimal(5,2);column:servicing_fee_percent" json:"servicing_fee_percent"`
	InvestorReturnsPercent float64 `gorm:"type:decimal(5,2);column:investor_returns_percent" json:"investor_returns_percent"`
	ReserveFundPercent     float64 `gorm:"type:decimal(5,2);column:reserve_fund_percent" json:"reserve_fund_percent"`
	SponsorProfitPercent   float64 `gorm:"type:decimal(5,2);column:sponsor_profit_percent" json:"sponsor_profit_percent"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Distribution) TableName() string { return "waterfall_distributions" }
