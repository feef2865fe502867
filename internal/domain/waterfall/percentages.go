package waterfall

import (
	"fmt"
	"math"

	"investorhub/internal/domain/fault"
)

// SumTolerance is the slack allowed when checking that the four
// percentages total 100.
const SumTolerance = 0.01

// Percentages is the four-way split submitted by an admin.
type Percentages struct {
	ServicingFee    float64 `json:"servicing_fee_percent"`
	InvestorReturns float64 `json:"investor_returns_percent"`
	ReserveFund     float64 `json:"reserve_fund_percent"`
	SponsorProfit   float64 `json:"sponsor_profit_percent"`
}

func (p Percentages) Sum() float64 {
	return p.ServicingFee + p.InvestorReturns + p.ReserveFund + p.SponsorProfit
}

// Validate is the single place percentage rules live. Both the config
// update path and any future import path must call it rather than
// re-deriving the tolerance check.
func (p Percentages) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"servicing_fee_percent", p.ServicingFee},
		{"investor_returns_percent", p.InvestorReturns},
		{"reserve_fund_percent", p.ReserveFund},
		{"sponsor_profit_percent", p.SponsorProfit},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", fault.ErrValidation, f.name)
		}
		if f.value < 0 || f.value > 100 {
			return fmt.Errorf("%w: %s must be between 0 and 100", fault.ErrValidation, f.name)
		}
	}
	if sum := p.Sum(); math.Abs(sum-100) > SumTolerance {
		return fmt.Errorf("%w: percentages must total 100, got %.2f", fault.ErrValidation, sum)
	}
	return nil
}
