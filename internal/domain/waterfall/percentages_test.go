package waterfall

import (
	"errors"
	"math"
	"strings"
	"testing"

	"investorhub/internal/domain/fault"
)

func TestPercentages_Validate(t *testing.T) {
	cases := []struct {
		name    string
		p       Percentages
		wantErr bool
		substr  string
	}{
		{"default split", Percentages{2, 70, 10, 18}, false, ""},
		{"even split", Percentages{25, 25, 25, 25}, false, ""},
		{"all to one bucket", Percentages{0, 100, 0, 0}, false, ""},
		{"inside tolerance low", Percentages{2, 70, 10, 17.995}, false, ""},
		{"inside tolerance high", Percentages{2, 70, 10, 18.005}, false, ""},
		{"sum too low", Percentages{2, 70, 10, 17}, true, "99.00"},
		{"sum too high", Percentages{2, 70, 10, 19}, true, "101.00"},
		{"just outside tolerance", Percentages{2, 70, 10, 18.02}, true, "100.02"},
		{"negative field", Percentages{-1, 71, 10, 20}, true, "servicing_fee_percent"},
		{"field above 100", Percentages{101, -21, 10, 10}, true, "servicing_fee_percent"},
		{"nan field", Percentages{math.NaN(), 70, 10, 20}, true, "finite"},
		{"inf field", Percentages{2, math.Inf(1), 10, 18}, true, "finite"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, fault.ErrValidation) {
				t.Fatalf("Validate() = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Fatalf("message %q missing %q", err.Error(), tc.substr)
			}
		})
	}
}

func TestPercentages_Sum(t *testing.T) {
	p := Percentages{ServicingFee: 1.5, InvestorReturns: 2.5, ReserveFund: 3, SponsorProfit: 4}
	if got := p.Sum(); got != 11 {
		t.Fatalf("Sum() = %v, want 11", got)
	}
}
