package portfolio

import (
	"context"
	"errors"
	"fmt"

	docDomain "investorhub/internal/domain/document"
	"investorhub/internal/domain/fault"
	invDomain "investorhub/internal/domain/investment"
	userDomain "investorhub/internal/domain/user"
	"investorhub/internal/renderer"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	users       userDomain.Repository
	investments invDomain.Repository
	documents   docDomain.Repository
	render      renderer.Renderer
}

func NewUsecase(users userDomain.Repository, inv invDomain.Repository, docs docDomain.Repository, r renderer.Renderer) *Usecase {
	return &Usecase{users: users, investments: inv, documents: docs, render: r}
}

type Dashboard struct {
	TotalInvested  float64                `json:"total_invested"`
	TotalPaidOut   float64                `json:"total_paid_out"`
	MonthlyAccrual float64                `json:"monthly_accrual"`
	Investments    []invDomain.Investment `json:"investments"`
	RecentPayouts  []invDomain.Payout     `json:"recent_payouts"`
	Documents      []docDomain.Document   `json:"documents"`
}

const recentPayoutLimit = 12

// Dashboard assembles the investor home view: active balance, lifetime
// payouts, and the straight-line monthly ROI accrual on active capital.
func (u *Usecase) Dashboard(ctx context.Context, userID uint64) (*Dashboard, error) {
	invs, err := u.investments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	payouts, err := u.investments.ListPayoutsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := u.documents.ListVisibleTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Investments: invs, Documents: docs}
	for i := range invs {
		if invs[i].Status == invDomain.StatusActive {
			d.TotalInvested += invs[i].Amount
			d.MonthlyAccrual += invs[i].Amount * invs[i].AnnualROIPercent / 100 / 12
		}
	}
	for i := range payouts {
		d.TotalPaidOut += payouts[i].Amount
	}
	if len(payouts) > recentPayoutLimit {
		payouts = payouts[:recentPayoutLimit]
	}
	d.RecentPayouts = payouts
	return d, nil
}

// DocumentPath returns the stored file path when the document is visible
// to the requesting investor (their own, or shared).
func (u *Usecase) DocumentPath(ctx context.Context, userID, docID uint64) (string, error) {
	doc, err := u.documents.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: document does not exist", fault.ErrNotFound)
		}
		return "", err
	}
	if doc.UserID != nil && *doc.UserID != userID {
		return "", fmt.Errorf("%w: document does not exist", fault.ErrNotFound)
	}
	return doc.FilePath, nil
}

// Statement renders the monthly PDF for an investor through the external
// renderer. Month is a "January 2026" style label coming straight from
// the UI.
func (u *Usecase) Statement(ctx context.Context, userID uint64, month string) ([]byte, error) {
	if month == "" {
		return nil, fmt.Errorf("%w: statement month is required", fault.ErrValidation)
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: investor does not exist", fault.ErrNotFound)
		}
		return nil, err
	}
	invs, err := u.investments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	payouts, err := u.investments.ListPayoutsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := statementData(usr, month, invs, payouts)
	pdf, err := u.render.Render(ctx, renderer.KindStatement, data)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// statementData shapes the template payload the statement script reads.
// The script expects the account-summary figures (openingBalance,
// returns, payouts, closingBalance, roi) as plain numbers, the
// investment lines under "investments" with a "startDate" key, and the
// payout table under "payoutList". Monetary figures go out as 2dp
// strings so the script never re-rounds.
func statementData(usr *userDomain.User, month string, invs []invDomain.Investment, payouts []invDomain.Payout) map[string]any {
	money := func(d decimal.Decimal) string {
		return d.Round(2).StringFixed(2)
	}

	opening := decimal.Zero
	returns := decimal.Zero
	weightedROI := decimal.Zero
	lines := make([]map[string]any, 0, len(invs))
	for i := range invs {
		amount := decimal.NewFromFloat(invs[i].Amount)
		roi := decimal.NewFromFloat(invs[i].AnnualROIPercent)
		lines = append(lines, map[string]any{
			"description": fmt.Sprintf("Investment #%d", invs[i].ID),
			"startDate":   invs[i].StartDate.Format("2006-01-02"),
			"amount":      money(amount),
			"roi":         money(roi),
		})
		if invs[i].Status == invDomain.StatusActive {
			opening = opening.Add(amount)
			returns = returns.Add(amount.Mul(roi).Div(decimal.NewFromInt(1200)))
			weightedROI = weightedROI.Add(amount.Mul(roi))
		}
	}

	paid := decimal.Zero
	payoutList := make([]map[string]any, 0, len(payouts))
	for i := range payouts {
		amount := decimal.NewFromFloat(payouts[i].Amount)
		payoutList = append(payoutList, map[string]any{
			"month":  payouts[i].PaidAt.Format("January 2006"),
			"amount": money(amount),
			"status": "paid",
		})
		paid = paid.Add(amount)
	}

	blendedROI := decimal.Zero
	if !opening.IsZero() {
		blendedROI = weightedROI.Div(opening)
	}

	return map[string]any{
		"investorName":   usr.Name,
		"investorEmail":  usr.Email,
		"month":          month,
		"openingBalance": money(opening),
		"returns":        money(returns),
		"payouts":        money(paid),
		"closingBalance": money(opening.Add(returns).Sub(paid)),
		"roi":            money(blendedROI),
		"investments":    lines,
		"payoutList":     payoutList,
	}
}
