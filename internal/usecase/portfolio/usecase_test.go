package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	docDomain "investorhub/internal/domain/document"
	"investorhub/internal/domain/fault"
	invDomain "investorhub/internal/domain/investment"
	userDomain "investorhub/internal/domain/user"
	"investorhub/internal/renderer"

	"gorm.io/gorm"
)

// ----- fakes -----

type fakeUsers struct{ user *userDomain.User }

func (f *fakeUsers) Create(ctx context.Context, u *userDomain.User) error { return nil }
func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) List(ctx context.Context) ([]userDomain.User, error) { return nil, nil }
func (f *fakeUsers) Save(ctx context.Context, u *userDomain.User) error  { return nil }
func (f *fakeUsers) Delete(ctx context.Context, id uint64) error         { return nil }

type fakeInvestments struct {
	investments []invDomain.Investment
	payouts     []invDomain.Payout
}

func (f *fakeInvestments) Create(ctx context.Context, inv *invDomain.Investment) error { return nil }
func (f *fakeInvestments) GetByID(ctx context.Context, id uint64) (*invDomain.Investment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeInvestments) ListByUser(ctx context.Context, userID uint64) ([]invDomain.Investment, error) {
	return f.investments, nil
}
func (f *fakeInvestments) List(ctx context.Context) ([]invDomain.Investment, error) { return nil, nil }
func (f *fakeInvestments) Save(ctx context.Context, inv *invDomain.Investment) error {
	return nil
}
func (f *fakeInvestments) Delete(ctx context.Context, id uint64) error           { return nil }
func (f *fakeInvestments) CreatePayout(ctx context.Context, p *invDomain.Payout) error {
	return nil
}
func (f *fakeInvestments) ListPayoutsByInvestment(ctx context.Context, investmentID uint64) ([]invDomain.Payout, error) {
	return nil, nil
}
func (f *fakeInvestments) ListPayoutsByUser(ctx context.Context, userID uint64) ([]invDomain.Payout, error) {
	return f.payouts, nil
}
func (f *fakeInvestments) DeletePayout(ctx context.Context, id uint64) error { return nil }
func (f *fakeInvestments) CreateAgreement(ctx context.Context, a *invDomain.Agreement) error {
	return nil
}
func (f *fakeInvestments) GetAgreementByInvestment(ctx context.Context, investmentID uint64) (*invDomain.Agreement, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeDocs struct{ docs []docDomain.Document }

func (f *fakeDocs) Create(ctx context.Context, d *docDomain.Document) error { return nil }
func (f *fakeDocs) GetByID(ctx context.Context, id uint64) (*docDomain.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			return &f.docs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDocs) ListVisibleTo(ctx context.Context, userID uint64) ([]docDomain.Document, error) {
	return f.docs, nil
}
func (f *fakeDocs) List(ctx context.Context) ([]docDomain.Document, error) { return nil, nil }
func (f *fakeDocs) Delete(ctx context.Context, id uint64) error            { return nil }

type fakeRenderer struct {
	kind renderer.Kind
	data any
	err  error
}

func (f *fakeRenderer) Render(ctx context.Context, kind renderer.Kind, data any) ([]byte, error) {
	f.kind = kind
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// ----- tests -----

func TestDashboard_SumsActiveCapitalOnly(t *testing.T) {
	inv := &fakeInvestments{
		investments: []invDomain.Investment{
			{ID: 1, Amount: 10000, AnnualROIPercent: 12, Status: invDomain.StatusActive},
			{ID: 2, Amount: 5000, AnnualROIPercent: 18, Status: invDomain.StatusActive},
			{ID: 3, Amount: 99999, AnnualROIPercent: 10, Status: invDomain.StatusClosed},
		},
		payouts: []invDomain.Payout{
			{ID: 1, Amount: 100}, {ID: 2, Amount: 175},
		},
	}
	uc := NewUsecase(&fakeUsers{}, inv, &fakeDocs{}, &fakeRenderer{})

	d, err := uc.Dashboard(context.Background(), 7)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.TotalInvested != 15000 {
		t.Fatalf("TotalInvested = %v, want 15000", d.TotalInvested)
	}
	// 10000*12%/12 + 5000*18%/12 = 100 + 75
	if d.MonthlyAccrual != 175 {
		t.Fatalf("MonthlyAccrual = %v, want 175", d.MonthlyAccrual)
	}
	if d.TotalPaidOut != 275 {
		t.Fatalf("TotalPaidOut = %v, want 275", d.TotalPaidOut)
	}
	if len(d.Investments) != 3 {
		t.Fatalf("got %d investments, want 3 (closed ones still listed)", len(d.Investments))
	}
}

func TestDashboard_CapsRecentPayouts(t *testing.T) {
	inv := &fakeInvestments{}
	for i := 0; i < 20; i++ {
		inv.payouts = append(inv.payouts, invDomain.Payout{ID: uint64(i + 1), Amount: 10})
	}
	uc := NewUsecase(&fakeUsers{}, inv, &fakeDocs{}, &fakeRenderer{})

	d, err := uc.Dashboard(context.Background(), 7)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(d.RecentPayouts) != recentPayoutLimit {
		t.Fatalf("got %d recent payouts, want %d", len(d.RecentPayouts), recentPayoutLimit)
	}
	// the cap trims the list, not the lifetime total
	if d.TotalPaidOut != 200 {
		t.Fatalf("TotalPaidOut = %v, want 200", d.TotalPaidOut)
	}
}

func TestDocumentPath(t *testing.T) {
	owner := uint64(7)
	docs := &fakeDocs{docs: []docDomain.Document{
		{ID: 1, UserID: &owner, FilePath: "/files/own.pdf"},
		{ID: 2, UserID: nil, FilePath: "/files/shared.pdf"},
	}}
	uc := NewUsecase(&fakeUsers{}, &fakeInvestments{}, docs, &fakeRenderer{})
	ctx := context.Background()

	if p, err := uc.DocumentPath(ctx, 7, 1); err != nil || p != "/files/own.pdf" {
		t.Fatalf("own doc = %q, %v", p, err)
	}
	if p, err := uc.DocumentPath(ctx, 99, 2); err != nil || p != "/files/shared.pdf" {
		t.Fatalf("shared doc = %q, %v", p, err)
	}
	// someone else's document and a missing one look identical
	if _, err := uc.DocumentPath(ctx, 99, 1); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("foreign doc err = %v", err)
	}
	if _, err := uc.DocumentPath(ctx, 7, 404); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("missing doc err = %v", err)
	}
}

func TestStatement_RendersWithShapedData(t *testing.T) {
	users := &fakeUsers{user: &userDomain.User{ID: 7, Name: "Ada", Email: "ada@example.com"}}
	inv := &fakeInvestments{
		investments: []invDomain.Investment{
			{ID: 1, Amount: 10000.555, AnnualROIPercent: 12, StartDate: date("2026-01-15"), Status: invDomain.StatusActive},
			{ID: 2, Amount: 5000, AnnualROIPercent: 10, StartDate: date("2025-06-01"), Status: invDomain.StatusClosed},
		},
		payouts: []invDomain.Payout{
			{ID: 1, Amount: 100.005, Kind: invDomain.PayoutMonthly, PaidAt: date("2026-02-01")},
		},
	}
	r := &fakeRenderer{}
	uc := NewUsecase(users, inv, &fakeDocs{}, r)

	pdf, err := uc.Statement(context.Background(), 7, "February 2026")
	if err != nil {
		t.Fatalf("Statement: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf")
	}
	if r.kind != renderer.KindStatement {
		t.Fatalf("kind = %q", r.kind)
	}

	data, ok := r.data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T", r.data)
	}
	if data["investorName"] != "Ada" || data["month"] != "February 2026" {
		t.Fatalf("header fields = %v / %v", data["investorName"], data["month"])
	}
	// account summary figures are scalars the script can float(); closed
	// capital is excluded from the opening balance
	if got := data["openingBalance"]; got != "10000.56" {
		t.Fatalf("openingBalance = %v", got)
	}
	if got := data["payouts"]; got != "100.01" {
		t.Fatalf("payouts = %v", got)
	}
	// 10000.555 * 12% / 12 = 100.00555 → 100.01
	if got := data["returns"]; got != "100.01" {
		t.Fatalf("returns = %v", got)
	}
	// 10000.56 + 100.01 - 100.01 (pre-rounding sums)
	if got := data["closingBalance"]; got != "10000.56" {
		t.Fatalf("closingBalance = %v", got)
	}
	if got := data["roi"]; got != "12.00" {
		t.Fatalf("roi = %v", got)
	}

	lines := data["investments"].([]map[string]any)
	if len(lines) != 2 {
		t.Fatalf("investment lines = %v", lines)
	}
	if lines[0]["startDate"] != "2026-01-15" || lines[0]["description"] != "Investment #1" {
		t.Fatalf("first line = %v", lines[0])
	}

	// payout table goes under payoutList so the scalar payouts key stays
	// a number
	rows := data["payoutList"].([]map[string]any)
	if len(rows) != 1 {
		t.Fatalf("payoutList = %v", rows)
	}
	if rows[0]["month"] != "February 2026" || rows[0]["amount"] != "100.01" || rows[0]["status"] != "paid" {
		t.Fatalf("payout row = %v", rows[0])
	}
}

func TestStatement_Validation(t *testing.T) {
	uc := NewUsecase(&fakeUsers{}, &fakeInvestments{}, &fakeDocs{}, &fakeRenderer{})
	ctx := context.Background()

	if _, err := uc.Statement(ctx, 7, ""); !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("empty month err = %v", err)
	}
	if _, err := uc.Statement(ctx, 7, "February 2026"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("missing user err = %v", err)
	}
}
