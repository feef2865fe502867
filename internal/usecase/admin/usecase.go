package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	docDomain "investorhub/internal/domain/document"
	"investorhub/internal/domain/fault"
	invDomain "investorhub/internal/domain/investment"
	userDomain "investorhub/internal/domain/user"
	"investorhub/internal/renderer"
	"investorhub/internal/usecase/auth"
	"investorhub/pkg/token"

	"gorm.io/gorm"
)

// Usecase covers the admin panel: CRUD over investors, investments,
// payouts and documents, and agreement signing.
type Usecase struct {
	users       userDomain.Repository
	investments invDomain.Repository
	documents   docDomain.Repository
	render      renderer.Renderer
	fileDir     string
}

func NewUsecase(users userDomain.Repository, inv invDomain.Repository, docs docDomain.Repository, r renderer.Renderer, fileDir string) *Usecase {
	return &Usecase{users: users, investments: inv, documents: docs, render: r, fileDir: fileDir}
}

// ---- investors ----

type CreateInvestorInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (u *Usecase) CreateInvestor(ctx context.Context, in CreateInvestorInput) (*userDomain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", fault.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", fault.ErrValidation)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	usr := &userDomain.User{Email: email, Name: name, PasswordHash: hash, Role: userDomain.RoleInvestor}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) ListInvestors(ctx context.Context) ([]userDomain.User, error) {
	return u.users.List(ctx)
}

func (u *Usecase) DeleteInvestor(ctx context.Context, id uint64) error {
	if _, err := u.users.GetByID(ctx, id); err != nil {
		return notFound(err, "investor")
	}
	return u.users.Delete(ctx, id)
}

// ---- investments ----

type CreateInvestmentInput struct {
	UserID           uint64    `json:"user_id"`
	Amount           float64   `json:"amount"`
	AnnualROIPercent float64   `json:"annual_roi_percent"`
	StartDate        time.Time `json:"start_date"`
}

func (u *Usecase) CreateInvestment(ctx context.Context, in CreateInvestmentInput) (*invDomain.Investment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", fault.ErrValidation)
	}
	if in.AnnualROIPercent < 0 || in.AnnualROIPercent > 100 {
		return nil, fmt.Errorf("%w: annual ROI must be between 0 and 100", fault.ErrValidation)
	}
	if _, err := u.users.GetByID(ctx, in.UserID); err != nil {
		return nil, notFound(err, "investor")
	}
	start := in.StartDate
	if start.IsZero() {
		start = time.Now().UTC()
	}
	inv := &invDomain.Investment{
		UserID:           in.UserID,
		Amount:           in.Amount,
		AnnualROIPercent: in.AnnualROIPercent,
		StartDate:        start,
		Status:           invDomain.StatusActive,
	}
	if err := u.investments.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (u *Usecase) ListInvestments(ctx context.Context) ([]invDomain.Investment, error) {
	return u.investments.List(ctx)
}

func (u *Usecase) CloseInvestment(ctx context.Context, id uint64) (*invDomain.Investment, error) {
	inv, err := u.investments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "investment")
	}
	if inv.Status == invDomain.StatusClosed {
		return nil, fmt.Errorf("%w: investment is already closed", fault.ErrInvalidState)
	}
	inv.Status = invDomain.StatusClosed
	if err := u.investments.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (u *Usecase) DeleteInvestment(ctx context.Context, id uint64) error {
	if _, err := u.investments.GetByID(ctx, id); err != nil {
		return notFound(err, "investment")
	}
	return u.investments.Delete(ctx, id)
}

// ---- payouts ----

type CreatePayoutInput struct {
	InvestmentID uint64               `json:"investment_id"`
	Amount       float64              `json:"amount"`
	Kind         invDomain.PayoutKind `json:"kind"`
	PaidAt       time.Time            `json:"paid_at"`
}

func (u *Usecase) CreatePayout(ctx context.Context, in CreatePayoutInput) (*invDomain.Payout, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: payout amount must be greater than zero", fault.ErrValidation)
	}
	if in.Kind != invDomain.PayoutMonthly && in.Kind != invDomain.PayoutPrincipal {
		return nil, fmt.Errorf("%w: payout kind must be monthly or principal", fault.ErrValidation)
	}
	if _, err := u.investments.GetByID(ctx, in.InvestmentID); err != nil {
		return nil, notFound(err, "investment")
	}
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	p := &invDomain.Payout{
		InvestmentID: in.InvestmentID,
		Amount:       in.Amount,
		Kind:         in.Kind,
		PaidAt:       paidAt,
	}
	if err := u.investments.CreatePayout(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) DeletePayout(ctx context.Context, id uint64) error {
	return u.investments.DeletePayout(ctx, id)
}

// ---- documents ----

type UploadDocumentInput struct {
	UserID   *uint64 `json:"user_id"`
	Title    string  `json:"title"`
	FilePath string  `json:"-"`
}

func (u *Usecase) UploadDocument(ctx context.Context, in UploadDocumentInput) (*docDomain.Document, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: document title is required", fault.ErrValidation)
	}
	if in.FilePath == "" {
		return nil, fmt.Errorf("%w: document file is required", fault.ErrValidation)
	}
	d := &docDomain.Document{UserID: in.UserID, Title: title, FilePath: in.FilePath}
	if err := u.documents.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (u *Usecase) ListDocuments(ctx context.Context) ([]docDomain.Document, error) {
	return u.documents.List(ctx)
}

func (u *Usecase) DeleteDocument(ctx context.Context, id uint64) error {
	if _, err := u.documents.GetByID(ctx, id); err != nil {
		return notFound(err, "document")
	}
	return u.documents.Delete(ctx, id)
}

// ---- agreements ----

type SignAgreementInput struct {
	InvestmentID  uint64 `json:"investment_id"`
	SignerName    string `json:"signer_name"`
	SignatureData string `json:"signature_data"`
}

// SignAgreement stores the captured signature and renders the signed
// agreement PDF to the file dir. One agreement per investment.
func (u *Usecase) SignAgreement(ctx context.Context, in SignAgreementInput) (*invDomain.Agreement, error) {
	signer := strings.TrimSpace(in.SignerName)
	if signer == "" {
		return nil, fmt.Errorf("%w: signer name is required", fault.ErrValidation)
	}
	if !strings.HasPrefix(in.SignatureData, "data:image/") {
		return nil, fmt.Errorf("%w: signature image is required", fault.ErrValidation)
	}
	inv, err := u.investments.GetByID(ctx, in.InvestmentID)
	if err != nil {
		return nil, notFound(err, "investment")
	}
	if _, err := u.investments.GetAgreementByInvestment(ctx, inv.ID); err == nil {
		return nil, fmt.Errorf("%w: investment already has a signed agreement", fault.ErrInvalidState)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	usr, err := u.users.GetByID(ctx, inv.UserID)
	if err != nil {
		return nil, notFound(err, "investor")
	}

	signedAt := time.Now().UTC()
	// key names follow the agreement script: signatureData carries the
	// data-URL image, investmentAmount must be a plain number, signedDate
	// an ISO timestamp.
	pdf, err := u.render.Render(ctx, renderer.KindAgreement, map[string]any{
		"title":            fmt.Sprintf("Investment Agreement #%d", inv.ID),
		"investorName":     usr.Name,
		"investorEmail":    usr.Email,
		"investmentAmount": inv.Amount,
		"content":          agreementTerms(inv),
		"signatureData":    in.SignatureData,
		"signedDate":       signedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/agreement-%s.pdf", u.fileDir, token.New())
	if err := writeFile(path, pdf); err != nil {
		return nil, err
	}

	a := &invDomain.Agreement{
		InvestmentID:  inv.ID,
		SignerName:    signer,
		SignatureData: in.SignatureData,
		PDFPath:       path,
		SignedAt:      signedAt,
	}
	if err := u.investments.CreateAgreement(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// agreementTerms builds the terms paragraphs; the script splits the
// content on newlines.
func agreementTerms(inv *invDomain.Investment) string {
	return strings.Join([]string{
		fmt.Sprintf("The Investor agrees to invest $%.2f with InvestorHub effective %s.",
			inv.Amount, inv.StartDate.Format("January 2, 2006")),
		fmt.Sprintf("The investment accrues an annual return of %.2f%%, paid out monthly.", inv.AnnualROIPercent),
		"Principal is returned when the investment is closed. Early termination is subject to review by InvestorHub.",
	}, "\n")
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s does not exist", fault.ErrNotFound, what)
	}
	return err
}
