package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	invDomain "investorhub/internal/domain/investment"
	"investorhub/internal/usecase/admin"
	syncuc "investorhub/internal/usecase/sync"
	"investorhub/pkg/token"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	uc      *admin.Usecase
	sync    *syncuc.Usecase
	fileDir string
}

func NewAdminHandler(uc *admin.Usecase, sync *syncuc.Usecase, fileDir string) *AdminHandler {
	return &AdminHandler{uc: uc, sync: sync, fileDir: fileDir}
}

func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// ---- investors ----

type createInvestorReq struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) CreateInvestor(c echo.Context) error {
	var req createInvestorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	usr, err := h.uc.CreateInvestor(c.Request().Context(), admin.CreateInvestorInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, usr)
}

func (h *AdminHandler) ListInvestors(c echo.Context) error {
	rows, err := h.uc.ListInvestors(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) DeleteInvestor(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.uc.DeleteInvestor(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- investments ----

type createInvestmentReq struct {
	UserID           uint64  `json:"user_id" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,gte=0,dec2"`
	AnnualROIPercent float64 `json:"annual_roi_percent" validate:"gte=0,lte=100"`
	StartDate        string  `json:"start_date"`
}

func (h *AdminHandler) CreateInvestment(c echo.Context) error {
	var req createInvestmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in := admin.CreateInvestmentInput{
		UserID:           req.UserID,
		Amount:           req.Amount,
		AnnualROIPercent: req.AnnualROIPercent,
	}
	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
		}
		in.StartDate = d
	}
	inv, err := h.uc.CreateInvestment(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *AdminHandler) ListInvestments(c echo.Context) error {
	rows, err := h.uc.ListInvestments(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) CloseInvestment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	inv, err := h.uc.CloseInvestment(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *AdminHandler) DeleteInvestment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.uc.DeleteInvestment(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- payouts ----

type createPayoutReq struct {
	InvestmentID uint64  `json:"investment_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gte=0,dec2"`
	Kind         string  `json:"kind" validate:"required"`
	PaidAt       string  `json:"paid_at"`
}

func (h *AdminHandler) CreatePayout(c echo.Context) error {
	var req createPayoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in := admin.CreatePayoutInput{
		InvestmentID: req.InvestmentID,
		Amount:       req.Amount,
		Kind:         invDomain.PayoutKind(req.Kind),
	}
	if req.PaidAt != "" {
		d, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "paid_at must be YYYY-MM-DD"})
		}
		in.PaidAt = d
	}
	p, err := h.uc.CreatePayout(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) DeletePayout(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.uc.DeletePayout(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- documents ----

// UploadDocument accepts a multipart form: title, optional user_id, file.
func (h *AdminHandler) UploadDocument(c echo.Context) error {
	title := c.FormValue("title")
	var userID *uint64
	if v := c.FormValue("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		}
		userID = &id
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return writeErr(c, err)
	}
	defer src.Close()

	path := filepath.Join(h.fileDir, token.New()+filepath.Ext(fh.Filename))
	if err := saveUpload(src, path); err != nil {
		return writeErr(c, err)
	}

	doc, err := h.uc.UploadDocument(c.Request().Context(), admin.UploadDocumentInput{
		UserID: userID, Title: title, FilePath: path,
	})
	if err != nil {
		_ = os.Remove(path)
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *AdminHandler) ListDocuments(c echo.Context) error {
	rows, err := h.uc.ListDocuments(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) DeleteDocument(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.uc.DeleteDocument(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- agreements ----

type signAgreementReq struct {
	InvestmentID  uint64 `json:"investment_id" validate:"required"`
	SignerName    string `json:"signer_name" validate:"required"`
	SignatureData string `json:"signature_data" validate:"required"`
}

func (h *AdminHandler) SignAgreement(c echo.Context) error {
	var req signAgreementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	a, err := h.uc.SignAgreement(c.Request().Context(), admin.SignAgreementInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// ---- sync ----

func (h *AdminHandler) TriggerSync(c echo.Context) error {
	if err := h.sync.Run(c.Request().Context()); err != nil {
		if errors.Is(err, syncuc.ErrAlreadyRunning) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, h.sync.Status())
}

func (h *AdminHandler) SyncStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sync.Status())
}

func saveUpload(src io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}
