package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"p2p-loan-escrow/internal/domain/asset"
	domain "p2p-loan-escrow/internal/domain/loan"
	"p2p-loan-escrow/internal/domain/uow"
	"p2p-loan-escrow/internal/testutil/assetmock"
	"p2p-loan-escrow/internal/testutil/loanmock"
	"p2p-loan-escrow/internal/testutil/uowmock"
	uc "p2p-loan-escrow/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// -------- helpers --------

const (
	escrowID   = "00000000000000000000000000e5c404"
	borrowerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	lenderID   = "cccccccccccccccccccccccccccccccc"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newLoanHandler builds the handler over a mock-backed usecase. stored, if
// non-nil, is the single loan the repo knows about.
func newLoanHandler(stored *domain.Loan) *LoanHandler {
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			if stored != nil && stored.LoanID == loanID {
				cp := *stored
				return &cp, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	repo.GetByLoanIDForUpdateFn = repo.GetByLoanIDFn
	tx := uowmock.Static(uow.Repos{
		Loans:  repo,
		Assets: &assetmock.Mover{},
		Steps:  &assetmock.Steps{},
	})
	return NewLoanHandler(uc.NewUsecase(repo, tx, escrowID))
}

func validCreateBody() map[string]any {
	return map[string]any{
		"loan_id":           "loan-1",
		"principal_asset":   "token",
		"collateral_asset":  "native",
		"principal_amount":  1000,
		"collateral_amount": 500000,
		"repay_amount":      1100,
		"duration_steps":    10,
	}
}

func postCtx(e *echo.Echo, path string, body *bytes.Reader, caller string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = body
	}
	req := httptest.NewRequest(stdhttp.MethodPost, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// -------- tests --------

func TestCreateLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(nil)

	c, rec := postCtx(e, "/loans", mustJSON(validCreateBody()), borrowerID)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Borrower != borrowerID || got.LoanID != "loan-1" {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.Status != string(domain.StatusOpen) {
		t.Fatalf("status = %s, want open", got.Status)
	}
}

func TestCreateLoan_MissingCallerHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(nil)

	c, rec := postCtx(e, "/loans", mustJSON(validCreateBody()), "")
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateLoan_CallerFromHeaderNotBody(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(nil)

	body := validCreateBody()
	body["borrower"] = lenderID // must be ignored
	c, rec := postCtx(e, "/loans", mustJSON(body), borrowerID)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	var got uc.LoanDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Borrower != borrowerID {
		t.Fatalf("borrower = %s, want header identity %s", got.Borrower, borrowerID)
	}
}

func TestCreateLoan_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", strings.NewReader(`{"loan_id":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(CallerHeader, borrowerID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateLoan_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(nil)

	body := validCreateBody()
	body["principal_asset"] = "gold"
	body["principal_amount"] = 0
	c, rec := postCtx(e, "/loans", mustJSON(body), borrowerID)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(er.Details) == 0 {
		t.Fatal("expected field errors")
	}
}

func TestCreateLoan_Duplicate409(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(&domain.Loan{LoanID: "loan-1", Borrower: borrowerID, Status: domain.StatusOpen})

	c, rec := postCtx(e, "/loans", mustJSON(validCreateBody()), borrowerID)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func openLoan() *domain.Loan {
	return &domain.Loan{
		LoanID:           "loan-1",
		Borrower:         borrowerID,
		PrincipalAsset:   asset.KindToken,
		CollateralAsset:  asset.KindNative,
		PrincipalAmount:  1000,
		CollateralAmount: 500_000,
		RepayAmount:      1100,
		DurationSteps:    10,
		Status:           domain.StatusOpen,
		StatusUpdated:    time.Now().UTC(),
	}
}

func TestCancelLoan_WrongCaller403(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(openLoan())

	c, rec := postCtx(e, "/loans/loan-1/cancel", nil, lenderID)
	c.SetParamNames("loan_id")
	c.SetParamValues("loan-1")
	if err := h.CancelLoan(c); err != nil {
		t.Fatalf("CancelLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestFundLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(openLoan())

	c, rec := postCtx(e, "/loans/loan-1/fund", nil, lenderID)
	c.SetParamNames("loan_id")
	c.SetParamValues("loan-1")
	if err := h.FundLoan(c); err != nil {
		t.Fatalf("FundLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != string(domain.StatusFunded) || got.Lender == nil || *got.Lender != lenderID {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestRepayLoan_NotFunded409(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(openLoan())

	c, rec := postCtx(e, "/loans/loan-1/repay", nil, borrowerID)
	c.SetParamNames("loan_id")
	c.SetParamValues("loan-1")
	if err := h.RepayLoan(c); err != nil {
		t.Fatalf("RepayLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("missing")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetLoan_NoAuthRequired(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(openLoan())

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/loan-1", nil) // no caller header
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("loan-1")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
