package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"landbank-backend/internal/usecase/loan"
)

type LoanHandler struct {
	responder
	uc *loan.Usecase
}

func NewLoanHandler(uc *loan.Usecase, log *zap.Logger) *LoanHandler {
	return &LoanHandler{responder: newResponder(log), uc: uc}
}

type createLoanReq struct {
	SiteID        *uint64         `json:"site_id"`
	InvestorID    *uint64         `json:"investor_id"`
	Principal     decimal.Decimal `json:"principal"      validate:"dgt=0,dplaces=2"`
	Rate          decimal.Decimal `json:"rate"           validate:"dgte=0,dlte=1,dplaces=4"`
	Purpose       string          `json:"purpose"        validate:"required,max=255"`
	AgreementLink string          `json:"agreement_link" validate:"omitempty,url,max=255"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	var req createLoanReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		SiteID:        req.SiteID,
		InvestorID:    req.InvestorID,
		Principal:     req.Principal,
		Rate:          req.Rate,
		Purpose:       req.Purpose,
		AgreementLink: req.AgreementLink,
		Actor:         actor,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := h.parseID(c, "loan_id")
	if err != nil {
		return done(err)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
