package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landbank-backend/internal/usecase/interest"
)

type InterestHandler struct {
	responder
	uc *interest.Usecase
}

func NewInterestHandler(uc *interest.Usecase, log *zap.Logger) *InterestHandler {
	return &InterestHandler{responder: newResponder(log), uc: uc}
}

type registerInterestReq struct {
	// nil registers a placeholder slot
	InvestorID        *uint64 `json:"investor_id"`
	Description       string  `json:"description"        validate:"max=2000"`
	CollateralDoc     string  `json:"collateral_doc"     validate:"max=255"`
	CollateralDocName string  `json:"collateral_docname" validate:"max=255"`
}

type awardReq struct {
	InvestorID uint64 `json:"investor_id" validate:"required"`
	Remarks    string `json:"remarks"     validate:"max=2000"`
}

func (h *InterestHandler) Register(c echo.Context) error {
	siteID, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	var req registerInterestReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	dto, err := h.uc.Register(c.Request().Context(), interest.RegisterInput{
		SiteID:            siteID,
		InvestorID:        req.InvestorID,
		Description:       req.Description,
		CollateralDoc:     req.CollateralDoc,
		CollateralDocName: req.CollateralDocName,
		Actor:             actor,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InterestHandler) List(c echo.Context) error {
	siteID, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.List(c.Request().Context(), siteID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InterestHandler) Award(c echo.Context) error {
	siteID, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	var req awardReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	dto, err := h.uc.Award(c.Request().Context(), interest.AwardInput{
		SiteID:     siteID,
		InvestorID: req.InvestorID,
		Actor:      actor,
		Remarks:    req.Remarks,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
