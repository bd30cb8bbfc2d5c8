package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landbank-backend/internal/domain/portfolio"
	"landbank-backend/internal/usecase/report"
)

type ReportHandler struct {
	responder
	uc *report.Usecase
}

func NewReportHandler(uc *report.Usecase, log *zap.Logger) *ReportHandler {
	return &ReportHandler{responder: newResponder(log), uc: uc}
}

type portfolioReq struct {
	Search   string `query:"search"    validate:"max=100"`
	Page     int    `query:"page"      validate:"gte=0"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
}

type exportReq struct {
	Search string `query:"search" validate:"max=100"`
	Format string `query:"format" validate:"omitempty,oneof=csv xlsx pdf"`
}

func (h *ReportHandler) Portfolio(c echo.Context) error {
	var req portfolioReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	page, err := h.uc.ListPortfolio(c.Request().Context(), portfolio.Query{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ReportHandler) Export(c echo.Context) error {
	var req exportReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	f, err := h.uc.Export(c.Request().Context(), req.Search, req.Format)
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Blob(http.StatusOK, f.ContentType, f.Content)
}
