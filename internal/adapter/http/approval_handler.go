package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landbank-backend/internal/domain/workflow"
	"landbank-backend/internal/usecase/approval"
)

// ApprovalHandler exposes the site and loan workflows.
type ApprovalHandler struct {
	responder
	uc *approval.Usecase
}

func NewApprovalHandler(uc *approval.Usecase, log *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{responder: newResponder(log), uc: uc}
}

type transitionReq struct {
	TargetStage *int   `json:"target_stage" validate:"required,gte=1"`
	Remarks     string `json:"remarks"      validate:"max=2000"`
}

func (h *ApprovalHandler) advanceInput(c echo.Context, param string) (approval.AdvanceInput, error) {
	id, err := h.parseID(c, param)
	if err != nil {
		return approval.AdvanceInput{}, err
	}
	actor, err := h.actor(c)
	if err != nil {
		return approval.AdvanceInput{}, err
	}
	var req transitionReq
	if err := h.bind(c, &req); err != nil {
		return approval.AdvanceInput{}, err
	}
	return approval.AdvanceInput{
		ID:          id,
		TargetStage: workflow.Stage(*req.TargetStage),
		Actor:       actor,
		Remarks:     req.Remarks,
	}, nil
}

func (h *ApprovalHandler) AdvanceSite(c echo.Context) error {
	in, err := h.advanceInput(c, "site_id")
	if err != nil {
		return done(err)
	}
	dto, err := h.uc.AdvanceSite(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// AllowedSiteTargets lists the moves open to the caller on this site.
func (h *ApprovalHandler) AllowedSiteTargets(c echo.Context) error {
	id, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	out, err := h.uc.AllowedSiteTargets(c.Request().Context(), id, actor)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) SiteApprovals(c echo.Context) error {
	id, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.SiteHistory(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) AdvanceLoan(c echo.Context) error {
	in, err := h.advanceInput(c, "loan_id")
	if err != nil {
		return done(err)
	}
	dto, err := h.uc.AdvanceLoan(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) LoanApprovals(c echo.Context) error {
	id, err := h.parseID(c, "loan_id")
	if err != nil {
		return done(err)
	}
	out, err := h.uc.LoanHistory(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Stages(c echo.Context) error {
	out, err := h.uc.Stages(c.Param("workflow"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
