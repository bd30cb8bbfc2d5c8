package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landbank-backend/internal/usecase/site"
	"landbank-backend/pkg/boundary"
)

type SiteHandler struct {
	responder
	uc *site.Usecase
}

func NewSiteHandler(uc *site.Usecase, log *zap.Logger) *SiteHandler {
	return &SiteHandler{responder: newResponder(log), uc: uc}
}

type siteFieldsReq struct {
	identityReq
	LandOwnerID        *uint64 `json:"landowner_id"`
	SectorID           *uint64 `json:"sector_id"`
	ActivityID         *uint64 `json:"activity_id"`
	AllocationMethodID *uint64 `json:"allocationmethod_id"`
	JurisdictionID     *uint64 `json:"jurisdiction_id"`
	OpportunityTypeID  *uint64 `json:"opportunitytype_id"`
	UtilityID          *uint64 `json:"utility_id"`
	FacilityBranchID   *uint64 `json:"facilitybranch_id"`
	ProjectDescription string  `json:"project_description" validate:"max=2000"`
	ApplicationForm    string  `json:"application_form"    validate:"max=255"`
}

func (r siteFieldsReq) fields() site.Fields {
	return site.Fields{
		Identity:           r.identity(),
		LandOwnerID:        r.LandOwnerID,
		SectorID:           r.SectorID,
		ActivityID:         r.ActivityID,
		AllocationMethodID: r.AllocationMethodID,
		JurisdictionID:     r.JurisdictionID,
		OpportunityTypeID:  r.OpportunityTypeID,
		UtilityID:          r.UtilityID,
		FacilityBranchID:   r.FacilityBranchID,
		ProjectDescription: r.ProjectDescription,
		ApplicationForm:    r.ApplicationForm,
	}
}

type createSiteReq struct {
	siteFieldsReq
	Coordinates []boundary.Point `json:"coordinates"`
}

type coordinatesReq struct {
	Coordinates []boundary.Point `json:"coordinates" validate:"required,min=3"`
}

func (h *SiteHandler) Create(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	var req createSiteReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	dto, err := h.uc.Create(c.Request().Context(), site.CreateSiteInput{
		Fields:      req.fields(),
		Actor:       actor,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SiteHandler) Get(c echo.Context) error {
	id, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SiteHandler) UpdateDraft(c echo.Context) error {
	id, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	var req siteFieldsReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	dto, err := h.uc.UpdateDraft(c.Request().Context(), site.UpdateDraftInput{ID: id, Actor: actor, Fields: req.fields()})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SiteHandler) ReplaceCoordinates(c echo.Context) error {
	id, err := h.parseID(c, "site_id")
	if err != nil {
		return done(err)
	}
	actor, err := h.actor(c)
	if err != nil {
		return done(err)
	}
	var req coordinatesReq
	if err := h.bind(c, &req); err != nil {
		return done(err)
	}
	dto, err := h.uc.ReplaceCoordinates(c.Request().Context(), id, actor, req.Coordinates)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
