package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	partyDomain "landbank-backend/internal/domain/party"
	"landbank-backend/internal/usecase/party"
)

type PartyHandler struct {
	responder
	uc *party.Usecase
}

func NewPartyHandler(uc *party.Usecase, log *zap.Logger) *PartyHandler {
	return &PartyHandler{responder: newResponder(log), uc: uc}
}

// identityReq is the individual/company block shared by parties and sites.
type identityReq struct {
	OwnerType   string `json:"owner_type"   validate:"required,oneof=individual company"`
	FirstName   string `json:"first_name"   validate:"required_if=OwnerType individual,max=100"`
	OtherNames  string `json:"other_names"  validate:"max=150"`
	Surname     string `json:"surname"      validate:"required_if=OwnerType individual,max=100"`
	CompanyName string `json:"company_name" validate:"required_if=OwnerType company,max=255"`
	Email       string `json:"email"        validate:"omitempty,email,max=150"`
	Phone       string `json:"phone"        validate:"max=30"`
}

func (r identityReq) identity() partyDomain.Identity {
	return partyDomain.Identity{
		OwnerType:   partyDomain.OwnerType(r.OwnerType),
		FirstName:   r.FirstName,
		OtherNames:  r.OtherNames,
		Surname:     r.Surname,
		CompanyName: r.CompanyName,
		Email:       r.Email,
		Phone:       r.Phone,
	}
}

type createPartyReq struct {
	identityReq
	IDNumber string `json:"id_number" validate:"max=50"`
}

func (h *PartyHandler) input(c echo.Context) (party.CreateInput, error) {
	actor, err := h.actor(c)
	if err != nil {
		return party.CreateInput{}, err
	}
	var req createPartyReq
	if err := h.bind(c, &req); err != nil {
		return party.CreateInput{}, err
	}
	return party.CreateInput{Identity: req.identity(), IDNumber: req.IDNumber, Actor: actor}, nil
}

func (h *PartyHandler) CreateLandOwner(c echo.Context) error {
	in, err := h.input(c)
	if err != nil {
		return done(err)
	}
	o, err := h.uc.CreateLandOwner(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *PartyHandler) GetLandOwner(c echo.Context) error {
	id, err := h.parseID(c, "id")
	if err != nil {
		return done(err)
	}
	o, err := h.uc.GetLandOwner(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *PartyHandler) CreateInvestor(c echo.Context) error {
	in, err := h.input(c)
	if err != nil {
		return done(err)
	}
	i, err := h.uc.CreateInvestor(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *PartyHandler) GetInvestor(c echo.Context) error {
	id, err := h.parseID(c, "id")
	if err != nil {
		return done(err)
	}
	i, err := h.uc.GetInvestor(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, i)
}
