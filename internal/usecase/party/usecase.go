package party

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/workflow"
)

type CreateInput struct {
	party.Identity
	IDNumber string
	Actor    workflow.Actor
}

type Usecase struct {
	repo party.Repository
	log  *zap.Logger
}

func NewUsecase(r party.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log}
}

func (u *Usecase) CreateLandOwner(ctx context.Context, in CreateInput) (*party.LandOwner, error) {
	id, err := identity(in)
	if err != nil {
		return nil, err
	}
	o := &party.LandOwner{Identity: id, IDNumber: strings.TrimSpace(in.IDNumber), UserID: in.Actor.UserID}
	if err := u.repo.CreateLandOwner(ctx, o); err != nil {
		return nil, err
	}
	u.log.Info("landowner_created", zap.Uint64("landowner_id", o.ID))
	return o, nil
}

func (u *Usecase) GetLandOwner(ctx context.Context, id uint64) (*party.LandOwner, error) {
	return u.repo.GetLandOwner(ctx, id)
}

func (u *Usecase) CreateInvestor(ctx context.Context, in CreateInput) (*party.Investor, error) {
	id, err := identity(in)
	if err != nil {
		return nil, err
	}
	i := &party.Investor{Identity: id, IDNumber: strings.TrimSpace(in.IDNumber), UserID: in.Actor.UserID}
	if err := u.repo.CreateInvestor(ctx, i); err != nil {
		return nil, err
	}
	u.log.Info("investor_created", zap.Uint64("investor_id", i.ID))
	return i, nil
}

func (u *Usecase) GetInvestor(ctx context.Context, id uint64) (*party.Investor, error) {
	return u.repo.GetInvestor(ctx, id)
}

func identity(in CreateInput) (party.Identity, error) {
	id := in.Identity
	id.FirstName = strings.TrimSpace(id.FirstName)
	id.OtherNames = strings.TrimSpace(id.OtherNames)
	id.Surname = strings.TrimSpace(id.Surname)
	id.CompanyName = strings.TrimSpace(id.CompanyName)
	id.Email = strings.TrimSpace(id.Email)
	id.Phone = strings.TrimSpace(id.Phone)
	return id, id.Validate()
}
