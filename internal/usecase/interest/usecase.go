package interest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	interestDomain "landbank-backend/internal/domain/interest"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/internal/usecase/approval"
	"landbank-backend/pkg/apperror"
)

type RegisterInput struct {
	SiteID            uint64
	InvestorID        *uint64
	Description       string
	CollateralDoc     string
	CollateralDocName string
	Actor             workflow.Actor
}

type AwardInput struct {
	SiteID     uint64
	InvestorID uint64
	Actor      workflow.Actor
	Remarks    string
}

type InterestDTO struct {
	ID                uint64    `json:"id"`
	SiteID            uint64    `json:"site_id"`
	InvestorID        *uint64   `json:"investor_id"`
	Description       string    `json:"description,omitempty"`
	CollateralDoc     string    `json:"collateral_doc,omitempty"`
	CollateralDocName string    `json:"collateral_docname,omitempty"`
	UserID            uint64    `json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Transitioner runs a site transition inside the site-locked transaction.
type Transitioner interface {
	TransitionSite(ctx context.Context, req approval.SiteRequest) (*approval.TransitionDTO, error)
}

type Usecase struct {
	uow         uow.UnitOfWork
	machine     *workflow.Machine
	transitions Transitioner
	log         *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, m *workflow.Machine, t Transitioner, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, machine: m, transitions: t, log: log}
}

// Register records an investor's interest. It does not lock the site, so
// different investors can register concurrently; the unique index on
// (site_id, investor_id) settles races for the same pair.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*InterestDTO, error) {
	row := &interestDomain.SiteInvestor{
		SiteID:            in.SiteID,
		InvestorID:        in.InvestorID,
		UserID:            in.Actor.UserID,
		Description:       strings.TrimSpace(in.Description),
		CollateralDoc:     strings.TrimSpace(in.CollateralDoc),
		CollateralDocName: strings.TrimSpace(in.CollateralDocName),
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sites.GetByID(ctx, in.SiteID)
		if err != nil {
			return err
		}
		if s.Status == site.StatusRejected || !u.machine.Reached(s.Stage, site.StageApproved) {
			return apperror.Clone(apperror.ErrPreconditionFailed,
				fmt.Sprintf("site is at %s (%s); interest opens once it is approved", u.machine.Label(s.Stage), s.Status))
		}
		if in.InvestorID != nil {
			ok, err := r.Parties.InvestorExists(ctx, *in.InvestorID)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.Clone(apperror.ErrValidation, fmt.Sprintf("investor %d does not exist", *in.InvestorID))
			}
		}
		dup, err := r.Interests.Exists(ctx, in.SiteID, in.InvestorID)
		if err != nil {
			return err
		}
		if dup {
			return apperror.Clone(apperror.ErrDuplicateInterest, "")
		}
		return r.Interests.Create(ctx, row)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("interest_registered", zap.Uint64("site_id", row.SiteID), zap.Uint64("interest_id", row.ID))
	return toDTO(*row), nil
}

func (u *Usecase) List(ctx context.Context, siteID uint64) ([]InterestDTO, error) {
	r := u.uow.Repos()
	if _, err := r.Sites.GetByID(ctx, siteID); err != nil {
		return nil, err
	}
	rows, err := r.Interests.ListBySiteID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	out := make([]InterestDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDTO(row))
	}
	return out, nil
}

// Award moves an approved site to Awarded for the chosen investor. The
// collateral and interest checks are repeated on the locked row.
func (u *Usecase) Award(ctx context.Context, in AwardInput) (*approval.TransitionDTO, error) {
	inv := in.InvestorID
	return u.transitions.TransitionSite(ctx, approval.SiteRequest{
		AdvanceInput: approval.AdvanceInput{
			ID:          in.SiteID,
			TargetStage: site.StageAwarded,
			Actor:       in.Actor,
			Remarks:     in.Remarks,
		},
		Channel:           workflow.ChannelAward,
		AwardedInvestorID: &inv,
		Guard: func(ctx context.Context, r uow.Repos, s *site.Site) error {
			n, err := r.Interests.CountWithCollateral(ctx, s.ID)
			if err != nil {
				return err
			}
			if n == 0 {
				return apperror.Clone(apperror.ErrValidation, "no guarantor/collateral attached")
			}
			ok, err := r.Interests.Exists(ctx, s.ID, &inv)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.Clone(apperror.ErrValidation,
					fmt.Sprintf("investor %d has not registered interest in site %d", inv, s.ID))
			}
			return nil
		},
	})
}

func toDTO(r interestDomain.SiteInvestor) *InterestDTO {
	return &InterestDTO{
		ID:                r.ID,
		SiteID:            r.SiteID,
		InvestorID:        r.InvestorID,
		Description:       r.Description,
		CollateralDoc:     r.CollateralDoc,
		CollateralDocName: r.CollateralDocName,
		UserID:            r.UserID,
		CreatedAt:         r.CreatedAt,
	}
}
