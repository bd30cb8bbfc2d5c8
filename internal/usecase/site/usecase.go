package site

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"landbank-backend/internal/domain/reference"
	siteDomain "landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
	"landbank-backend/pkg/boundary"
)

type Usecase struct {
	uow     uow.UnitOfWork
	machine *workflow.Machine
	log     *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, m *workflow.Machine, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, machine: m, log: log}
}

func (u *Usecase) Create(ctx context.Context, in CreateSiteInput) (*SiteDTO, error) {
	f := in.Fields.normalized()
	if err := f.Identity.Validate(); err != nil {
		return nil, err
	}
	if len(in.Coordinates) > 0 {
		if err := boundary.Validate(in.Coordinates); err != nil {
			return nil, apperror.Clone(apperror.ErrValidation, err.Error())
		}
	}

	s := &siteDomain.Site{
		UserID: in.Actor.UserID,
		Stage:  u.machine.Initial(),
		Status: siteDomain.Status(u.machine.InitialStatus()),
	}
	f.apply(s)

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := checkRefs(ctx, r, f); err != nil {
			return err
		}
		if err := r.Sites.Create(ctx, s); err != nil {
			return err
		}
		if len(in.Coordinates) > 0 {
			return r.Sites.ReplaceCoordinates(ctx, s.ID, toCoordinates(s.ID, in.Coordinates))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("site_created", zap.Uint64("site_id", s.ID), zap.Uint64("user_id", s.UserID))
	return u.toDTO(s, in.Coordinates)
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*SiteDTO, error) {
	r := u.uow.Repos()
	s, err := r.Sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	coords, err := r.Sites.ListCoordinates(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.toDTO(s, toPoints(coords))
}

// UpdateDraft rewrites the editable fields; only the creator may do it and
// only while the site is still a draft.
func (u *Usecase) UpdateDraft(ctx context.Context, in UpdateDraftInput) (*SiteDTO, error) {
	f := in.Fields.normalized()
	if err := f.Identity.Validate(); err != nil {
		return nil, err
	}
	var updated *siteDomain.Site
	err := u.uow.WithinSiteTx(ctx, in.ID, func(r uow.Repos, s *siteDomain.Site) error {
		if err := u.editable(s, in.Actor); err != nil {
			return err
		}
		if err := checkRefs(ctx, r, f); err != nil {
			return err
		}
		f.apply(s)
		if err := r.Sites.UpdateDraft(ctx, s); err != nil {
			if errors.Is(err, workflow.ErrStale) {
				return apperror.Wrap(err, apperror.ErrPreconditionFailed, "site is no longer a draft")
			}
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	coords, err := u.uow.Repos().Sites.ListCoordinates(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return u.toDTO(updated, toPoints(coords))
}

func (u *Usecase) ReplaceCoordinates(ctx context.Context, id uint64, actor workflow.Actor, points []boundary.Point) (*SiteDTO, error) {
	if err := boundary.Validate(points); err != nil {
		return nil, apperror.Clone(apperror.ErrValidation, err.Error())
	}
	var locked *siteDomain.Site
	err := u.uow.WithinSiteTx(ctx, id, func(r uow.Repos, s *siteDomain.Site) error {
		if err := u.editable(s, actor); err != nil {
			return err
		}
		locked = s
		return r.Sites.ReplaceCoordinates(ctx, id, toCoordinates(id, points))
	})
	if err != nil {
		return nil, err
	}
	return u.toDTO(locked, points)
}

func (u *Usecase) editable(s *siteDomain.Site, actor workflow.Actor) error {
	if s.UserID != actor.UserID {
		return apperror.Clone(apperror.ErrUnauthorized, "only the registering user may edit a draft site")
	}
	if s.Stage != u.machine.Initial() || s.Status != siteDomain.StatusDraft {
		return apperror.Clone(apperror.ErrPreconditionFailed,
			fmt.Sprintf("site is at %s (%s); only drafts can be edited", u.machine.Label(s.Stage), s.Status))
	}
	return nil
}

func (u *Usecase) toDTO(s *siteDomain.Site, points []boundary.Point) (*SiteDTO, error) {
	summary, err := boundary.Summarize(points)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []boundary.Point{}
	}
	return &SiteDTO{
		ID:                 s.ID,
		OwnerType:          string(s.OwnerType),
		OwnerName:          s.DisplayName(),
		FirstName:          s.FirstName,
		OtherNames:         s.OtherNames,
		Surname:            s.Surname,
		CompanyName:        s.CompanyName,
		Email:              s.Email,
		Phone:              s.Phone,
		LandOwnerID:        s.LandOwnerID,
		SectorID:           s.SectorID,
		ActivityID:         s.ActivityID,
		AllocationMethodID: s.AllocationMethodID,
		JurisdictionID:     s.JurisdictionID,
		OpportunityTypeID:  s.OpportunityTypeID,
		UtilityID:          s.UtilityID,
		FacilityBranchID:   s.FacilityBranchID,
		ProjectDescription: s.ProjectDescription,
		ApplicationForm:    s.ApplicationForm,
		Stage:              s.Stage,
		StageLabel:         u.machine.Label(s.Stage),
		Status:             string(s.Status),
		SubmitRemarks:      s.SubmitRemarks,
		AwardedInvestorID:  s.AwardedInvestorID,
		UserID:             s.UserID,
		Coordinates:        points,
		Boundary:           summary,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}, nil
}

// checkRefs reports every dangling reference at once.
func checkRefs(ctx context.Context, r uow.Repos, f Fields) error {
	var errs []error
	for _, ref := range f.refs() {
		if ref.ID == nil {
			continue
		}
		ok, err := r.Reference.Exists(ctx, ref.Kind, *ref.ID)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, apperror.Clone(apperror.ErrValidation,
				fmt.Sprintf("%s %d does not exist", ref.Field, *ref.ID)))
		}
	}
	if f.LandOwnerID != nil {
		ok, err := r.Parties.LandOwnerExists(ctx, *f.LandOwnerID)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, apperror.Clone(apperror.ErrValidation,
				fmt.Sprintf("landowner_id %d does not exist", *f.LandOwnerID)))
		}
	}
	return errors.Join(errs...)
}

func (f Fields) refs() []reference.Ref {
	return []reference.Ref{
		{Kind: reference.Sectors, Field: "sector_id", ID: f.SectorID},
		{Kind: reference.Activities, Field: "activity_id", ID: f.ActivityID},
		{Kind: reference.AllocationMethods, Field: "allocationmethod_id", ID: f.AllocationMethodID},
		{Kind: reference.Jurisdictions, Field: "jurisdiction_id", ID: f.JurisdictionID},
		{Kind: reference.OpportunityTypes, Field: "opportunitytype_id", ID: f.OpportunityTypeID},
		{Kind: reference.Utilities, Field: "utility_id", ID: f.UtilityID},
		{Kind: reference.FacilityBranches, Field: "facilitybranch_id", ID: f.FacilityBranchID},
	}
}

func (f Fields) normalized() Fields {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.OtherNames = strings.TrimSpace(f.OtherNames)
	f.Surname = strings.TrimSpace(f.Surname)
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ProjectDescription = strings.TrimSpace(f.ProjectDescription)
	return f
}

func (f Fields) apply(s *siteDomain.Site) {
	s.Identity = f.Identity
	s.LandOwnerID = f.LandOwnerID
	s.SectorID = f.SectorID
	s.ActivityID = f.ActivityID
	s.AllocationMethodID = f.AllocationMethodID
	s.JurisdictionID = f.JurisdictionID
	s.OpportunityTypeID = f.OpportunityTypeID
	s.UtilityID = f.UtilityID
	s.FacilityBranchID = f.FacilityBranchID
	s.ProjectDescription = f.ProjectDescription
	s.ApplicationForm = f.ApplicationForm
}

func toCoordinates(siteID uint64, points []boundary.Point) []siteDomain.Coordinate {
	out := make([]siteDomain.Coordinate, 0, len(points))
	for _, p := range points {
		out = append(out, siteDomain.Coordinate{SiteID: siteID, Latitude: p.Latitude, Longitude: p.Longitude})
	}
	return out
}

func toPoints(coords []siteDomain.Coordinate) []boundary.Point {
	out := make([]boundary.Point, 0, len(coords))
	for _, c := range coords {
		out = append(out, boundary.Point{Latitude: c.Latitude, Longitude: c.Longitude})
	}
	return out
}
