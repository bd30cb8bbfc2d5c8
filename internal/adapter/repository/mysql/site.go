package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	siteDomain "landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
)

type SiteRepository struct{ db *gorm.DB }

func NewSiteRepository(db *gorm.DB) *SiteRepository { return &SiteRepository{db: db} }

func (r *SiteRepository) Create(ctx context.Context, s *siteDomain.Site) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SiteRepository) GetByID(ctx context.Context, id uint64) (*siteDomain.Site, error) {
	var out siteDomain.Site
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "site", id)
	}
	return &out, nil
}

func (r *SiteRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*siteDomain.Site, error) {
	var out siteDomain.Site
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, id).Error
	if err != nil {
		return nil, notFound(err, "site", id)
	}
	return &out, nil
}

// UpdateDraft touches only owner and descriptive columns; stage and status
// are owned by ApplyTransition.
func (r *SiteRepository) UpdateDraft(ctx context.Context, s *siteDomain.Site) error {
	res := r.db.WithContext(ctx).
		Model(&siteDomain.Site{}).
		Where("id = ? AND stage = ? AND status = ?", s.ID, siteDomain.StageDraft, siteDomain.StatusDraft).
		Select(
			"owner_type", "first_name", "other_names", "surname", "company_name", "email", "phone",
			"landowner_id", "sector_id", "activity_id", "allocationmethod_id", "jurisdiction_id",
			"opportunitytype_id", "utility_id", "facilitybranch_id", "project_description", "application_form",
		).
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return workflow.ErrStale
	}
	return nil
}

func (r *SiteRepository) ApplyTransition(ctx context.Context, id uint64, t siteDomain.Transition) error {
	updates := map[string]any{
		"stage":  t.ToStage,
		"status": t.ToStatus,
	}
	if t.SubmitRemarks != nil {
		updates["submit_remarks"] = *t.SubmitRemarks
	}
	if t.AwardedInvestorID != nil {
		updates["awarded_investor_id"] = *t.AwardedInvestorID
	}
	res := r.db.WithContext(ctx).
		Model(&siteDomain.Site{}).
		Where("id = ? AND stage = ? AND status = ?", id, t.FromStage, t.FromStatus).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return workflow.ErrStale
	}
	return nil
}

func (r *SiteRepository) ListCoordinates(ctx context.Context, siteID uint64) ([]siteDomain.Coordinate, error) {
	var out []siteDomain.Coordinate
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *SiteRepository) ReplaceCoordinates(ctx context.Context, siteID uint64, coords []siteDomain.Coordinate) error {
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Delete(&siteDomain.Coordinate{}).Error; err != nil {
		return err
	}
	if len(coords) == 0 {
		return nil
	}
	for i := range coords {
		coords[i].ID = 0
		coords[i].SiteID = siteID
	}
	return r.db.WithContext(ctx).Create(&coords).Error
}

func notFound(err error, what string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(err, apperror.ErrNotFound, fmt.Sprintf("%s %d not found", what, id))
	}
	return err
}
