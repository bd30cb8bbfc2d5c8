package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"landbank-backend/internal/domain/interest"
	"landbank-backend/pkg/apperror"
)

type InterestRepository struct{ db *gorm.DB }

func NewInterestRepository(db *gorm.DB) *InterestRepository { return &InterestRepository{db: db} }

// Create maps a unique-index violation to DuplicateInterest so that two
// racing registrations for the same pair surface the same error as the
// pre-check.
func (r *InterestRepository) Create(ctx context.Context, si *interest.SiteInvestor) error {
	err := r.db.WithContext(ctx).Create(si).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(err, apperror.ErrDuplicateInterest, "")
	}
	return err
}

func (r *InterestRepository) ListBySiteID(ctx context.Context, siteID uint64) ([]interest.SiteInvestor, error) {
	var out []interest.SiteInvestor
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *InterestRepository) Exists(ctx context.Context, siteID uint64, investorID *uint64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&interest.SiteInvestor{}).Where("site_id = ?", siteID)
	if investorID == nil {
		q = q.Where("investor_id IS NULL")
	} else {
		q = q.Where("investor_id = ?", *investorID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *InterestRepository) CountWithCollateral(ctx context.Context, siteID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&interest.SiteInvestor{}).
		Where("site_id = ? AND collateral_doc IS NOT NULL AND collateral_doc <> ''", siteID).
		Count(&n).Error
	return n, err
}
