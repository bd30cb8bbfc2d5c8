package mysql

import (
	"context"

	"gorm.io/gorm"

	loanDomain "landbank-backend/internal/domain/loan"
	siteDomain "landbank-backend/internal/domain/site"
)

// SiteApprovalRepository only appends and reads; the model hooks refuse
// updates and deletes.
type SiteApprovalRepository struct{ db *gorm.DB }

func NewSiteApprovalRepository(db *gorm.DB) *SiteApprovalRepository {
	return &SiteApprovalRepository{db: db}
}

func (r *SiteApprovalRepository) Create(ctx context.Context, a *siteDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *SiteApprovalRepository) ListBySiteID(ctx context.Context, siteID uint64) ([]siteDomain.Approval, error) {
	var out []siteDomain.Approval
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

type LoanApprovalRepository struct{ db *gorm.DB }

func NewLoanApprovalRepository(db *gorm.DB) *LoanApprovalRepository {
	return &LoanApprovalRepository{db: db}
}

func (r *LoanApprovalRepository) Create(ctx context.Context, a *loanDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LoanApprovalRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]loanDomain.Approval, error) {
	var out []loanDomain.Approval
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
