package interestmock

import (
	"context"

	domain "landbank-backend/internal/domain/interest"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, si *domain.SiteInvestor) error
	ListBySiteIDFn        func(ctx context.Context, siteID uint64) ([]domain.SiteInvestor, error)
	ExistsFn              func(ctx context.Context, siteID uint64, investorID *uint64) (bool, error)
	CountWithCollateralFn func(ctx context.Context, siteID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, si *domain.SiteInvestor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, si)
	}
	return nil
}
func (m *Repo) ListBySiteID(ctx context.Context, siteID uint64) ([]domain.SiteInvestor, error) {
	if m.ListBySiteIDFn != nil {
		return m.ListBySiteIDFn(ctx, siteID)
	}
	return nil, nil
}
func (m *Repo) Exists(ctx context.Context, siteID uint64, investorID *uint64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, siteID, investorID)
	}
	return false, nil
}
func (m *Repo) CountWithCollateral(ctx context.Context, siteID uint64) (int64, error) {
	if m.CountWithCollateralFn != nil {
		return m.CountWithCollateralFn(ctx, siteID)
	}
	return 0, nil
}
