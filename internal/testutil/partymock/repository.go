package partymock

import (
	"context"

	domain "landbank-backend/internal/domain/party"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset existence checks answer true so tests only wire the failing case.
type Repo struct {
	CreateLandOwnerFn func(ctx context.Context, o *domain.LandOwner) error
	GetLandOwnerFn    func(ctx context.Context, id uint64) (*domain.LandOwner, error)
	LandOwnerExistsFn func(ctx context.Context, id uint64) (bool, error)
	CreateInvestorFn  func(ctx context.Context, i *domain.Investor) error
	GetInvestorFn     func(ctx context.Context, id uint64) (*domain.Investor, error)
	InvestorExistsFn  func(ctx context.Context, id uint64) (bool, error)
}

func (m *Repo) CreateLandOwner(ctx context.Context, o *domain.LandOwner) error {
	if m.CreateLandOwnerFn != nil {
		return m.CreateLandOwnerFn(ctx, o)
	}
	return nil
}
func (m *Repo) GetLandOwner(ctx context.Context, id uint64) (*domain.LandOwner, error) {
	if m.GetLandOwnerFn != nil {
		return m.GetLandOwnerFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) LandOwnerExists(ctx context.Context, id uint64) (bool, error) {
	if m.LandOwnerExistsFn != nil {
		return m.LandOwnerExistsFn(ctx, id)
	}
	return true, nil
}
func (m *Repo) CreateInvestor(ctx context.Context, i *domain.Investor) error {
	if m.CreateInvestorFn != nil {
		return m.CreateInvestorFn(ctx, i)
	}
	return nil
}
func (m *Repo) GetInvestor(ctx context.Context, id uint64) (*domain.Investor, error) {
	if m.GetInvestorFn != nil {
		return m.GetInvestorFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) InvestorExists(ctx context.Context, id uint64) (bool, error) {
	if m.InvestorExistsFn != nil {
		return m.InvestorExistsFn(ctx, id)
	}
	return true, nil
}
