package party

import "context"

type Repository interface {
	CreateLandOwner(ctx context.Context, o *LandOwner) error
	GetLandOwner(ctx context.Context, id uint64) (*LandOwner, error)
	LandOwnerExists(ctx context.Context, id uint64) (bool, error)

	CreateInvestor(ctx context.Context, i *Investor) error
	GetInvestor(ctx context.Context, id uint64) (*Investor, error)
	InvestorExists(ctx context.Context, id uint64) (bool, error)
}
