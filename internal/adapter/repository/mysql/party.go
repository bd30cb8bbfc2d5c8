package mysql

import (
	"context"

	"gorm.io/gorm"

	"landbank-backend/internal/domain/party"
)

type PartyRepository struct{ db *gorm.DB }

func NewPartyRepository(db *gorm.DB) *PartyRepository { return &PartyRepository{db: db} }

func (r *PartyRepository) CreateLandOwner(ctx context.Context, o *party.LandOwner) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *PartyRepository) GetLandOwner(ctx context.Context, id uint64) (*party.LandOwner, error) {
	var out party.LandOwner
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "landowner", id)
	}
	return &out, nil
}

func (r *PartyRepository) LandOwnerExists(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, &party.LandOwner{}, id)
}

func (r *PartyRepository) CreateInvestor(ctx context.Context, i *party.Investor) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *PartyRepository) GetInvestor(ctx context.Context, id uint64) (*party.Investor, error) {
	var out party.Investor
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "investor", id)
	}
	return &out, nil
}

func (r *PartyRepository) InvestorExists(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, &party.Investor{}, id)
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
