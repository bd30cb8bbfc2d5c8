package sitemock

import (
	"context"

	domain "landbank-backend/internal/domain/site"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.ApprovalRepository = (*ApprovalRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters return context.Canceled; unset writers succeed.
type Repo struct {
	CreateFn             func(ctx context.Context, s *domain.Site) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Site, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.Site, error)
	UpdateDraftFn        func(ctx context.Context, s *domain.Site) error
	ApplyTransitionFn    func(ctx context.Context, id uint64, t domain.Transition) error
	ListCoordinatesFn    func(ctx context.Context, siteID uint64) ([]domain.Coordinate, error)
	ReplaceCoordinatesFn func(ctx context.Context, siteID uint64, coords []domain.Coordinate) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Site) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Site, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Site, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) UpdateDraft(ctx context.Context, s *domain.Site) error {
	if m.UpdateDraftFn != nil {
		return m.UpdateDraftFn(ctx, s)
	}
	return nil
}
func (m *Repo) ApplyTransition(ctx context.Context, id uint64, t domain.Transition) error {
	if m.ApplyTransitionFn != nil {
		return m.ApplyTransitionFn(ctx, id, t)
	}
	return nil
}
func (m *Repo) ListCoordinates(ctx context.Context, siteID uint64) ([]domain.Coordinate, error) {
	if m.ListCoordinatesFn != nil {
		return m.ListCoordinatesFn(ctx, siteID)
	}
	return nil, nil
}
func (m *Repo) ReplaceCoordinates(ctx context.Context, siteID uint64, coords []domain.Coordinate) error {
	if m.ReplaceCoordinatesFn != nil {
		return m.ReplaceCoordinatesFn(ctx, siteID, coords)
	}
	return nil
}

// ApprovalRepo is the append-only ledger mock.
type ApprovalRepo struct {
	CreateFn       func(ctx context.Context, a *domain.Approval) error
	ListBySiteIDFn func(ctx context.Context, siteID uint64) ([]domain.Approval, error)
}

func (m *ApprovalRepo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *ApprovalRepo) ListBySiteID(ctx context.Context, siteID uint64) ([]domain.Approval, error) {
	if m.ListBySiteIDFn != nil {
		return m.ListBySiteIDFn(ctx, siteID)
	}
	return nil, nil
}
