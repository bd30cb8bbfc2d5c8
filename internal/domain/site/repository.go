package site

import "context"

type Repository interface {
	Create(ctx context.Context, s *Site) error
	GetByID(ctx context.Context, id uint64) (*Site, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Site, error)
	// UpdateDraft rewrites the editable columns while the site is still a draft.
	UpdateDraft(ctx context.Context, s *Site) error
	// ApplyTransition returns workflow.ErrStale when the guard matched no row.
	ApplyTransition(ctx context.Context, id uint64, t Transition) error

	ListCoordinates(ctx context.Context, siteID uint64) ([]Coordinate, error)
	ReplaceCoordinates(ctx context.Context, siteID uint64, coords []Coordinate) error
}

// ApprovalRepository is append-only.
type ApprovalRepository interface {
	Create(ctx context.Context, a *Approval) error
	ListBySiteID(ctx context.Context, siteID uint64) ([]Approval, error)
}
