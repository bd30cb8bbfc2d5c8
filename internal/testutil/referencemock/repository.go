package referencemock

import (
	"context"

	domain "landbank-backend/internal/domain/reference"
)

var _ domain.Repository = (*Repo)(nil)

// Repo answers true for every reference unless ExistsFn says otherwise.
type Repo struct {
	ExistsFn func(ctx context.Context, kind domain.Kind, id uint64) (bool, error)
}

func (m *Repo) Exists(ctx context.Context, kind domain.Kind, id uint64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, kind, id)
	}
	return true, nil
}

// Missing reports the listed kinds as absent.
func Missing(kinds ...domain.Kind) *Repo {
	return &Repo{ExistsFn: func(_ context.Context, kind domain.Kind, _ uint64) (bool, error) {
		for _, k := range kinds {
			if k == kind {
				return false, nil
			}
		}
		return true, nil
	}}
}
