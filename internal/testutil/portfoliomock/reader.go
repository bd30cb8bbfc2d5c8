package portfoliomock

import (
	"context"

	domain "landbank-backend/internal/domain/portfolio"
)

var _ domain.Reader = (*Reader)(nil)

type Reader struct {
	PortfolioFn func(ctx context.Context, q domain.Query) ([]domain.Row, int64, error)
}

func (m *Reader) Portfolio(ctx context.Context, q domain.Query) ([]domain.Row, int64, error) {
	if m.PortfolioFn != nil {
		return m.PortfolioFn(ctx, q)
	}
	return nil, 0, nil
}
