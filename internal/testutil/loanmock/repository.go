package loanmock

import (
	"context"

	domain "landbank-backend/internal/domain/loan"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.ApprovalRepository = (*ApprovalRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Loan, error)
	ApplyTransitionFn  func(ctx context.Context, id uint64, t domain.Transition) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled // or errors.New("not implemented")
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) ApplyTransition(ctx context.Context, id uint64, t domain.Transition) error {
	if m.ApplyTransitionFn != nil {
		return m.ApplyTransitionFn(ctx, id, t)
	}
	return nil
}

// ApprovalRepo is the append-only ledger mock.
type ApprovalRepo struct {
	CreateFn       func(ctx context.Context, a *domain.Approval) error
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.Approval, error)
}

func (m *ApprovalRepo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *ApprovalRepo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Approval, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
