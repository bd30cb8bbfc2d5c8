package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// ApplyTransition returns workflow.ErrStale when the guard matched no row.
	ApplyTransition(ctx context.Context, id uint64, t Transition) error
}

type ApprovalRepository interface {
	Create(ctx context.Context, a *Approval) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Approval, error)
}
