package uow

import (
	"context"

	"landbank-backend/internal/domain/interest"
	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/reference"
	"landbank-backend/internal/domain/site"
)

// Repos are bound to the transaction of the enclosing WithinXxx call.
type Repos struct {
	Sites         site.Repository
	SiteApprovals site.ApprovalRepository
	Interests     interest.Repository
	Parties       party.Repository
	Reference     reference.Repository
	Loans         loan.Repository
	LoanApprovals loan.ApprovalRepository
}

type UnitOfWork interface {
	// repos on the plain connection, for reads outside a tx
	Repos() Repos
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the site row first, then pass it in
	WithinSiteTx(ctx context.Context, siteID uint64, fn func(r Repos, s *site.Site) error) error
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
