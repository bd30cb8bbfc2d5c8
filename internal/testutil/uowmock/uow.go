package uowmock

import (
	"context"
	"errors"

	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	ReposFn        func() uow.Repos
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinSiteTxFn func(ctx context.Context, siteID uint64, fn func(r uow.Repos, s *site.Site) error) error
	WithinLoanTxFn func(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithRepos(r uow.Repos) *UoW {
	m.ReposFn = func() uow.Repos { return r }
	return m
}
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinSiteTx(fn func(context.Context, uint64, func(uow.Repos, *site.Site) error) error) *UoW {
	m.WithinSiteTxFn = fn
	return m
}
func (m *UoW) WithWithinLoanTx(fn func(context.Context, uint64, func(uow.Repos, *loan.Loan) error) error) *UoW {
	m.WithinLoanTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs every tx body directly against r, handing over the
// given site or loan as the locked row.
func Passthrough(r uow.Repos, s *site.Site, l *loan.Loan) *UoW {
	return New().
		WithRepos(r).
		WithWithinTx(func(_ context.Context, fn func(uow.Repos) error) error { return fn(r) }).
		WithWithinSiteTx(func(_ context.Context, _ uint64, fn func(uow.Repos, *site.Site) error) error {
			if s == nil {
				return errUnimplemented
			}
			return fn(r, s)
		}).
		WithWithinLoanTx(func(_ context.Context, _ uint64, fn func(uow.Repos, *loan.Loan) error) error {
			if l == nil {
				return errUnimplemented
			}
			return fn(r, l)
		})
}

// Methods implementing UnitOfWork
func (m *UoW) Repos() uow.Repos {
	if m.ReposFn != nil {
		return m.ReposFn()
	}
	return uow.Repos{}
}
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinSiteTx(ctx context.Context, siteID uint64, fn func(r uow.Repos, s *site.Site) error) error {
	if m.WithinSiteTxFn != nil {
		return m.WithinSiteTxFn(ctx, siteID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}
