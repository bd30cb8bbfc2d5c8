package uowmock

import (
	"context"
	"errors"
	"testing"

	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/testutil/loanmock"
	"landbank-backend/internal/testutil/sitemock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	sites := &sitemock.Repo{}
	apprs := &sitemock.ApprovalRepo{}
	repos := uow.Repos{Sites: sites, SiteApprovals: apprs}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			// simulate transaction body
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Sites != sites || r.SiteApprovals != apprs {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	m := New().WithWithinTx(func(context.Context, func(uow.Repos) error) error { return sentinel })
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Defaults_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinSiteTx(ctx, 1, func(uow.Repos, *site.Site) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinSiteTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinLoanTx(ctx, 1, func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
	if r := m.Repos(); r.Sites != nil {
		t.Fatalf("Repos default: want zero value")
	}
}

func TestPassthrough_HandsOverLockedRows(t *testing.T) {
	ctx := context.Background()
	loans := &loanmock.Repo{}
	repos := uow.Repos{Loans: loans}
	s := &site.Site{ID: 7}
	l := &loan.Loan{ID: 9}
	m := Passthrough(repos, s, l)

	var gotSite *site.Site
	if err := m.WithinSiteTx(ctx, 7, func(_ uow.Repos, got *site.Site) error { gotSite = got; return nil }); err != nil {
		t.Fatalf("WithinSiteTx: %v", err)
	}
	if gotSite != s {
		t.Fatalf("WithinSiteTx: site not forwarded")
	}

	var gotLoans loan.Repository
	if err := m.WithinLoanTx(ctx, 9, func(r uow.Repos, got *loan.Loan) error {
		gotLoans = r.Loans
		if got != l {
			t.Fatalf("WithinLoanTx: loan not forwarded")
		}
		return nil
	}); err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if gotLoans != loans {
		t.Fatalf("WithinLoanTx: repos not forwarded")
	}
	if m.Repos().Loans != loans {
		t.Fatalf("Repos: not forwarded")
	}

	if err := Passthrough(repos, nil, nil).WithinSiteTx(ctx, 1, func(uow.Repos, *site.Site) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("nil site: want errUnimplemented, got %v", err)
	}
}
