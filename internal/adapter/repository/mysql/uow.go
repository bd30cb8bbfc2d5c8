package mysql

import (
	"context"

	"gorm.io/gorm"

	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Sites:         &SiteRepository{db: tx},
		SiteApprovals: &SiteApprovalRepository{db: tx},
		Interests:     &InterestRepository{db: tx},
		Parties:       &PartyRepository{db: tx},
		Reference:     &ReferenceRepository{db: tx},
		Loans:         &LoanRepository{db: tx},
		LoanApprovals: &LoanApprovalRepository{db: tx},
	}
}

// Repos returns repositories bound to the plain connection, for reads.
func (u *GormUoW) Repos() uow.Repos { return reposFor(u.db) }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinSiteTx(ctx context.Context, siteID uint64, fn func(r uow.Repos, s *site.Site) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the site row up-front to prevent races
		s, err := r.Sites.GetByIDForUpdate(ctx, siteID)
		if err != nil {
			return err
		}
		return fn(r, s)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
