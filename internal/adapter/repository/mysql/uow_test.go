package mysql

import (
	"context"
	"errors"
	"sync"
	"testing"

	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/internal/usecase/approval"
	"landbank-backend/pkg/apperror"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	var siteID uint64
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		s := makeSite(1)
		if err := r.Sites.Create(ctx, s); err != nil {
			return err
		}
		siteID = s.ID
		return r.SiteApprovals.Create(ctx, &site.Approval{SiteID: s.ID, ApprovedBy: 1, Stage: site.StageDraft, Remarks: "created", Status: workflow.RecordPending})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	rows, err := u.Repos().SiteApprovals.ListBySiteID(ctx, siteID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ledger after commit = %d rows, %v", len(rows), err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()
	sentinel := errors.New("boom")

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Sites.Create(ctx, makeSite(1)); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel, got %v", err)
	}

	var n int64
	db.Model(&site.Site{}).Count(&n)
	if n != 0 {
		t.Fatalf("site should be rolled back, found %d", n)
	}
}

func TestGormUoW_WithinSiteTx_RollsBackTransitionWithLedger(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()
	s := seedSite(t, db, site.StageDocumentation, site.StatusSubmitted)

	err := u.WithinSiteTx(ctx, s.ID, func(r uow.Repos, locked *site.Site) error {
		if locked.Stage != site.StageDocumentation {
			t.Fatalf("locked row = %+v", locked)
		}
		if err := r.Sites.ApplyTransition(ctx, locked.ID, site.Transition{
			FromStage: locked.Stage, FromStatus: locked.Status,
			ToStage: site.StageSiteOfficerReview, ToStatus: site.StatusSubmitted,
		}); err != nil {
			return err
		}
		return errors.New("ledger insert failed")
	})
	if err == nil {
		t.Fatalf("want error")
	}

	got, _ := NewSiteRepository(db).GetByID(ctx, s.ID)
	if got.Stage != site.StageDocumentation {
		t.Fatalf("stage change must roll back with the ledger, got %d", got.Stage)
	}
}

func TestGormUoW_NotFound(t *testing.T) {
	u := NewGormUoW(openTestDB(t))
	ctx := context.Background()

	called := false
	err := u.WithinSiteTx(ctx, 404, func(uow.Repos, *site.Site) error { called = true; return nil })
	if !errors.Is(err, apperror.ErrNotFound) || called {
		t.Fatalf("site: err=%v called=%v", err, called)
	}
	err = u.WithinLoanTx(ctx, 404, func(uow.Repos, *loan.Loan) error { called = true; return nil })
	if !errors.Is(err, apperror.ErrNotFound) || called {
		t.Fatalf("loan: err=%v called=%v", err, called)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()
	l := makeLoan(2)
	if err := NewLoanRepository(db).Create(ctx, l); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	err := u.WithinLoanTx(ctx, l.ID, func(r uow.Repos, locked *loan.Loan) error {
		if err := r.Loans.ApplyTransition(ctx, locked.ID, loan.Transition{
			FromStage: locked.Stage, FromStatus: locked.Status, ToStage: loan.StageSubmitted, ToStatus: loan.StatusSubmitted,
		}); err != nil {
			return err
		}
		return r.LoanApprovals.Create(ctx, &loan.Approval{LoanID: locked.ID, ApprovedBy: 2, Stage: loan.StageSubmitted, Remarks: "go", Status: workflow.RecordPending})
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	rows, _ := u.Repos().LoanApprovals.ListByLoanID(ctx, l.ID)
	if len(rows) != 1 {
		t.Fatalf("want 1 ledger row, got %d", len(rows))
	}
}

// Two actors race to advance the same site; exactly one commits.
func TestGormUoW_ConcurrentAdvance_SingleWinner(t *testing.T) {
	db := openTestDB(t)
	tx := NewGormUoW(db)
	flows := approval.NewUsecase(tx, site.NewMachine(workflow.Policy{}), loan.NewMachine(workflow.Policy{}))
	s := seedSite(t, db, site.StageSiteOfficerReview, site.StatusSubmitted)

	const racers = 2
	var (
		wg   sync.WaitGroup
		errs = make([]error, racers)
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = flows.AdvanceSite(context.Background(), approval.AdvanceInput{
				ID:          s.ID,
				TargetStage: site.StageManagerReview,
				Actor:       workflow.Actor{UserID: uint64(10 + i), Role: workflow.RoleSiteOfficer},
				Remarks:     "site visit done",
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case !errors.Is(err, apperror.ErrInvalidTransition):
			t.Fatalf("loser should see an invalid transition, got %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("want exactly one winner, got %d (%v)", wins, errs)
	}

	rows, _ := tx.Repos().SiteApprovals.ListBySiteID(context.Background(), s.ID)
	if len(rows) != 1 {
		t.Fatalf("want one ledger row, got %d", len(rows))
	}
	got, _ := tx.Repos().Sites.GetByID(context.Background(), s.ID)
	if got.Stage != site.StageManagerReview {
		t.Fatalf("stage = %d", got.Stage)
	}
}
