package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
)

func TestSiteRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()

	s := makeSite(7)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stage != site.StageDraft || got.Status != site.StatusDraft || got.FirstName != "Kofi" || got.UserID != 7 {
		t.Errorf("unexpected site: %+v", got)
	}

	locked, err := repo.GetByIDForUpdate(ctx, s.ID)
	if err != nil || locked.ID != s.ID {
		t.Fatalf("GetByIDForUpdate: %v %+v", err, locked)
	}
}

func TestSiteRepository_GetByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewSiteRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	_, err = repo.GetByIDForUpdate(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestSiteRepository_ApplyTransition_CompareAndSwap(t *testing.T) {
	db := openTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()
	s := seedSite(t, db, site.StageDraft, site.StatusDraft)

	remarks := "submitted for review"
	tr := site.Transition{
		FromStage: site.StageDraft, FromStatus: site.StatusDraft,
		ToStage: site.StageCoordinating, ToStatus: site.StatusSubmitted,
		SubmitRemarks: &remarks,
	}
	if err := repo.ApplyTransition(ctx, s.ID, tr); err != nil {
		t.Fatalf("first ApplyTransition: %v", err)
	}

	// same observed state again: the guard no longer matches
	if err := repo.ApplyTransition(ctx, s.ID, tr); !errors.Is(err, workflow.ErrStale) {
		t.Fatalf("want ErrStale, got %v", err)
	}

	got, _ := repo.GetByID(ctx, s.ID)
	if got.Stage != site.StageCoordinating || got.Status != site.StatusSubmitted || got.SubmitRemarks != remarks {
		t.Fatalf("unexpected site after transition: %+v", got)
	}
}

func TestSiteRepository_ApplyTransition_SetsAwardedInvestor(t *testing.T) {
	db := openTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()
	s := seedSite(t, db, site.StageApproved, site.StatusApproved)

	inv := uint64(5)
	err := repo.ApplyTransition(ctx, s.ID, site.Transition{
		FromStage: site.StageApproved, FromStatus: site.StatusApproved,
		ToStage: site.StageAwarded, ToStatus: site.StatusAwarded,
		AwardedInvestorID: &inv,
	})
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	got, _ := repo.GetByID(ctx, s.ID)
	if got.AwardedInvestorID == nil || *got.AwardedInvestorID != 5 || got.Status != site.StatusAwarded {
		t.Fatalf("unexpected site: %+v", got)
	}
}

func TestSiteRepository_UpdateDraft(t *testing.T) {
	db := openTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()
	s := seedSite(t, db, site.StageDraft, site.StatusDraft)

	s.Identity = party.Identity{OwnerType: party.OwnerCompany, CompanyName: "Volta Agro Ltd"}
	s.ProjectDescription = "Rice mill"
	s.Stage = site.StageApproved // ignored: not an editable column
	if err := repo.UpdateDraft(ctx, s); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	got, _ := repo.GetByID(ctx, s.ID)
	if got.CompanyName != "Volta Agro Ltd" || got.FirstName != "" || got.ProjectDescription != "Rice mill" {
		t.Fatalf("draft not updated: %+v", got)
	}
	if got.Stage != site.StageDraft {
		t.Fatalf("UpdateDraft must not move the stage, got %d", got.Stage)
	}

	submitted := seedSite(t, db, site.StageCoordinating, site.StatusSubmitted)
	submitted.ProjectDescription = "changed"
	if err := repo.UpdateDraft(ctx, submitted); !errors.Is(err, workflow.ErrStale) {
		t.Fatalf("want ErrStale for non-draft, got %v", err)
	}
}

func TestSiteRepository_Coordinates(t *testing.T) {
	db := openTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()
	s := seedSite(t, db, site.StageDraft, site.StatusDraft)

	coord := func(lat, lon string) site.Coordinate {
		return site.Coordinate{Latitude: decimal.RequireFromString(lat), Longitude: decimal.RequireFromString(lon)}
	}
	first := []site.Coordinate{coord("5.6", "-0.2"), coord("5.6", "-0.1"), coord("5.7", "-0.1")}
	if err := repo.ReplaceCoordinates(ctx, s.ID, first); err != nil {
		t.Fatalf("ReplaceCoordinates: %v", err)
	}
	second := []site.Coordinate{coord("6.1", "0.5"), coord("6.1", "0.6"), coord("6.2", "0.6"), coord("6.2", "0.5")}
	if err := repo.ReplaceCoordinates(ctx, s.ID, second); err != nil {
		t.Fatalf("ReplaceCoordinates: %v", err)
	}

	got, err := repo.ListCoordinates(ctx, s.ID)
	if err != nil {
		t.Fatalf("ListCoordinates: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 coordinates, got %d", len(got))
	}
	if !got[0].Latitude.Equal(decimal.RequireFromString("6.1")) || !got[3].Longitude.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("unexpected order/values: %+v", got)
	}
}
