package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	interestDomain "landbank-backend/internal/domain/interest"
	loanDomain "landbank-backend/internal/domain/loan"
	siteDomain "landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/internal/testutil/interestmock"
	"landbank-backend/internal/testutil/partymock"
	"landbank-backend/internal/testutil/sitemock"
	"landbank-backend/internal/testutil/uowmock"
	"landbank-backend/internal/usecase/approval"
	"landbank-backend/internal/usecase/interest"
)

func newInterestHandler(s *siteDomain.Site, rows *[]interestDomain.SiteInvestor) *InterestHandler {
	r := uow.Repos{
		Sites: &sitemock.Repo{
			GetByIDFn: func(context.Context, uint64) (*siteDomain.Site, error) { return s, nil },
		},
		SiteApprovals: &sitemock.ApprovalRepo{},
		Parties:       &partymock.Repo{},
		Interests: &interestmock.Repo{
			CreateFn: func(_ context.Context, si *interestDomain.SiteInvestor) error {
				si.ID = uint64(len(*rows) + 1)
				*rows = append(*rows, *si)
				return nil
			},
			ListBySiteIDFn: func(context.Context, uint64) ([]interestDomain.SiteInvestor, error) { return *rows, nil },
			ExistsFn: func(_ context.Context, _ uint64, inv *uint64) (bool, error) {
				for _, row := range *rows {
					if row.InvestorID != nil && inv != nil && *row.InvestorID == *inv {
						return true, nil
					}
				}
				return false, nil
			},
			CountWithCollateralFn: func(context.Context, uint64) (int64, error) {
				var n int64
				for _, row := range *rows {
					if row.CollateralDoc != "" {
						n++
					}
				}
				return n, nil
			},
		},
	}
	p := workflow.Policy{AwardRoles: []workflow.Role{workflow.RoleManager}}
	tx := uowmock.Passthrough(r, s, nil)
	m := siteDomain.NewMachine(p)
	flows := approval.NewUsecase(tx, m, loanDomain.NewMachine(p))
	return NewInterestHandler(interest.NewUsecase(tx, m, flows, nil), nil)
}

func approvedSite() *siteDomain.Site {
	return &siteDomain.Site{ID: 9, Stage: siteDomain.StageApproved, Status: siteDomain.StatusApproved}
}

func TestRegisterInterest_ThenDuplicate(t *testing.T) {
	rows := []interestDomain.SiteInvestor{}
	h := newInterestHandler(approvedSite(), &rows)
	req := call{
		method: stdhttp.MethodPost,
		path:   "/api/v1/sites/9/investors",
		params: map[string]string{"site_id": "9"},
		actor:  actorPtr(4, workflow.RoleCoordinator),
	}

	req.body = mustJSON(map[string]any{"investor_id": 5, "collateral_doc": "deed.pdf"})
	rec := serve(t, h.Register, req)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	if dto := decode[interest.InterestDTO](t, rec); dto.SiteID != 9 || *dto.InvestorID != 5 {
		t.Fatalf("unexpected dto: %+v", dto)
	}

	req.body = mustJSON(map[string]any{"investor_id": 5})
	rec = serve(t, h.Register, req)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("duplicate => status = %d, want 409", rec.Code)
	}
	if er := decode[ErrorResponse](t, rec); er.Code != "DUPLICATE_INTEREST" {
		t.Fatalf("code = %q", er.Code)
	}

	rec = serve(t, h.List, call{method: stdhttp.MethodGet, path: "/api/v1/sites/9/investors", params: map[string]string{"site_id": "9"}})
	if out := decode[[]interest.InterestDTO](t, rec); len(out) != 1 {
		t.Fatalf("list = %+v", out)
	}
}

func TestRegisterInterest_BeforeApproval(t *testing.T) {
	rows := []interestDomain.SiteInvestor{}
	s := &siteDomain.Site{ID: 9, Stage: siteDomain.StageManagerReview, Status: siteDomain.StatusSubmitted}
	h := newInterestHandler(s, &rows)

	rec := serve(t, h.Register, call{
		method: stdhttp.MethodPost,
		path:   "/api/v1/sites/9/investors",
		body:   mustJSON(map[string]any{"investor_id": 5}),
		params: map[string]string{"site_id": "9"},
		actor:  actorPtr(4, workflow.RoleCoordinator),
	})
	if rec.Code != stdhttp.StatusPreconditionFailed {
		t.Fatalf("status = %d, want 412", rec.Code)
	}
}

func TestAward(t *testing.T) {
	inv := uint64(5)
	tests := []struct {
		name  string
		rows  []interestDomain.SiteInvestor
		body  map[string]any
		actor *workflow.Actor
		want  int
		code  string
	}{
		{
			name:  "awarded",
			rows:  []interestDomain.SiteInvestor{{SiteID: 9, InvestorID: &inv, CollateralDoc: "deed.pdf"}},
			body:  map[string]any{"investor_id": 5, "remarks": "best offer"},
			actor: actorPtr(2, workflow.RoleManager),
			want:  stdhttp.StatusOK,
		},
		{
			name:  "no collateral",
			rows:  []interestDomain.SiteInvestor{{SiteID: 9, InvestorID: &inv}},
			body:  map[string]any{"investor_id": 5, "remarks": "best offer"},
			actor: actorPtr(2, workflow.RoleManager),
			want:  stdhttp.StatusUnprocessableEntity,
			code:  "VALIDATION_ERROR",
		},
		{
			name:  "role outside award roles",
			rows:  []interestDomain.SiteInvestor{{SiteID: 9, InvestorID: &inv, CollateralDoc: "deed.pdf"}},
			body:  map[string]any{"investor_id": 5, "remarks": "best offer"},
			actor: actorPtr(3, workflow.RoleCommittee),
			want:  stdhttp.StatusForbidden,
			code:  "UNAUTHORIZED",
		},
		{
			name:  "investor missing from body",
			body:  map[string]any{"remarks": "best offer"},
			actor: actorPtr(2, workflow.RoleManager),
			want:  stdhttp.StatusUnprocessableEntity,
			code:  "VALIDATION_ERROR",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := append([]interestDomain.SiteInvestor{}, tc.rows...)
			h := newInterestHandler(approvedSite(), &rows)
			rec := serve(t, h.Award, call{
				method: stdhttp.MethodPost,
				path:   "/api/v1/sites/9/award",
				body:   mustJSON(tc.body),
				params: map[string]string{"site_id": "9"},
				actor:  tc.actor,
			})
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.code != "" {
				if er := decode[ErrorResponse](t, rec); er.Code != tc.code {
					t.Fatalf("code = %q, want %q", er.Code, tc.code)
				}
				return
			}
			dto := decode[approval.TransitionDTO](t, rec)
			if dto.Stage != siteDomain.StageAwarded || dto.Status != "awarded" {
				t.Fatalf("unexpected transition: %+v", dto)
			}
		})
	}
}
