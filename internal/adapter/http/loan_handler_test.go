package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	"github.com/shopspring/decimal"

	loanDomain "landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/internal/testutil/loanmock"
	"landbank-backend/internal/testutil/partymock"
	"landbank-backend/internal/testutil/sitemock"
	"landbank-backend/internal/testutil/uowmock"
	"landbank-backend/internal/usecase/loan"
	"landbank-backend/pkg/apperror"
)

func newLoanHandler(repo *loanmock.Repo) *LoanHandler {
	r := uow.Repos{Loans: repo, Sites: &sitemock.Repo{}, Parties: &partymock.Repo{}}
	uc := loan.NewUsecase(uowmock.Passthrough(r, nil, nil), loanDomain.NewMachine(workflow.Policy{}), nil)
	return NewLoanHandler(uc, nil)
}

func TestCreateLoan(t *testing.T) {
	var saved *loanDomain.Loan
	h := newLoanHandler(&loanmock.Repo{CreateFn: func(_ context.Context, l *loanDomain.Loan) error {
		l.ID = 31
		saved = l
		return nil
	}})

	rec := serve(t, h.CreateLoan, call{
		method: stdhttp.MethodPost,
		path:   "/api/v1/loans",
		body: mustJSON(map[string]any{
			"investor_id":    5,
			"principal":      "250000.50",
			"rate":           "0.1250",
			"purpose":        "irrigation",
			"agreement_link": "https://docs.example.org/a/31",
		}),
		actor: actorPtr(8, workflow.RoleRegistrant),
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	dto := decode[loan.LoanDTO](t, rec)
	if dto.ID != 31 || dto.StageLabel != "Draft" || dto.Status != "draft" {
		t.Fatalf("dto = %+v", dto)
	}
	if !dto.Principal.Equal(decimal.RequireFromString("250000.5")) || !dto.Rate.Equal(decimal.RequireFromString("0.125")) {
		t.Fatalf("amounts = %s / %s", dto.Principal, dto.Rate)
	}
	if saved == nil || saved.UserID != 8 {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestCreateLoan_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name:  "zero principal",
			body:  map[string]any{"principal": "0", "rate": "0.1", "purpose": "x"},
			field: "principal",
		},
		{
			name:  "principal sub-cent",
			body:  map[string]any{"principal": "10.005", "rate": "0.1", "purpose": "x"},
			field: "principal",
		},
		{
			name:  "rate above one",
			body:  map[string]any{"principal": "10", "rate": "1.5", "purpose": "x"},
			field: "rate",
		},
		{
			name:  "missing purpose",
			body:  map[string]any{"principal": "10", "rate": "0.1"},
			field: "purpose",
		},
		{
			name:  "bad link",
			body:  map[string]any{"principal": "10", "rate": "0.1", "purpose": "x", "agreement_link": "not a url"},
			field: "agreement_link",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			created := false
			h := newLoanHandler(&loanmock.Repo{CreateFn: func(context.Context, *loanDomain.Loan) error {
				created = true
				return nil
			}})
			rec := serve(t, h.CreateLoan, call{
				method: stdhttp.MethodPost,
				path:   "/api/v1/loans",
				body:   mustJSON(tc.body),
				actor:  actorPtr(8, workflow.RoleRegistrant),
			})
			if rec.Code != stdhttp.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
			}
			er := decode[ErrorResponse](t, rec)
			found := false
			for _, d := range er.Details {
				if d.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a detail for %q, got %+v", tc.field, er.Details)
			}
			if created {
				t.Fatal("loan must not be persisted")
			}
		})
	}
}

func TestGetLoan(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*loanDomain.Loan, error) {
		if id != 31 {
			return nil, apperror.Clone(apperror.ErrNotFound, "loan not found")
		}
		return &loanDomain.Loan{ID: 31, Stage: loanDomain.StageSubmitted, Status: loanDomain.StatusSubmitted}, nil
	}})

	rec := serve(t, h.GetLoan, call{method: stdhttp.MethodGet, path: "/api/v1/loans/31", params: map[string]string{"loan_id": "31"}})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if dto := decode[loan.LoanDTO](t, rec); dto.StageLabel != "Submitted" {
		t.Fatalf("dto = %+v", dto)
	}

	rec = serve(t, h.GetLoan, call{method: stdhttp.MethodGet, path: "/api/v1/loans/7", params: map[string]string{"loan_id": "7"}})
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
