package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	uow     uow.UnitOfWork
	machine *workflow.Machine
	log     *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, m *workflow.Machine, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, machine: m, log: log}
}

var maxRate = decimal.NewFromInt(1)

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	var errs []error
	if !in.Principal.IsPositive() {
		errs = append(errs, apperror.Clone(apperror.ErrValidation, "principal must be greater than zero"))
	}
	if in.Rate.IsNegative() || in.Rate.GreaterThan(maxRate) {
		errs = append(errs, apperror.Clone(apperror.ErrValidation, "rate must be a fraction between 0 and 1"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	l := &loan.Loan{
		SiteID:         in.SiteID,
		InvestorID:     in.InvestorID,
		UserID:         in.Actor.UserID,
		Principal:      in.Principal.Round(2),
		Rate:           in.Rate.Round(4),
		Purpose:        strings.TrimSpace(in.Purpose),
		AgreementLink:  strings.TrimSpace(in.AgreementLink),
		Stage:          u.machine.Initial(),
		Status:         loan.Status(u.machine.InitialStatus()),
		StageUpdatedAt: time.Now().UTC(),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if in.SiteID != nil {
			if _, err := r.Sites.GetByID(ctx, *in.SiteID); err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					return apperror.Clone(apperror.ErrValidation, fmt.Sprintf("site %d does not exist", *in.SiteID))
				}
				return err
			}
		}
		if in.InvestorID != nil {
			ok, err := r.Parties.InvestorExists(ctx, *in.InvestorID)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.Clone(apperror.ErrValidation, fmt.Sprintf("investor %d does not exist", *in.InvestorID))
			}
		}
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("loan_created", zap.Uint64("loan_id", l.ID), zap.String("principal", l.Principal.StringFixed(2)))
	return u.toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*LoanDTO, error) {
	l, err := u.uow.Repos().Loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.toDTO(l), nil
}

func (u *Usecase) toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		ID:             l.ID,
		SiteID:         l.SiteID,
		InvestorID:     l.InvestorID,
		UserID:         l.UserID,
		Principal:      l.Principal,
		Rate:           l.Rate,
		Purpose:        l.Purpose,
		AgreementLink:  l.AgreementLink,
		Stage:          l.Stage,
		StageLabel:     u.machine.Label(l.Stage),
		Status:         string(l.Status),
		StageUpdatedAt: l.StageUpdatedAt,
		CreatedAt:      l.CreatedAt,
	}
}
