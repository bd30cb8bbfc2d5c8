package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
)

type Usecase struct {
	uow      uow.UnitOfWork
	sites    *workflow.Machine
	loans    *workflow.Machine
	hooks    []Hook
	observer Observer
	log      *zap.Logger
}

type Option func(*Usecase)

func WithHook(h Hook) Option { return func(u *Usecase) { u.hooks = append(u.hooks, h) } }

func WithObserver(o Observer) Option { return func(u *Usecase) { u.observer = o } }

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

// NewUsecase wires both workflows. A log hook is always installed first.
func NewUsecase(tx uow.UnitOfWork, sites, loans *workflow.Machine, opts ...Option) *Usecase {
	u := &Usecase{uow: tx, sites: sites, loans: loans}
	for _, o := range opts {
		o(u)
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}
	u.hooks = append([]Hook{LogHook(u.log)}, u.hooks...)
	return u
}

func (u *Usecase) SiteMachine() *workflow.Machine { return u.sites }

func (u *Usecase) AdvanceSite(ctx context.Context, in AdvanceInput) (*TransitionDTO, error) {
	return u.TransitionSite(ctx, SiteRequest{AdvanceInput: in, Channel: workflow.ChannelAdvance})
}

// TransitionSite locks the site, asks the engine, runs the guard, then
// writes the guarded update and the ledger row in one transaction.
func (u *Usecase) TransitionSite(ctx context.Context, req SiteRequest) (*TransitionDTO, error) {
	var (
		dto *TransitionDTO
		ev  Event
	)
	remarks := strings.TrimSpace(req.Remarks)

	err := u.uow.WithinSiteTx(ctx, req.ID, func(r uow.Repos, s *site.Site) error {
		dec, err := u.sites.Decide(s.State(), workflow.Request{
			Target:  req.TargetStage,
			Role:    req.Actor.Role,
			Remarks: remarks,
			Channel: req.Channel,
		})
		if err != nil {
			return err
		}
		if req.Guard != nil {
			if err := req.Guard(ctx, r, s); err != nil {
				return err
			}
		}

		t := site.Transition{
			FromStage:         s.Stage,
			FromStatus:        s.Status,
			ToStage:           dec.To.Stage,
			ToStatus:          site.Status(dec.Status),
			AwardedInvestorID: req.AwardedInvestorID,
		}
		if s.Stage == site.StageDraft && dec.To.Stage == site.StageCoordinating {
			t.SubmitRemarks = &remarks
		}
		if err := r.Sites.ApplyTransition(ctx, s.ID, t); err != nil {
			return stale(err, "site")
		}

		a := &site.Approval{
			SiteID:     s.ID,
			ApprovedBy: req.Actor.UserID,
			Stage:      dec.RecordStage,
			Remarks:    remarks,
			Status:     dec.RecordStatus,
		}
		if err := r.SiteApprovals.Create(ctx, a); err != nil {
			return err
		}

		dto = &TransitionDTO{
			Workflow:   u.sites.Name(),
			ID:         s.ID,
			FromStage:  s.Stage,
			Stage:      dec.To.Stage,
			StageLabel: u.sites.Label(dec.To.Stage),
			Status:     dec.Status,
			Approval:   toApprovalDTO(u.sites, a.ID, a.ApprovedBy, a.Stage, a.Remarks, a.Status, a.CreatedAt),
		}
		ev = Event{
			Workflow: u.sites.Name(), EntityID: s.ID, From: dec.From, To: dec.To,
			RecordStage: dec.RecordStage, RecordStatus: dec.RecordStatus,
			Actor: req.Actor, Remarks: remarks, At: a.CreatedAt,
		}
		return nil
	})
	u.observe(u.sites, req.TargetStage, err)
	if err != nil {
		return nil, err
	}
	u.fire(ctx, ev)
	return dto, nil
}

func (u *Usecase) AdvanceLoan(ctx context.Context, in AdvanceInput) (*TransitionDTO, error) {
	var (
		dto *TransitionDTO
		ev  Event
	)
	remarks := strings.TrimSpace(in.Remarks)

	err := u.uow.WithinLoanTx(ctx, in.ID, func(r uow.Repos, l *loan.Loan) error {
		dec, err := u.loans.Decide(l.State(), workflow.Request{
			Target:  in.TargetStage,
			Role:    in.Actor.Role,
			Remarks: remarks,
		})
		if err != nil {
			return err
		}
		err = r.Loans.ApplyTransition(ctx, l.ID, loan.Transition{
			FromStage:  l.Stage,
			FromStatus: l.Status,
			ToStage:    dec.To.Stage,
			ToStatus:   loan.Status(dec.Status),
		})
		if err != nil {
			return stale(err, "loan")
		}

		a := &loan.Approval{
			LoanID:     l.ID,
			ApprovedBy: in.Actor.UserID,
			Stage:      dec.RecordStage,
			Remarks:    remarks,
			Status:     dec.RecordStatus,
		}
		if err := r.LoanApprovals.Create(ctx, a); err != nil {
			return err
		}

		dto = &TransitionDTO{
			Workflow:   u.loans.Name(),
			ID:         l.ID,
			FromStage:  l.Stage,
			Stage:      dec.To.Stage,
			StageLabel: u.loans.Label(dec.To.Stage),
			Status:     dec.Status,
			Approval:   toApprovalDTO(u.loans, a.ID, a.ApprovedBy, a.Stage, a.Remarks, a.Status, a.CreatedAt),
		}
		ev = Event{
			Workflow: u.loans.Name(), EntityID: l.ID, From: dec.From, To: dec.To,
			RecordStage: dec.RecordStage, RecordStatus: dec.RecordStatus,
			Actor: in.Actor, Remarks: remarks, At: a.CreatedAt,
		}
		return nil
	})
	u.observe(u.loans, in.TargetStage, err)
	if err != nil {
		return nil, err
	}
	u.fire(ctx, ev)
	return dto, nil
}

func (u *Usecase) SiteHistory(ctx context.Context, siteID uint64) ([]ApprovalDTO, error) {
	r := u.uow.Repos()
	if _, err := r.Sites.GetByID(ctx, siteID); err != nil {
		return nil, err
	}
	rows, err := r.SiteApprovals.ListBySiteID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	out := make([]ApprovalDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toApprovalDTO(u.sites, a.ID, a.ApprovedBy, a.Stage, a.Remarks, a.Status, a.CreatedAt))
	}
	return out, nil
}

func (u *Usecase) LoanHistory(ctx context.Context, loanID uint64) ([]ApprovalDTO, error) {
	r := u.uow.Repos()
	if _, err := r.Loans.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	rows, err := r.LoanApprovals.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]ApprovalDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toApprovalDTO(u.loans, a.ID, a.ApprovedBy, a.Stage, a.Remarks, a.Status, a.CreatedAt))
	}
	return out, nil
}

// AllowedSiteTargets lists what actor may request on the site right now.
// Only the engine is consulted; an award target may still fail its
// collateral guard when submitted.
func (u *Usecase) AllowedSiteTargets(ctx context.Context, siteID uint64, actor workflow.Actor) ([]StageDTO, error) {
	s, err := u.uow.Repos().Sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	out := []StageDTO{}
	for _, ch := range []workflow.Channel{workflow.ChannelAdvance, workflow.ChannelAward} {
		name := "advance"
		if ch == workflow.ChannelAward {
			name = "award"
		}
		for _, st := range u.sites.Allowed(s.State(), actor.Role, ch) {
			out = append(out, StageDTO{Stage: st, Label: u.sites.Label(st), Channel: name})
		}
	}
	return out, nil
}

// Stages returns the vocabulary of the named workflow.
func (u *Usecase) Stages(name string) ([]StageDTO, error) {
	var m *workflow.Machine
	switch name {
	case u.sites.Name():
		m = u.sites
	case u.loans.Name():
		m = u.loans
	default:
		return nil, apperror.Clone(apperror.ErrNotFound, "unknown workflow "+name)
	}
	vocab := m.Vocabulary()
	out := make([]StageDTO, 0, len(vocab))
	for _, s := range vocab {
		out = append(out, StageDTO{Stage: s.Stage, Label: s.Label, Status: s.Status})
	}
	return out, nil
}

// unknownTarget labels requested stages outside the workflow.
const unknownTarget = "unknown"

func (u *Usecase) observe(m *workflow.Machine, target workflow.Stage, err error) {
	if u.observer == nil {
		return
	}
	outcome := "committed"
	if err != nil {
		outcome = apperror.FromError(err).Code
	}
	label := unknownTarget
	if m.Known(target) {
		label = m.Label(target)
	}
	u.observer.ObserveTransition(m.Name(), label, outcome)
}

// fire runs hooks after commit; their errors are logged and dropped.
func (u *Usecase) fire(ctx context.Context, ev Event) {
	for _, h := range u.hooks {
		if err := h.OnTransition(ctx, ev); err != nil {
			u.log.Warn("transition hook failed",
				zap.String("workflow", ev.Workflow),
				zap.Uint64("id", ev.EntityID),
				zap.Error(err))
		}
	}
}

// LogHook writes one structured line per committed transition.
func LogHook(l *zap.Logger) Hook {
	return HookFunc(func(_ context.Context, ev Event) error {
		l.Info("workflow_transition",
			zap.String("workflow", ev.Workflow),
			zap.Uint64("id", ev.EntityID),
			zap.Int("from_stage", int(ev.From.Stage)),
			zap.Int("to_stage", int(ev.To.Stage)),
			zap.Int("record_stage", int(ev.RecordStage)),
			zap.String("record_status", string(ev.RecordStatus)),
			zap.Uint64("actor_id", ev.Actor.UserID),
			zap.String("actor_role", string(ev.Actor.Role)),
		)
		return nil
	})
}

func stale(err error, what string) error {
	if errors.Is(err, workflow.ErrStale) {
		return apperror.Wrap(err, apperror.ErrInvalidTransition, what+" changed concurrently; re-fetch and retry")
	}
	return err
}

func toApprovalDTO(m *workflow.Machine, id, by uint64, st workflow.Stage, remarks string, rs workflow.RecordStatus, at time.Time) ApprovalDTO {
	return ApprovalDTO{
		ID:         id,
		ApprovedBy: by,
		Stage:      st,
		StageLabel: m.Label(st),
		Remarks:    remarks,
		Status:     rs,
		CreatedAt:  at,
	}
}
