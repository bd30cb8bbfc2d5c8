package approval

import (
	"context"
	"time"

	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/uow"
	"landbank-backend/internal/domain/workflow"
)

type AdvanceInput struct {
	ID          uint64
	TargetStage workflow.Stage
	Actor       workflow.Actor
	Remarks     string
}

// SiteRequest is a site transition through either channel.
type SiteRequest struct {
	AdvanceInput
	Channel workflow.Channel
	// Guard runs on the locked row once the engine accepted the move.
	Guard             func(ctx context.Context, r uow.Repos, s *site.Site) error
	AwardedInvestorID *uint64
}

type ApprovalDTO struct {
	ID         uint64                `json:"id"`
	ApprovedBy uint64                `json:"approved_by"`
	Stage      workflow.Stage        `json:"stage"`
	StageLabel string                `json:"stage_label"`
	Remarks    string                `json:"remarks"`
	Status     workflow.RecordStatus `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
}

type TransitionDTO struct {
	Workflow   string         `json:"workflow"`
	ID         uint64         `json:"id"`
	FromStage  workflow.Stage `json:"from_stage"`
	Stage      workflow.Stage `json:"stage"`
	StageLabel string         `json:"stage_label"`
	Status     string         `json:"status"`
	Approval   ApprovalDTO    `json:"approval"`
}

type StageDTO struct {
	Stage   workflow.Stage `json:"stage"`
	Label   string         `json:"label"`
	Status  string         `json:"status,omitempty"`
	Channel string         `json:"channel,omitempty"`
}

// Event is handed to hooks after a transition committed.
type Event struct {
	Workflow     string
	EntityID     uint64
	From         workflow.State
	To           workflow.State
	RecordStage  workflow.Stage
	RecordStatus workflow.RecordStatus
	Actor        workflow.Actor
	Remarks      string
	At           time.Time
}

// Hook is the post-commit extension point (notifications and the like).
type Hook interface {
	OnTransition(ctx context.Context, ev Event) error
}

type HookFunc func(ctx context.Context, ev Event) error

func (f HookFunc) OnTransition(ctx context.Context, ev Event) error { return f(ctx, ev) }

type Observer interface {
	ObserveTransition(workflow, target, outcome string)
}
