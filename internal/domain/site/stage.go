package site

import "landbank-backend/internal/domain/workflow"

const (
	StageDraft             workflow.Stage = 1
	StageCoordinating      workflow.Stage = 2
	StageDocumentation     workflow.Stage = 3
	StageSiteOfficerReview workflow.Stage = 4
	StageManagerReview     workflow.Stage = 5
	StageCommitteeReview   workflow.Stage = 6
	StageApproved          workflow.Stage = 7
	StageAwarded           workflow.Stage = 8
	StageRejected          workflow.Stage = 9
)

// Definition is the site approval chain.
func Definition() workflow.Definition {
	return workflow.Definition{
		Name: "site",
		Stages: []workflow.StageDef{
			{Stage: StageDraft, Label: "Draft", Status: string(StatusDraft)},
			{Stage: StageCoordinating, Label: "Coordinating", Status: string(StatusSubmitted)},
			{Stage: StageDocumentation, Label: "Documentation", Status: string(StatusSubmitted)},
			{Stage: StageSiteOfficerReview, Label: "Site Officer Review", Status: string(StatusSubmitted)},
			{Stage: StageManagerReview, Label: "Manager Review", Status: string(StatusSubmitted)},
			{Stage: StageCommitteeReview, Label: "Committee Review", Status: string(StatusSubmitted)},
			{Stage: StageApproved, Label: "Approved", Status: string(StatusApproved), Outcome: true},
			{Stage: StageAwarded, Label: "Awarded", Status: string(StatusAwarded), Outcome: true},
		},
		Initial:        StageDraft,
		Rejected:       StageRejected,
		RejectedLabel:  "Rejected",
		RejectedStatus: string(StatusRejected),
		ResubmitActors: []workflow.Role{workflow.RoleRegistrant},
		Rules: map[workflow.Stage]workflow.Rule{
			StageDraft:             {Next: StageCoordinating, Actors: []workflow.Role{workflow.RoleRegistrant}},
			StageCoordinating:      {Next: StageDocumentation, Actors: []workflow.Role{workflow.RoleCoordinator}},
			StageDocumentation:     {Next: StageSiteOfficerReview, Actors: []workflow.Role{workflow.RoleCoordinator}, Rejectable: true},
			StageSiteOfficerReview: {Next: StageManagerReview, Actors: []workflow.Role{workflow.RoleSiteOfficer}, Rejectable: true},
			StageManagerReview:     {Next: StageCommitteeReview, Actors: []workflow.Role{workflow.RoleManager}, Rejectable: true},
			StageCommitteeReview:   {Next: StageApproved, Actors: []workflow.Role{workflow.RoleCommittee}, Rejectable: true},
			StageApproved:          {Next: StageAwarded, Channel: workflow.ChannelAward},
		},
	}
}

func NewMachine(p workflow.Policy) *workflow.Machine {
	return workflow.NewMachine(Definition(), p)
}
