package loan

import "landbank-backend/internal/domain/workflow"

const (
	StageDraft           workflow.Stage = 1
	StageSubmitted       workflow.Stage = 2
	StageDocumentation   workflow.Stage = 3
	StageOfficerReview   workflow.Stage = 4
	StageManagerReview   workflow.Stage = 5
	StageCommitteeReview workflow.Stage = 6
	StageApproved        workflow.Stage = 7
	StageDisbursed       workflow.Stage = 8
	StageRejected        workflow.Stage = 9
	StageDefaulted       workflow.Stage = 10
)

func Definition() workflow.Definition {
	manager := []workflow.Role{workflow.RoleManager}
	return workflow.Definition{
		Name: "loan",
		Stages: []workflow.StageDef{
			{Stage: StageDraft, Label: "Draft", Status: string(StatusDraft)},
			{Stage: StageSubmitted, Label: "Submitted", Status: string(StatusSubmitted)},
			{Stage: StageDocumentation, Label: "Documentation", Status: string(StatusSubmitted)},
			{Stage: StageOfficerReview, Label: "Officer Review", Status: string(StatusSubmitted)},
			{Stage: StageManagerReview, Label: "Manager Review", Status: string(StatusSubmitted)},
			{Stage: StageCommitteeReview, Label: "Committee Review", Status: string(StatusSubmitted)},
			{Stage: StageApproved, Label: "Approved", Status: string(StatusApproved), Outcome: true},
			{Stage: StageDisbursed, Label: "Disbursed", Status: string(StatusDisbursed), Outcome: true},
			{Stage: StageDefaulted, Label: "Defaulted", Status: string(StatusDefaulted), Outcome: true},
		},
		Initial:        StageDraft,
		Rejected:       StageRejected,
		RejectedLabel:  "Rejected",
		RejectedStatus: string(StatusRejected),
		ResubmitActors: []workflow.Role{workflow.RoleRegistrant},
		Rules: map[workflow.Stage]workflow.Rule{
			StageDraft:           {Next: StageSubmitted, Actors: []workflow.Role{workflow.RoleRegistrant}},
			StageSubmitted:       {Next: StageDocumentation, Actors: []workflow.Role{workflow.RoleCoordinator}},
			StageDocumentation:   {Next: StageOfficerReview, Actors: []workflow.Role{workflow.RoleCoordinator}, Rejectable: true},
			StageOfficerReview:   {Next: StageManagerReview, Actors: []workflow.Role{workflow.RoleSiteOfficer}, Rejectable: true},
			StageManagerReview:   {Next: StageCommitteeReview, Actors: manager, Rejectable: true},
			StageCommitteeReview: {Next: StageApproved, Actors: []workflow.Role{workflow.RoleCommittee}, Rejectable: true},
			StageApproved:        {Next: StageDisbursed, Actors: manager},
			StageDisbursed:       {Next: StageDefaulted, Actors: manager},
		},
	}
}

func NewMachine(p workflow.Policy) *workflow.Machine {
	return workflow.NewMachine(Definition(), p)
}
