package site

import (
	"time"

	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/boundary"
)

// Fields is the editable part of a site, shared by create and draft update.
type Fields struct {
	party.Identity
	LandOwnerID        *uint64
	SectorID           *uint64
	ActivityID         *uint64
	AllocationMethodID *uint64
	JurisdictionID     *uint64
	OpportunityTypeID  *uint64
	UtilityID          *uint64
	FacilityBranchID   *uint64
	ProjectDescription string
	ApplicationForm    string
}

type CreateSiteInput struct {
	Fields
	Actor       workflow.Actor
	Coordinates []boundary.Point
}

type UpdateDraftInput struct {
	ID    uint64
	Actor workflow.Actor
	Fields
}

type SiteDTO struct {
	ID                 uint64            `json:"id"`
	OwnerType          string            `json:"owner_type"`
	OwnerName          string            `json:"owner_name"`
	FirstName          string            `json:"first_name,omitempty"`
	OtherNames         string            `json:"other_names,omitempty"`
	Surname            string            `json:"surname,omitempty"`
	CompanyName        string            `json:"company_name,omitempty"`
	Email              string            `json:"email,omitempty"`
	Phone              string            `json:"phone,omitempty"`
	LandOwnerID        *uint64           `json:"landowner_id,omitempty"`
	SectorID           *uint64           `json:"sector_id,omitempty"`
	ActivityID         *uint64           `json:"activity_id,omitempty"`
	AllocationMethodID *uint64           `json:"allocationmethod_id,omitempty"`
	JurisdictionID     *uint64           `json:"jurisdiction_id,omitempty"`
	OpportunityTypeID  *uint64           `json:"opportunitytype_id,omitempty"`
	UtilityID          *uint64           `json:"utility_id,omitempty"`
	FacilityBranchID   *uint64           `json:"facilitybranch_id,omitempty"`
	ProjectDescription string            `json:"project_description"`
	ApplicationForm    string            `json:"application_form,omitempty"`
	Stage              workflow.Stage    `json:"stage"`
	StageLabel         string            `json:"stage_label"`
	Status             string            `json:"status"`
	SubmitRemarks      string            `json:"submit_remarks,omitempty"`
	AwardedInvestorID  *uint64           `json:"awarded_investor_id,omitempty"`
	UserID             uint64            `json:"user_id"`
	Coordinates        []boundary.Point  `json:"coordinates"`
	Boundary           *boundary.Summary `json:"boundary,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
