package site

import (
	"time"

	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusAwarded   Status = "awarded"
	StatusRejected  Status = "rejected"
	StatusDefaulted Status = "defaulted"
)

type Site struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"id"`
	party.Identity `gorm:"embedded"`

	LandOwnerID        *uint64 `gorm:"column:landowner_id;index" json:"landowner_id,omitempty"`
	UserID             uint64  `gorm:"column:user_id;not null;index" json:"user_id"`
	SectorID           *uint64 `gorm:"column:sector_id" json:"sector_id,omitempty"`
	ActivityID         *uint64 `gorm:"column:activity_id" json:"activity_id,omitempty"`
	AllocationMethodID *uint64 `gorm:"column:allocationmethod_id" json:"allocationmethod_id,omitempty"`
	JurisdictionID     *uint64 `gorm:"column:jurisdiction_id" json:"jurisdiction_id,omitempty"`
	OpportunityTypeID  *uint64 `gorm:"column:opportunitytype_id" json:"opportunitytype_id,omitempty"`
	UtilityID          *uint64 `gorm:"column:utility_id" json:"utility_id,omitempty"`
	FacilityBranchID   *uint64 `gorm:"column:facilitybranch_id" json:"facilitybranch_id,omitempty"`

	ProjectDescription string         `gorm:"column:project_description;type:text" json:"project_description"`
	ApplicationForm    string         `gorm:"column:application_form;size:255" json:"application_form,omitempty"`
	Stage              workflow.Stage `gorm:"column:stage;not null;default:1;index" json:"stage"`
	Status             Status         `gorm:"column:status;type:enum('draft','submitted','approved','awarded','rejected','defaulted');default:'draft';not null" json:"status"`
	SubmitRemarks      string         `gorm:"column:submit_remarks;type:text" json:"submit_remarks,omitempty"`
	AwardedInvestorID  *uint64        `gorm:"column:awarded_investor_id" json:"awarded_investor_id,omitempty"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Site) TableName() string { return "sites" }

// State is the engine view of the site.
func (s *Site) State() workflow.State {
	return workflow.State{Stage: s.Stage, Rejected: s.Status == StatusRejected}
}

// Coordinate is one boundary vertex; order is the insertion order (id).
type Coordinate struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	SiteID    uint64          `gorm:"column:site_id;not null;index" json:"-"`
	Latitude  decimal.Decimal `gorm:"column:latitude;type:decimal(18,15);not null" json:"latitude"`
	Longitude decimal.Decimal `gorm:"column:longitude;type:decimal(18,15);not null" json:"longitude"`
}

func (Coordinate) TableName() string { return "site_coordinates" }

// Approval is one row of the append-only site ledger.
type Approval struct {
	ID         uint64                `gorm:"primaryKey;column:id" json:"id"`
	SiteID     uint64                `gorm:"column:site_id;not null;index" json:"site_id"`
	ApprovedBy uint64                `gorm:"column:approved_by;not null" json:"approved_by"`
	Stage      workflow.Stage        `gorm:"column:stage;not null" json:"stage"`
	Remarks    string                `gorm:"column:remarks;type:text;not null" json:"remarks"`
	Status     workflow.RecordStatus `gorm:"column:status;type:enum('pending','approved','rejected');not null" json:"status"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Approval) TableName() string { return "site_approvals" }

func (*Approval) BeforeUpdate(*gorm.DB) error { return workflow.ErrLedgerImmutable }

func (*Approval) BeforeDelete(*gorm.DB) error { return workflow.ErrLedgerImmutable }

// Transition is a guarded stage change: it applies only while the row
// still holds FromStage and FromStatus.
type Transition struct {
	FromStage         workflow.Stage
	FromStatus        Status
	ToStage           workflow.Stage
	ToStatus          Status
	SubmitRemarks     *string
	AwardedInvestorID *uint64
}
