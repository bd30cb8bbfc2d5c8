package loan

import (
	"time"

	"landbank-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusDisbursed Status = "disbursed"
	StatusRejected  Status = "rejected"
	StatusDefaulted Status = "defaulted"
)

type Loan struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"id"`
	SiteID         *uint64         `gorm:"column:site_id;index" json:"site_id,omitempty"`
	InvestorID     *uint64         `gorm:"column:investor_id;index" json:"investor_id,omitempty"`
	UserID         uint64          `gorm:"column:user_id;not null;index" json:"user_id"`
	Principal      decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	Rate           decimal.Decimal `gorm:"column:rate;type:decimal(6,4);not null" json:"rate"`
	Purpose        string          `gorm:"column:purpose;type:text" json:"purpose"`
	AgreementLink  string          `gorm:"column:agreement_link;type:text" json:"agreement_link,omitempty"`
	Stage          workflow.Stage  `gorm:"column:stage;not null;default:1" json:"stage"`
	Status         Status          `gorm:"column:status;type:enum('draft','submitted','approved','disbursed','rejected','defaulted');default:'draft';not null" json:"status"`
	StageUpdatedAt time.Time       `gorm:"column:stage_updated_at;autoCreateTime" json:"stage_updated_at"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) State() workflow.State {
	return workflow.State{Stage: l.Stage, Rejected: l.Status == StatusRejected}
}

// Approval is one row of the append-only loan ledger.
type Approval struct {
	ID         uint64                `gorm:"primaryKey;column:id" json:"id"`
	LoanID     uint64                `gorm:"column:loan_id;not null;index" json:"loan_id"`
	ApprovedBy uint64                `gorm:"column:approved_by;not null" json:"approved_by"`
	Stage      workflow.Stage        `gorm:"column:stage;not null" json:"stage"`
	Remarks    string                `gorm:"column:remarks;type:text;not null" json:"remarks"`
	Status     workflow.RecordStatus `gorm:"column:status;type:enum('pending','approved','rejected');not null" json:"status"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Approval) TableName() string { return "loan_approvals" }

func (*Approval) BeforeUpdate(*gorm.DB) error { return workflow.ErrLedgerImmutable }

func (*Approval) BeforeDelete(*gorm.DB) error { return workflow.ErrLedgerImmutable }

type Transition struct {
	FromStage  workflow.Stage
	FromStatus Status
	ToStage    workflow.Stage
	ToStatus   Status
}
