package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"landbank-backend/internal/domain/workflow"
)

type CreateLoanInput struct {
	SiteID        *uint64
	InvestorID    *uint64
	Principal     decimal.Decimal
	Rate          decimal.Decimal
	Purpose       string
	AgreementLink string
	Actor         workflow.Actor
}

type LoanDTO struct {
	ID             uint64          `json:"id"`
	SiteID         *uint64         `json:"site_id,omitempty"`
	InvestorID     *uint64         `json:"investor_id,omitempty"`
	UserID         uint64          `json:"user_id"`
	Principal      decimal.Decimal `json:"principal"`
	Rate           decimal.Decimal `json:"rate"`
	Purpose        string          `json:"purpose"`
	AgreementLink  string          `json:"agreement_link,omitempty"`
	Stage          workflow.Stage  `json:"stage"`
	StageLabel     string          `json:"stage_label"`
	Status         string          `json:"status"`
	StageUpdatedAt time.Time       `json:"stage_updated_at"`
	CreatedAt      time.Time       `json:"created_at"`
}
