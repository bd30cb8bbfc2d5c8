package interest

import (
	"context"
	"time"
)

// SiteInvestor is an investor's expression of interest in an approved site.
// InvestorID may be nil for a placeholder interest not yet tied to a
// registered investor.
type SiteInvestor struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"id"`
	UserID            uint64    `gorm:"column:user_id;not null" json:"user_id"`
	SiteID            uint64    `gorm:"column:site_id;not null;uniqueIndex:ux_site_investors_site_investor,priority:1" json:"site_id"`
	InvestorID        *uint64   `gorm:"column:investor_id;uniqueIndex:ux_site_investors_site_investor,priority:2" json:"investor_id,omitempty"`
	Description       string    `gorm:"column:description;type:text" json:"description"`
	CollateralDoc     string    `gorm:"column:collateral_doc;size:255" json:"collateral_doc,omitempty"`
	CollateralDocName string    `gorm:"column:collateral_docname;size:255" json:"collateral_docname,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SiteInvestor) TableName() string { return "site_investors" }

type Repository interface {
	Create(ctx context.Context, si *SiteInvestor) error
	ListBySiteID(ctx context.Context, siteID uint64) ([]SiteInvestor, error)
	// Exists treats a nil investor as the site's placeholder slot.
	Exists(ctx context.Context, siteID uint64, investorID *uint64) (bool, error)
	CountWithCollateral(ctx context.Context, siteID uint64) (int64, error)
}
