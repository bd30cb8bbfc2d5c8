// Package portfolio is the read-only projection of sites joined with their
// landowner and reference labels.
package portfolio

import (
	"context"
	"time"

	"landbank-backend/internal/domain/workflow"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Query struct {
	Search   string
	Page     int
	PageSize int
}

// Normalize applies paging defaults and bounds.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

func (q Query) Offset() int { return (q.Page - 1) * q.PageSize }

type Row struct {
	SiteID             uint64         `gorm:"column:site_id" json:"site_id"`
	OwnerType          string         `gorm:"column:owner_type" json:"owner_type"`
	OwnerName          string         `gorm:"-" json:"owner_name"`
	CompanyName        string         `gorm:"column:company_name" json:"company_name,omitempty"`
	FirstName          string         `gorm:"column:first_name" json:"-"`
	OtherNames         string         `gorm:"column:other_names" json:"-"`
	Surname            string         `gorm:"column:surname" json:"-"`
	LandOwnerID        *uint64        `gorm:"column:landowner_id" json:"landowner_id,omitempty"`
	LandOwnerName      string         `gorm:"-" json:"landowner_name,omitempty"`
	LandOwnerCompany   string         `gorm:"column:landowner_company" json:"landowner_company,omitempty"`
	LandOwnerFirstName string         `gorm:"column:landowner_first_name" json:"-"`
	LandOwnerSurname   string         `gorm:"column:landowner_surname" json:"-"`
	Sector             string         `gorm:"column:sector" json:"sector,omitempty"`
	Activity           string         `gorm:"column:activity" json:"activity,omitempty"`
	FacilityBranch     string         `gorm:"column:facility_branch" json:"facility_branch,omitempty"`
	ProjectDescription string         `gorm:"column:project_description" json:"project_description"`
	Stage              workflow.Stage `gorm:"column:stage" json:"stage"`
	StageLabel         string         `gorm:"-" json:"stage_label"`
	Status             string         `gorm:"column:status" json:"status"`
	AwardedInvestorID  *uint64        `gorm:"column:awarded_investor_id" json:"awarded_investor_id,omitempty"`
	CreatedAt          time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

type Reader interface {
	Portfolio(ctx context.Context, q Query) ([]Row, int64, error)
}
