package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/reference"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/workflow"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type IdentitySQLite struct {
	OwnerType   string `gorm:"type:text;column:owner_type"`
	FirstName   string `gorm:"column:first_name"`
	OtherNames  string `gorm:"column:other_names"`
	Surname     string `gorm:"column:surname"`
	CompanyName string `gorm:"column:company_name"`
	Email       string `gorm:"column:email"`
	Phone       string `gorm:"column:phone"`
}

type landOwnerSQLite struct {
	ID             uint64 `gorm:"primaryKey;column:id"`
	IdentitySQLite `gorm:"embedded"`
	IDNumber       string    `gorm:"column:id_number"`
	UserID         uint64    `gorm:"column:user_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (landOwnerSQLite) TableName() string { return "land_owners" }

type investorSQLite landOwnerSQLite

func (investorSQLite) TableName() string { return "investors" }

type siteSQLite struct {
	ID                 uint64 `gorm:"primaryKey;column:id"`
	IdentitySQLite     `gorm:"embedded"`
	LandOwnerID        *uint64   `gorm:"column:landowner_id"`
	UserID             uint64    `gorm:"column:user_id"`
	SectorID           *uint64   `gorm:"column:sector_id"`
	ActivityID         *uint64   `gorm:"column:activity_id"`
	AllocationMethodID *uint64   `gorm:"column:allocationmethod_id"`
	JurisdictionID     *uint64   `gorm:"column:jurisdiction_id"`
	OpportunityTypeID  *uint64   `gorm:"column:opportunitytype_id"`
	UtilityID          *uint64   `gorm:"column:utility_id"`
	FacilityBranchID   *uint64   `gorm:"column:facilitybranch_id"`
	ProjectDescription string    `gorm:"column:project_description"`
	ApplicationForm    string    `gorm:"column:application_form"`
	Stage              int       `gorm:"column:stage;not null;default:1"`
	Status             string    `gorm:"type:text;column:status;default:'draft'"` // ← no enum
	SubmitRemarks      string    `gorm:"column:submit_remarks"`
	AwardedInvestorID  *uint64   `gorm:"column:awarded_investor_id"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (siteSQLite) TableName() string { return "sites" }

type ledgerSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	SiteID     uint64    `gorm:"column:site_id"`
	ApprovedBy uint64    `gorm:"column:approved_by"`
	Stage      int       `gorm:"column:stage"`
	Remarks    string    `gorm:"column:remarks"`
	Status     string    `gorm:"type:text;column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (ledgerSQLite) TableName() string { return "site_approvals" }

type loanSQLite struct {
	ID             uint64          `gorm:"primaryKey;column:id"`
	SiteID         *uint64         `gorm:"column:site_id"`
	InvestorID     *uint64         `gorm:"column:investor_id"`
	UserID         uint64          `gorm:"column:user_id"`
	Principal      decimal.Decimal `gorm:"column:principal;type:decimal(18,2)"`
	Rate           decimal.Decimal `gorm:"column:rate;type:decimal(6,4)"`
	Purpose        string          `gorm:"column:purpose"`
	AgreementLink  string          `gorm:"column:agreement_link"`
	Stage          int             `gorm:"column:stage;default:1"`
	Status         string          `gorm:"type:text;column:status;default:'draft'"`
	StageUpdatedAt time.Time       `gorm:"column:stage_updated_at"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type loanLedgerSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	LoanID     uint64    `gorm:"column:loan_id"`
	ApprovedBy uint64    `gorm:"column:approved_by"`
	Stage      int       `gorm:"column:stage"`
	Remarks    string    `gorm:"column:remarks"`
	Status     string    `gorm:"type:text;column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (loanLedgerSQLite) TableName() string { return "loan_approvals" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
// One connection keeps every caller on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	models := append(reference.Models(),
		&landOwnerSQLite{}, &investorSQLite{}, &siteSQLite{}, &site.Coordinate{}, &ledgerSQLite{},
		&siteInvestorSQLite{}, &loanSQLite{}, &loanLedgerSQLite{},
	)
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models with enums.
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

type siteInvestorSQLite struct {
	ID                uint64    `gorm:"primaryKey;column:id"`
	UserID            uint64    `gorm:"column:user_id"`
	SiteID            uint64    `gorm:"column:site_id;uniqueIndex:ux_si_pair,priority:1"`
	InvestorID        *uint64   `gorm:"column:investor_id;uniqueIndex:ux_si_pair,priority:2"`
	Description       string    `gorm:"column:description"`
	CollateralDoc     string    `gorm:"column:collateral_doc"`
	CollateralDocName string    `gorm:"column:collateral_docname"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (siteInvestorSQLite) TableName() string { return "site_investors" }

func makeSite(userID uint64) *site.Site {
	return &site.Site{
		Identity: party.Identity{
			OwnerType: party.OwnerIndividual,
			FirstName: "Kofi",
			Surname:   "Boateng",
		},
		UserID:             userID,
		ProjectDescription: "Cassava processing plant",
		Stage:              site.StageDraft,
		Status:             site.StatusDraft,
	}
}

func seedSite(t *testing.T, db *gorm.DB, stage workflow.Stage, status site.Status) *site.Site {
	t.Helper()
	s := makeSite(42)
	s.Stage, s.Status = stage, status
	if err := NewSiteRepository(db).Create(context.Background(), s); err != nil {
		t.Fatalf("create site: %v", err)
	}
	return s
}
