// Package reference holds the leaf vocabularies a site points at.
package reference

import "context"

// Kind names a reference table.
type Kind string

const (
	Sectors           Kind = "sectors"
	Activities        Kind = "activities"
	AllocationMethods Kind = "allocation_methods"
	Jurisdictions     Kind = "jurisdictions"
	OpportunityTypes  Kind = "opportunity_types"
	Utilities         Kind = "utilities"
	FacilityBranches  Kind = "facility_branches"
	Locations         Kind = "locations"
)

type Sector struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:150;not null" json:"name"`
}

func (Sector) TableName() string { return string(Sectors) }

type Activity struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"id"`
	SectorID uint64 `gorm:"column:sector_id;not null;index" json:"sector_id"`
	Name     string `gorm:"column:name;size:150;not null" json:"name"`
}

func (Activity) TableName() string { return string(Activities) }

type AllocationMethod struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:150;not null" json:"name"`
}

func (AllocationMethod) TableName() string { return string(AllocationMethods) }

type Jurisdiction struct {
	ID         uint64  `gorm:"primaryKey;column:id" json:"id"`
	LocationID *uint64 `gorm:"column:location_id;index" json:"location_id,omitempty"`
	Name       string  `gorm:"column:name;size:150;not null" json:"name"`
}

func (Jurisdiction) TableName() string { return string(Jurisdictions) }

type OpportunityType struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:150;not null" json:"name"`
}

func (OpportunityType) TableName() string { return string(OpportunityTypes) }

type Utility struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:150;not null" json:"name"`
}

func (Utility) TableName() string { return string(Utilities) }

type FacilityBranch struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:150;not null" json:"name"`
}

func (FacilityBranch) TableName() string { return string(FacilityBranches) }

// Location is a node in the administrative hierarchy (region, district, ...).
type Location struct {
	ID       uint64  `gorm:"primaryKey;column:id" json:"id"`
	ParentID *uint64 `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Level    int     `gorm:"column:level;not null;default:0" json:"level"`
	Name     string  `gorm:"column:name;size:150;not null" json:"name"`
}

func (Location) TableName() string { return string(Locations) }

// Models lists every reference model for migrations.
func Models() []any {
	return []any{
		&Sector{}, &Activity{}, &AllocationMethod{}, &Jurisdiction{},
		&OpportunityType{}, &Utility{}, &FacilityBranch{}, &Location{},
	}
}

// Ref is an optional pointer from a site to a reference row.
type Ref struct {
	Kind  Kind
	Field string
	ID    *uint64
}

type Repository interface {
	Exists(ctx context.Context, kind Kind, id uint64) (bool, error)
}
