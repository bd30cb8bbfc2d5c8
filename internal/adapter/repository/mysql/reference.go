package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"landbank-backend/internal/domain/reference"
)

type ReferenceRepository struct{ db *gorm.DB }

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository { return &ReferenceRepository{db: db} }

func (r *ReferenceRepository) Exists(ctx context.Context, kind reference.Kind, id uint64) (bool, error) {
	if !knownKind(kind) {
		return false, fmt.Errorf("unknown reference table %q", kind)
	}
	var n int64
	err := r.db.WithContext(ctx).Table(string(kind)).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func knownKind(k reference.Kind) bool {
	switch k {
	case reference.Sectors, reference.Activities, reference.AllocationMethods, reference.Jurisdictions,
		reference.OpportunityTypes, reference.Utilities, reference.FacilityBranches, reference.Locations:
		return true
	}
	return false
}

// Seed inserts the default vocabulary; rows whose id already exists are left alone.
func (r *ReferenceRepository) Seed(ctx context.Context) error {
	rows := []any{
		&[]reference.Location{
			{ID: 1, Name: "Greater Accra", Level: 0},
			{ID: 2, Name: "Accra Metropolitan", ParentID: ptr(uint64(1)), Level: 1},
			{ID: 3, Name: "Tema Metropolitan", ParentID: ptr(uint64(1)), Level: 1},
		},
		&[]reference.Sector{{ID: 1, Name: "Agriculture"}, {ID: 2, Name: "Industry"}, {ID: 3, Name: "Tourism"}},
		&[]reference.Activity{
			{ID: 1, SectorID: 1, Name: "Crop farming"},
			{ID: 2, SectorID: 1, Name: "Livestock"},
			{ID: 3, SectorID: 2, Name: "Light manufacturing"},
			{ID: 4, SectorID: 3, Name: "Hospitality"},
		},
		&[]reference.AllocationMethod{{ID: 1, Name: "Lease"}, {ID: 2, Name: "Joint venture"}, {ID: 3, Name: "Outright sale"}},
		&[]reference.Jurisdiction{{ID: 1, Name: "Accra", LocationID: ptr(uint64(2))}, {ID: 2, Name: "Tema", LocationID: ptr(uint64(3))}},
		&[]reference.OpportunityType{{ID: 1, Name: "Greenfield"}, {ID: 2, Name: "Brownfield"}},
		&[]reference.Utility{{ID: 1, Name: "Electricity"}, {ID: 2, Name: "Water"}, {ID: 3, Name: "Road access"}},
		&[]reference.FacilityBranch{{ID: 1, Name: "Head office"}, {ID: 2, Name: "Northern branch"}},
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range rows {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func ptr[T any](v T) *T { return &v }
