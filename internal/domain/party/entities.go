package party

import (
	"strings"
	"time"

	"landbank-backend/pkg/apperror"
)

type OwnerType string

const (
	OwnerIndividual OwnerType = "individual"
	OwnerCompany    OwnerType = "company"
)

// Identity is the individual/company discriminated block shared by
// landowners, investors and the owner fields on a site.
type Identity struct {
	OwnerType   OwnerType `gorm:"column:owner_type;type:enum('individual','company');not null" json:"owner_type"`
	FirstName   string    `gorm:"column:first_name;size:100" json:"first_name,omitempty"`
	OtherNames  string    `gorm:"column:other_names;size:150" json:"other_names,omitempty"`
	Surname     string    `gorm:"column:surname;size:100" json:"surname,omitempty"`
	CompanyName string    `gorm:"column:company_name;size:255" json:"company_name,omitempty"`
	Email       string    `gorm:"column:email;size:150" json:"email,omitempty"`
	Phone       string    `gorm:"column:phone;size:30" json:"phone,omitempty"`
}

// Validate enforces the discriminator: individuals need first name and
// surname, companies need a company name.
func (i Identity) Validate() error {
	switch i.OwnerType {
	case OwnerIndividual:
		if strings.TrimSpace(i.FirstName) == "" || strings.TrimSpace(i.Surname) == "" {
			return apperror.Clone(apperror.ErrValidation, "first_name and surname are required for individual owners")
		}
	case OwnerCompany:
		if strings.TrimSpace(i.CompanyName) == "" {
			return apperror.Clone(apperror.ErrValidation, "company_name is required for company owners")
		}
	default:
		return apperror.Clone(apperror.ErrValidation, "owner_type must be individual or company")
	}
	return nil
}

// DisplayName is the name shown in listings and exports.
func (i Identity) DisplayName() string {
	if i.OwnerType == OwnerCompany {
		return strings.TrimSpace(i.CompanyName)
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{i.FirstName, i.OtherNames, i.Surname} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type LandOwner struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"id"`

	Identity `gorm:"embedded"`

	IDNumber  string    `gorm:"column:id_number;size:50" json:"id_number,omitempty"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LandOwner) TableName() string { return "land_owners" }

type Investor struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"id"`

	Identity `gorm:"embedded"`

	IDNumber  string    `gorm:"column:id_number;size:50" json:"id_number,omitempty"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Investor) TableName() string { return "investors" }
