package party

import (
	"errors"
	"testing"

	"landbank-backend/pkg/apperror"
)

func TestIdentity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Identity
		wantErr bool
	}{
		{"individual ok", Identity{OwnerType: OwnerIndividual, FirstName: "Ama", Surname: "Mensah"}, false},
		{"individual missing surname", Identity{OwnerType: OwnerIndividual, FirstName: "Ama"}, true},
		{"individual blank first name", Identity{OwnerType: OwnerIndividual, FirstName: "  ", Surname: "Mensah"}, true},
		{"company ok", Identity{OwnerType: OwnerCompany, CompanyName: "Acme Farms Ltd"}, false},
		{"company missing name", Identity{OwnerType: OwnerCompany, FirstName: "Ama", Surname: "Mensah"}, true},
		{"unknown type", Identity{OwnerType: "trust", CompanyName: "X"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	ind := Identity{OwnerType: OwnerIndividual, FirstName: "Ama", OtherNames: " ", Surname: "Mensah"}
	if got := ind.DisplayName(); got != "Ama Mensah" {
		t.Fatalf("individual name = %q", got)
	}
	co := Identity{OwnerType: OwnerCompany, CompanyName: " Acme Farms Ltd ", FirstName: "ignored"}
	if got := co.DisplayName(); got != "Acme Farms Ltd" {
		t.Fatalf("company name = %q", got)
	}
}
