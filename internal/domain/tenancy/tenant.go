package tenancy

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
)

// Tenant is a person renting a unit.
type Tenant struct {
	shared.BaseAggregateRoot
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	NationalID  string `json:"nationalId"`
}

func NewTenant(fullName, phoneNumber, email string) (*Tenant, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant name is required")
	}
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant phone number is required")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		PhoneNumber:       phoneNumber,
		Email:             strings.TrimSpace(email),
	}, nil
}

func (t *Tenant) GetID() uuid.UUID {
	return t.ID
}
