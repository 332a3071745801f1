package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
)

// TenantModel is the persistence model for the Tenant aggregate.
type TenantModel struct {
	AggregateModel
	FullName    string `gorm:"type:varchar(255);not null"`
	PhoneNumber string `gorm:"type:varchar(30);index"`
	Email       string `gorm:"type:varchar(255)"`
	NationalID  string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant aggregate.
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		FullName:          m.FullName,
		PhoneNumber:       m.PhoneNumber,
		Email:             m.Email,
		NationalID:        m.NationalID,
	}
}

// FromDomain populates the persistence model from a domain Tenant aggregate.
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.FullName = t.FullName
	m.PhoneNumber = t.PhoneNumber
	m.Email = t.Email
	m.NationalID = t.NationalID
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// LeaseModel is the persistence model for the LeaseAgreement aggregate.
type LeaseModel struct {
	AggregateModel
	TenantID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	UnitID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Rent      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	StartDate time.Time           `gorm:"not null"`
	EndDate   *time.Time          ``
	Status    tenancy.LeaseStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "lease_agreements"
}

// ToDomain converts the persistence model to a domain LeaseAgreement aggregate.
func (m *LeaseModel) ToDomain() *tenancy.LeaseAgreement {
	return &tenancy.LeaseAgreement{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		TenantID:          m.TenantID,
		UnitID:            m.UnitID,
		Rent:              valueobject.NewMoneyKES(m.Rent),
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain LeaseAgreement aggregate.
func (m *LeaseModel) FromDomain(l *tenancy.LeaseAgreement) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.TenantID = l.TenantID
	m.UnitID = l.UnitID
	m.Rent = l.Rent.Amount()
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.Status = l.Status
}

// LeaseModelFromDomain creates a new persistence model from a domain LeaseAgreement.
func LeaseModelFromDomain(l *tenancy.LeaseAgreement) *LeaseModel {
	m := &LeaseModel{}
	m.FromDomain(l)
	return m
}
