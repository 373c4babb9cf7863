// Package guest provides the guest and corporate account catalogs used to
// resolve the display name on invoices.
package guest

import (
	"context"
	"strings"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
)

// Guest is an individual registered at the front desk.
type Guest struct {
	ID             id.ID  `db:"id" json:"id"`
	FirstName      string `db:"first_name" json:"firstName"`
	LastName       string `db:"last_name" json:"lastName"`
	DocumentType   string `db:"document_type" json:"documentType"`
	DocumentNumber string `db:"document_number" json:"documentNumber"`
	Email          string `db:"email" json:"email,omitempty"`
	Phone          string `db:"phone" json:"phone,omitempty"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewGuest creates a guest record.
func NewGuest(firstName, lastName, docType, docNumber string) *Guest {
	now := time.Now().UTC()
	return &Guest{
		ID:             id.New(),
		FirstName:      firstName,
		LastName:       lastName,
		DocumentType:   docType,
		DocumentNumber: docNumber,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// DisplayName renders "First Last" for invoices.
func (g *Guest) DisplayName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// Validate implements entity self-validation.
func (g *Guest) Validate(ctx context.Context) error {
	if g.FirstName == "" || g.LastName == "" {
		return apperror.NewValidation("guest first and last name are required").
			WithDetail("field", "name")
	}
	if g.DocumentNumber == "" {
		return apperror.NewValidation("document number is required").
			WithDetail("field", "documentNumber")
	}
	return nil
}

// CorporateAccount is a company billed for its employees' stays.
type CorporateAccount struct {
	ID     id.ID  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	TaxID  string `db:"tax_id" json:"taxId"`
	Email  string `db:"email" json:"email,omitempty"`
	Active bool   `db:"active" json:"active"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCorporateAccount creates a corporate account record.
func NewCorporateAccount(name, taxID string) *CorporateAccount {
	now := time.Now().UTC()
	return &CorporateAccount{
		ID:        id.New(),
		Name:      name,
		TaxID:     taxID,
		Active:    true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements entity self-validation.
func (c *CorporateAccount) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("company name is required").
			WithDetail("field", "name")
	}
	return nil
}
