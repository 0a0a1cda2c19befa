package dto

import (
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	OrganizationID  string             `json:"organizationID" validate:"required"`
	Code            string             `json:"code" validate:"required"` // Unique within the organization
	Name            string             `json:"name" validate:"required"`
	AccountType     domain.AccountType `json:"accountType" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
}
