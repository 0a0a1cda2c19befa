package dto

import (
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryInput is one leg of a double-entry posting request.
type EntryInput struct {
	AccountID string           `json:"accountID" validate:"required"`
	Amount    decimal.Decimal  `json:"amount" validate:"required"`
	EntryType domain.EntryType `json:"entryType" validate:"required,oneof=DEBIT CREDIT"`
	Notes     string           `json:"notes"`
}

// PostEntriesRequest defines one balanced posting: the signed amounts of its
// entries must cancel to zero.
type PostEntriesRequest struct {
	OrganizationID string       `json:"organizationID" validate:"required"`
	Date           time.Time    `json:"date" validate:"required"`
	Description    string       `json:"description" validate:"required"`
	Reference      string       `json:"reference"` // Originating business document, optional
	Entries        []EntryInput `json:"entries" validate:"required,min=2,dive"`
}
