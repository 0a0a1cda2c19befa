package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry is a debit or a credit leg.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// LedgerEntry is one leg of a double-entry posting, affecting a single account.
// Entries are immutable once posted; corrections are made by posting offsetting
// entries, never by editing history.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	AccountID      string          `db:"account_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Amount         decimal.Decimal `db:"amount"` // Always positive; zero is rejected
	EntryType      EntryType       `db:"entry_type"`
	Description    string          `db:"description"`
	Reference      string          `db:"reference"` // Originating business document, nullable
	UnitOfWorkID   string          `db:"unit_of_work_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}

// SignedAmount returns the entry amount with the double-entry sign applied:
// debits are positive, credits negative. A balanced posting sums to zero.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.EntryType == Debit {
		return e.Amount
	}
	return e.Amount.Neg()
}
