package domain_test

import (
	"testing"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250)

	debit := domain.LedgerEntry{Amount: amount, EntryType: domain.Debit}
	credit := domain.LedgerEntry{Amount: amount, EntryType: domain.Credit}

	assert.True(t, debit.SignedAmount().Equal(amount))
	assert.True(t, credit.SignedAmount().Equal(amount.Neg()))
	assert.True(t, debit.SignedAmount().Add(credit.SignedAmount()).IsZero())
}

func TestStockLevel_Available(t *testing.T) {
	level := domain.StockLevel{Quantity: 10, Reserved: 4}
	assert.Equal(t, int64(6), level.Available())

	level.Reserved = 10
	assert.Equal(t, int64(0), level.Available())
}
