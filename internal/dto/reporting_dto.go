package dto

import (
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's signed balance as of a reporting date.
type TrialBalanceRow struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
}

// LowStockRow flags a product at or below its minimum quantity.
type LowStockRow struct {
	ProductID       string `json:"productID"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	Reserved        int64  `json:"reserved"`
	MinimumQuantity int64  `json:"minimumQuantity"`
}

// AuditVarianceRow is one counted audit item with its variance.
type AuditVarianceRow struct {
	ProductID        string `json:"productID"`
	ExpectedQuantity int64  `json:"expectedQuantity"`
	ActualQuantity   int64  `json:"actualQuantity"`
	Variance         int64  `json:"variance"`
}
