package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestStockAuditStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.StockAuditStatus
		to      domain.StockAuditStatus
		allowed bool
	}{
		{"pending to in progress", domain.AuditPending, domain.AuditInProgress, true},
		{"pending to cancelled", domain.AuditPending, domain.AuditCancelled, true},
		{"pending to completed", domain.AuditPending, domain.AuditCompleted, false},
		{"in progress to completed", domain.AuditInProgress, domain.AuditCompleted, true},
		{"in progress to cancelled", domain.AuditInProgress, domain.AuditCancelled, true},
		{"in progress to pending", domain.AuditInProgress, domain.AuditPending, false},
		{"completed is terminal", domain.AuditCompleted, domain.AuditCancelled, false},
		{"cancelled is terminal", domain.AuditCancelled, domain.AuditInProgress, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStockAuditItem_Variance(t *testing.T) {
	item := domain.StockAuditItem{ExpectedQuantity: 10}
	assert.False(t, item.Counted())
	assert.Equal(t, int64(0), item.Variance())

	actual := int64(7)
	countedAt := time.Now()
	item.ActualQuantity = &actual
	item.CountedAt = &countedAt

	assert.True(t, item.Counted())
	assert.Equal(t, int64(-3), item.Variance())

	surplus := int64(13)
	item.ActualQuantity = &surplus
	assert.Equal(t, int64(3), item.Variance())
}
