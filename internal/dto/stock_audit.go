package dto

import "time"

// CreateAuditRequest defines the data needed to schedule a stock audit.
type CreateAuditRequest struct {
	OrganizationID string    `json:"organizationID" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	ScheduledDate  time.Time `json:"scheduledDate" validate:"required"`
	Notes          string    `json:"notes"`
}

// AuditSummary describes the outcome of a completed audit.
type AuditSummary struct {
	AuditID       string `json:"auditID"`
	TotalItems    int    `json:"totalItems"`
	VarianceItems int    `json:"varianceItems"`
	TotalVariance int64  `json:"totalVariance"`
}
