package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreRequest represents the header row of a stock transfer request.
// Status and totalValue are derived caches; the domain recomputes them on
// every mutation and the row only persists the result.
type StoreRequest struct {
	RequestID         string          `json:"requestID"`       // Primary Key (e.g., UUID)
	ReferenceNumber   string          `json:"referenceNumber"` // Unique, immutable once assigned
	RequestDate       time.Time       `json:"requestDate"`
	RequestingStoreID string          `json:"requestingStoreID"` // FK -> Store.storeID
	IssuingStoreID    string          `json:"issuingStoreID"`    // FK -> Store.storeID
	Priority          string          `json:"priority"`
	CurrencyCode      string          `json:"currencyCode"` // FK -> Currency.currencyCode
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	Status            string          `json:"status"`
	TotalItems        int             `json:"totalItems"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	MixedCurrency     bool            `json:"mixedCurrency"`
	Version           int64           `json:"version"` // Optimistic concurrency counter

	SubmittedBy        *string    `json:"submittedBy,omitempty"`
	SubmittedAt        *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy         *string    `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	RejectedBy         *string    `json:"rejectedBy,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	FulfilledAt        *time.Time `json:"fulfilledAt,omitempty"`

	AuditFields
}
