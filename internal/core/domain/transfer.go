package domain

import (
	"fmt"
	"time"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Priority orders transfer requests for the issuing side.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// RequestStatus is the header-level status of a transfer request. It is
// derived from the transition audit fields and the line quantities; the
// stored value is only a cache of DeriveRequestStatus.
type RequestStatus string

const (
	StatusDraft                      RequestStatus = "DRAFT"
	StatusSubmitted                  RequestStatus = "SUBMITTED"
	StatusApproved                   RequestStatus = "APPROVED"
	StatusRejected                   RequestStatus = "REJECTED"
	StatusPartialIssued              RequestStatus = "PARTIAL_ISSUED"
	StatusFulfilled                  RequestStatus = "FULFILLED" // Issuing complete, nothing received yet
	StatusPartiallyReceived          RequestStatus = "PARTIALLY_RECEIVED"
	StatusFullyReceived              RequestStatus = "FULLY_RECEIVED"
	StatusCancelled                  RequestStatus = "CANCELLED"
	StatusPartialIssuedCancelled     RequestStatus = "PARTIAL_ISSUED_CANCELLED"
	StatusPartiallyReceivedCancelled RequestStatus = "PARTIALLY_RECEIVED_CANCELLED"
)

// IsTerminal reports whether no further transition may leave this status.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusFullyReceived, StatusCancelled,
		StatusPartialIssuedCancelled, StatusPartiallyReceivedCancelled:
		return true
	}
	return false
}

// StoreRequest is the transfer header and the aggregate root for its items
// and their quantity ledger. Header fields are mutable only in DRAFT; after
// submission only transition metadata and approved quantity flows change.
type StoreRequest struct {
	RequestID         string          `json:"requestID"`       // Primary Key (e.g., UUID)
	ReferenceNumber   string          `json:"referenceNumber"` // Immutable once assigned
	RequestDate       time.Time       `json:"requestDate"`
	RequestingStoreID string          `json:"requestingStoreID"`
	IssuingStoreID    string          `json:"issuingStoreID"` // Must differ from requesting store
	Priority          Priority        `json:"priority"`
	CurrencyCode      string          `json:"currencyCode"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"` // Header currency -> system default
	Status            RequestStatus   `json:"status"`       // Derived; cache of DeriveRequestStatus
	TotalItems        int             `json:"totalItems"`
	TotalValue        decimal.Decimal `json:"totalValue"` // Derived, never hand-edited
	MixedCurrency     bool            `json:"mixedCurrency"`
	Version           int64           `json:"version"` // Optimistic concurrency counter

	SubmittedBy        *string    `json:"submittedBy,omitempty"`
	SubmittedAt        *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy         *string    `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	RejectedBy         *string    `json:"rejectedBy,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason    string     `json:"rejectionReason,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	FulfilledAt        *time.Time `json:"fulfilledAt,omitempty"` // First instant issuing completed

	Items  []StoreRequestItem `json:"items"`
	Ledger []ItemTransaction  `json:"ledger,omitempty"` // Populated on full reads

	AuditFields
}

// allApproved reports whether every line has an approval recorded
// (possibly at zero).
func (r *StoreRequest) allApproved() bool {
	for i := range r.Items {
		if r.Items[i].ApprovedQuantity == nil {
			return false
		}
	}
	return len(r.Items) > 0
}

// issuingComplete reports whether every line's issued counter reached its
// approved quantity.
func (r *StoreRequest) issuingComplete() bool {
	for i := range r.Items {
		if !r.Items[i].IssuedQuantity.Equal(r.Items[i].Approved()) {
			return false
		}
	}
	return true
}

// receivingComplete reports whether every line's received counter caught up
// with both its issued and approved quantities.
func (r *StoreRequest) receivingComplete() bool {
	for i := range r.Items {
		item := &r.Items[i]
		if !item.ReceivedQuantity.Equal(item.IssuedQuantity) ||
			!item.ReceivedQuantity.Equal(item.Approved()) {
			return false
		}
	}
	return true
}

func (r *StoreRequest) anyIssued() bool {
	for i := range r.Items {
		if r.Items[i].IssuedQuantity.IsPositive() {
			return true
		}
	}
	return false
}

func (r *StoreRequest) anyReceived() bool {
	for i := range r.Items {
		if r.Items[i].ReceivedQuantity.IsPositive() {
			return true
		}
	}
	return false
}

func (r *StoreRequest) totalApproved() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Items {
		total = total.Add(r.Items[i].Approved())
	}
	return total
}

// DeriveRequestStatus computes the header status from the transition audit
// fields and the line quantities. Issuing completeness and receiving
// completeness are tracked independently; the more restrictive axis wins.
func DeriveRequestStatus(r *StoreRequest) RequestStatus {
	if r.RejectedAt != nil {
		return StatusRejected
	}
	if r.CancelledAt != nil {
		switch {
		case r.anyReceived():
			return StatusPartiallyReceivedCancelled
		case r.anyIssued():
			return StatusPartialIssuedCancelled
		default:
			return StatusCancelled
		}
	}
	if r.SubmittedAt == nil {
		return StatusDraft
	}
	if !r.allApproved() {
		return StatusSubmitted
	}
	if r.totalApproved().IsZero() {
		// Every line was approved at zero: nothing may move.
		return StatusRejected
	}
	switch {
	case r.receivingComplete() && r.issuingComplete():
		return StatusFullyReceived
	case r.anyReceived():
		return StatusPartiallyReceived
	case r.issuingComplete():
		return StatusFulfilled
	case r.anyIssued():
		return StatusPartialIssued
	default:
		return StatusApproved
	}
}

// Recompute refreshes every derived field: line statuses, header status,
// item count, equivalence amounts and the header total. Called after every
// successful mutation.
func (r *StoreRequest) Recompute() {
	cancelled := r.CancelledAt != nil
	for i := range r.Items {
		item := &r.Items[i]
		item.EquivalentAmount = item.ComputeEquivalentAmount()
		item.Status = DeriveItemStatus(item, cancelled)
	}
	r.TotalItems = len(r.Items)
	r.MixedCurrency = r.hasMixedCurrencies()
	r.TotalValue = r.computeTotalValue()
	r.Status = DeriveRequestStatus(r)
}

// hasMixedCurrencies reports whether the lines use more than one currency
// among themselves. The header currency does not participate: a request
// whose lines all share a single non-header currency is not mixed.
func (r *StoreRequest) hasMixedCurrencies() bool {
	if len(r.Items) == 0 {
		return false
	}
	first := r.Items[0].CurrencyCode
	for i := 1; i < len(r.Items); i++ {
		if r.Items[i].CurrencyCode != first {
			return true
		}
	}
	return false
}

// computeTotalValue follows the accounting rule from the equivalence
// design: while all lines share one currency the total stays in that
// currency (sum of quantity x unit cost); the moment currencies mix, the
// total switches to the system default currency (sum of equivalent
// amounts). Downstream consumers rely on this rule exactly.
func (r *StoreRequest) computeTotalValue() decimal.Decimal {
	total := decimal.Zero
	if r.MixedCurrency {
		for i := range r.Items {
			total = total.Add(r.Items[i].EquivalentAmount)
		}
		return total
	}
	for i := range r.Items {
		total = total.Add(r.Items[i].RequestedQuantity.Mul(r.Items[i].UnitCost))
	}
	return total
}

// ValidateHeader checks structural header rules that hold in every state.
func (r *StoreRequest) ValidateHeader() error {
	if r.RequestingStoreID == "" || r.IssuingStoreID == "" {
		return fmt.Errorf("%w: requesting and issuing store are required", apperrors.ErrValidation)
	}
	if r.RequestingStoreID == r.IssuingStoreID {
		return fmt.Errorf("%w: requesting store must differ from issuing store", apperrors.ErrValidation)
	}
	switch r.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
	default:
		return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, r.Priority)
	}
	if r.CurrencyCode == "" {
		return fmt.Errorf("%w: currency code is required", apperrors.ErrValidation)
	}
	return nil
}

// itemByID finds a line by id, or nil.
func (r *StoreRequest) itemByID(itemID string) *StoreRequestItem {
	for i := range r.Items {
		if r.Items[i].ItemID == itemID {
			return &r.Items[i]
		}
	}
	return nil
}
