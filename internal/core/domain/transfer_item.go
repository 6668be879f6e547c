package domain

import (
	"fmt"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ItemStatus is the per-line status, computed solely from the quantity
// counters (and the cancellation flag of the owning request). It is never
// set directly by callers.
type ItemStatus string

const (
	ItemPending                 ItemStatus = "PENDING"
	ItemApproved                ItemStatus = "APPROVED"
	ItemRejected                ItemStatus = "REJECTED"
	ItemPartialIssued           ItemStatus = "PARTIAL_ISSUED"
	ItemIssued                  ItemStatus = "ISSUED"
	ItemPartiallyReceived       ItemStatus = "PARTIALLY_RECEIVED"
	ItemFullyReceived           ItemStatus = "FULLY_RECEIVED"
	ItemClosedPartiallyReceived ItemStatus = "CLOSED_PARTIALLY_RECEIVED"
)

// StoreRequestItem is one product line within a transfer request. Items have
// no lifecycle of their own; the owning StoreRequest is their sole container.
//
// ApprovedQuantity is a pointer so "not yet approved" is distinguishable
// from "approved at zero" (a per-line rejection).
type StoreRequestItem struct {
	ItemID            string           `json:"itemID"`    // Primary Key (e.g., UUID)
	RequestID         string           `json:"requestID"` // FK -> StoreRequest.requestID
	ProductID         string           `json:"productID"` // Opaque external product reference
	UnitCost          decimal.Decimal  `json:"unitCost"`
	CurrencyCode      string           `json:"currencyCode"` // Defaults to the header currency
	ExchangeRate      decimal.Decimal  `json:"exchangeRate"` // Line currency -> system default, resolved once per line
	EquivalentAmount  decimal.Decimal  `json:"equivalentAmount"`
	RequestedQuantity decimal.Decimal  `json:"requestedQuantity"`
	ApprovedQuantity  *decimal.Decimal `json:"approvedQuantity,omitempty"`
	IssuedQuantity    decimal.Decimal  `json:"issuedQuantity"`
	ReceivedQuantity  decimal.Decimal  `json:"receivedQuantity"`
	Status            ItemStatus       `json:"status"` // Derived; recomputed after every mutation
	AuditFields
}

// Approved returns the approved counter, zero when approval has not been
// recorded yet.
func (i *StoreRequestItem) Approved() decimal.Decimal {
	if i.ApprovedQuantity == nil {
		return decimal.Zero
	}
	return *i.ApprovedQuantity
}

// FulfilledQuantity is defined as "received" across the workflow.
func (i *StoreRequestItem) FulfilledQuantity() decimal.Decimal {
	return i.ReceivedQuantity
}

// RemainingQuantity is the approved quantity still to be issued.
func (i *StoreRequestItem) RemainingQuantity() decimal.Decimal {
	return i.Approved().Sub(i.IssuedQuantity)
}

// RemainingReceivingQuantity is the issued quantity still to be received.
func (i *StoreRequestItem) RemainingReceivingQuantity() decimal.Decimal {
	return i.IssuedQuantity.Sub(i.ReceivedQuantity)
}

// ValidateQuantities checks the ordering invariant
// 0 <= issued <= approved <= requested and 0 <= received <= issued.
func (i *StoreRequestItem) ValidateQuantities() error {
	if i.RequestedQuantity.IsNegative() {
		return fmt.Errorf("%w: item %s requested quantity %s is negative",
			apperrors.ErrQuantityInvariant, i.ItemID, i.RequestedQuantity)
	}
	approved := i.Approved()
	if approved.IsNegative() {
		return fmt.Errorf("%w: item %s approved quantity %s is negative",
			apperrors.ErrQuantityInvariant, i.ItemID, approved)
	}
	if approved.GreaterThan(i.RequestedQuantity) {
		return fmt.Errorf("%w: item %s approved %s exceeds requested %s",
			apperrors.ErrQuantityInvariant, i.ItemID, approved, i.RequestedQuantity)
	}
	if i.IssuedQuantity.IsNegative() {
		return fmt.Errorf("%w: item %s issued quantity %s is negative",
			apperrors.ErrQuantityInvariant, i.ItemID, i.IssuedQuantity)
	}
	if i.IssuedQuantity.GreaterThan(approved) {
		return fmt.Errorf("%w: item %s issued %s exceeds approved %s",
			apperrors.ErrQuantityInvariant, i.ItemID, i.IssuedQuantity, approved)
	}
	if i.ReceivedQuantity.IsNegative() {
		return fmt.Errorf("%w: item %s received quantity %s is negative",
			apperrors.ErrQuantityInvariant, i.ItemID, i.ReceivedQuantity)
	}
	if i.ReceivedQuantity.GreaterThan(i.IssuedQuantity) {
		return fmt.Errorf("%w: item %s received %s exceeds issued %s",
			apperrors.ErrQuantityInvariant, i.ItemID, i.ReceivedQuantity, i.IssuedQuantity)
	}
	return nil
}

// ComputeEquivalentAmount returns quantity x unit cost x exchange rate for
// this line, the line's value expressed in the system default currency.
// The requested quantity is the basis: downstream accounting values the
// request as asked, not as partially moved.
func (i *StoreRequestItem) ComputeEquivalentAmount() decimal.Decimal {
	return i.RequestedQuantity.Mul(i.UnitCost).Mul(i.ExchangeRate)
}

// DeriveItemStatus computes the line status from the counters. The
// cancelled flag belongs to the owning request; it turns a line whose
// receiving caught up with an incomplete issue into the terminal
// CLOSED_PARTIALLY_RECEIVED marker.
func DeriveItemStatus(item *StoreRequestItem, cancelled bool) ItemStatus {
	if item.ApprovedQuantity == nil {
		return ItemPending
	}
	approved := *item.ApprovedQuantity
	if approved.IsZero() {
		return ItemRejected
	}
	issued := item.IssuedQuantity
	received := item.ReceivedQuantity

	switch {
	case received.Equal(issued) && issued.Equal(approved):
		return ItemFullyReceived
	case cancelled && received.IsPositive() && received.Equal(issued):
		// Receiving is complete for everything that moved, but the
		// request was abandoned before issuing finished.
		return ItemClosedPartiallyReceived
	case received.IsPositive():
		return ItemPartiallyReceived
	case issued.Equal(approved):
		return ItemIssued
	case issued.IsPositive():
		return ItemPartialIssued
	default:
		return ItemApproved
	}
}
