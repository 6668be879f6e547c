package domain

import (
	"fmt"
	"time"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Transition names a workflow operation on a transfer request.
type Transition string

const (
	TransitionSubmit  Transition = "SUBMIT"
	TransitionApprove Transition = "APPROVE"
	TransitionReject  Transition = "REJECT"
	TransitionIssue   Transition = "ISSUE"
	TransitionReceive Transition = "RECEIVE"
	TransitionCancel  Transition = "CANCEL"
)

// transitionTable lists the header statuses each transition may start from.
// Issuing and receiving run on parallel axes, so ISSUE stays legal while the
// header already reports PARTIALLY_RECEIVED (the receiving axis is the more
// restrictive one and masks PARTIAL_ISSUED).
var transitionTable = map[Transition][]RequestStatus{
	TransitionSubmit:  {StatusDraft},
	TransitionApprove: {StatusSubmitted},
	TransitionReject:  {StatusSubmitted},
	TransitionIssue:   {StatusApproved, StatusPartialIssued, StatusPartiallyReceived},
	TransitionReceive: {StatusPartialIssued, StatusFulfilled, StatusPartiallyReceived},
}

// CanTransition checks the transition table for the request's current
// status. CANCEL is table-free: it is legal from any non-terminal status.
func CanTransition(status RequestStatus, t Transition) error {
	if t == TransitionCancel {
		if status.IsTerminal() {
			return fmt.Errorf("%w: cannot cancel request in terminal status %s",
				apperrors.ErrInvalidTransition, status)
		}
		return nil
	}
	allowed, ok := transitionTable[t]
	if !ok {
		return fmt.Errorf("%w: unknown transition %s", apperrors.ErrInvalidTransition, t)
	}
	for _, s := range allowed {
		if s == status {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not legal from status %s",
		apperrors.ErrInvalidTransition, t, status)
}

// buildTxn snapshots a counter change as a ledger entry. TransactionID is
// minted by the service layer before persistence.
func (r *StoreRequest) buildTxn(item *StoreRequestItem, txnType TransactionType, delta, prev decimal.Decimal, actor string, now time.Time, notes string) ItemTransaction {
	return ItemTransaction{
		RequestID:        r.RequestID,
		ItemID:           item.ItemID,
		TransactionType:  txnType,
		Quantity:         delta,
		PreviousQuantity: prev,
		NewQuantity:      prev.Add(delta),
		Notes:            notes,
		PerformedBy:      actor,
		PerformedAt:      now,
	}
}

// RequestedTransactions builds the initial REQUESTED ledger entries for
// every line; appended when the draft aggregate is first persisted.
func (r *StoreRequest) RequestedTransactions(actor string, now time.Time) []ItemTransaction {
	txns := make([]ItemTransaction, 0, len(r.Items))
	for i := range r.Items {
		item := &r.Items[i]
		txns = append(txns, r.buildTxn(item, TxnRequested, item.RequestedQuantity, decimal.Zero, actor, now, ""))
	}
	return txns
}

// Submit moves the request out of DRAFT. At least one line must ask for a
// positive quantity.
func (r *StoreRequest) Submit(actor string, now time.Time) error {
	if err := CanTransition(r.Status, TransitionSubmit); err != nil {
		return err
	}
	hasQuantity := false
	for i := range r.Items {
		if r.Items[i].RequestedQuantity.IsPositive() {
			hasQuantity = true
			break
		}
	}
	if !hasQuantity {
		return fmt.Errorf("%w: request needs at least one line with a positive requested quantity",
			apperrors.ErrValidation)
	}
	r.SubmittedBy = &actor
	submittedAt := now
	r.SubmittedAt = &submittedAt
	r.Touch(actor, now)
	r.Recompute()
	return nil
}

// Approve records approved quantities for the given lines. Approval may be
// partial across calls; the header reaches APPROVED only once every line
// has an approval recorded. A zero approval is a per-line rejection.
// All deltas are validated before any line is touched, so a failure leaves
// the aggregate and ledger unchanged.
func (r *StoreRequest) Approve(approvals map[string]decimal.Decimal, actor string, now time.Time, notes string) ([]ItemTransaction, error) {
	if err := CanTransition(r.Status, TransitionApprove); err != nil {
		return nil, err
	}
	if len(approvals) == 0 {
		return nil, fmt.Errorf("%w: no approval quantities supplied", apperrors.ErrValidation)
	}
	for itemID, qty := range approvals {
		item := r.itemByID(itemID)
		if item == nil {
			return nil, fmt.Errorf("%w: unknown item %s", apperrors.ErrValidation, itemID)
		}
		if item.ApprovedQuantity != nil {
			return nil, fmt.Errorf("%w: item %s already has an approved quantity",
				apperrors.ErrInvalidTransition, itemID)
		}
		if qty.IsNegative() {
			return nil, fmt.Errorf("%w: item %s approved quantity %s is negative",
				apperrors.ErrQuantityInvariant, itemID, qty)
		}
		if qty.GreaterThan(item.RequestedQuantity) {
			return nil, fmt.Errorf("%w: item %s approved %s exceeds requested %s",
				apperrors.ErrQuantityInvariant, itemID, qty, item.RequestedQuantity)
		}
	}

	txns := make([]ItemTransaction, 0, len(approvals))
	for i := range r.Items {
		item := &r.Items[i]
		qty, ok := approvals[item.ItemID]
		if !ok {
			continue
		}
		approved := qty
		item.ApprovedQuantity = &approved
		item.Touch(actor, now)
		txns = append(txns, r.buildTxn(item, TxnApproved, qty, decimal.Zero, actor, now, notes))
	}
	if r.allApproved() {
		r.ApprovedBy = &actor
		approvedAt := now
		r.ApprovedAt = &approvedAt
	}
	r.Touch(actor, now)
	r.Recompute()
	return txns, nil
}

// Reject terminally refuses a submitted request. Quantities do not move;
// a zero-delta REJECTED marker per line keeps the decision on the ledger.
func (r *StoreRequest) Reject(reason, actor string, now time.Time) ([]ItemTransaction, error) {
	if err := CanTransition(r.Status, TransitionReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	r.RejectedBy = &actor
	rejectedAt := now
	r.RejectedAt = &rejectedAt
	r.RejectionReason = reason

	txns := make([]ItemTransaction, 0, len(r.Items))
	for i := range r.Items {
		item := &r.Items[i]
		txns = append(txns, r.buildTxn(item, TxnRejected, decimal.Zero, decimal.Zero, actor, now, reason))
	}
	r.Touch(actor, now)
	r.Recompute()
	return txns, nil
}

// Issue increases issued counters by the supplied per-line deltas, each
// bounded by the line's remaining (approved minus issued) quantity. All
// deltas are validated before any counter moves.
func (r *StoreRequest) Issue(deltas map[string]decimal.Decimal, actor string, now time.Time, notes string) ([]ItemTransaction, error) {
	if err := CanTransition(r.Status, TransitionIssue); err != nil {
		return nil, err
	}
	if len(deltas) == 0 {
		return nil, fmt.Errorf("%w: no issue quantities supplied", apperrors.ErrValidation)
	}
	for itemID, delta := range deltas {
		item := r.itemByID(itemID)
		if item == nil {
			return nil, fmt.Errorf("%w: unknown item %s", apperrors.ErrValidation, itemID)
		}
		if !delta.IsPositive() {
			return nil, fmt.Errorf("%w: item %s issue quantity %s must be positive",
				apperrors.ErrValidation, itemID, delta)
		}
		if delta.GreaterThan(item.RemainingQuantity()) {
			return nil, fmt.Errorf("%w: item %s issue of %s exceeds remaining quantity %s",
				apperrors.ErrQuantityInvariant, itemID, delta, item.RemainingQuantity())
		}
	}

	txns := make([]ItemTransaction, 0, len(deltas))
	for i := range r.Items {
		item := &r.Items[i]
		delta, ok := deltas[item.ItemID]
		if !ok {
			continue
		}
		prev := item.IssuedQuantity
		item.IssuedQuantity = prev.Add(delta)
		item.Touch(actor, now)
		txns = append(txns, r.buildTxn(item, TxnIssued, delta, prev, actor, now, notes))
	}
	if r.issuingComplete() && r.FulfilledAt == nil {
		fulfilledAt := now
		r.FulfilledAt = &fulfilledAt
	}
	r.Touch(actor, now)
	r.Recompute()
	return txns, nil
}

// Receive increases received counters by the supplied per-line deltas, each
// bounded by the line's remaining receiving (issued minus received)
// quantity.
func (r *StoreRequest) Receive(deltas map[string]decimal.Decimal, actor string, now time.Time, notes string) ([]ItemTransaction, error) {
	if err := CanTransition(r.Status, TransitionReceive); err != nil {
		return nil, err
	}
	if len(deltas) == 0 {
		return nil, fmt.Errorf("%w: no receive quantities supplied", apperrors.ErrValidation)
	}
	if !r.anyIssued() {
		return nil, fmt.Errorf("%w: nothing has been issued yet", apperrors.ErrInvalidTransition)
	}
	for itemID, delta := range deltas {
		item := r.itemByID(itemID)
		if item == nil {
			return nil, fmt.Errorf("%w: unknown item %s", apperrors.ErrValidation, itemID)
		}
		if !delta.IsPositive() {
			return nil, fmt.Errorf("%w: item %s receive quantity %s must be positive",
				apperrors.ErrValidation, itemID, delta)
		}
		if delta.GreaterThan(item.RemainingReceivingQuantity()) {
			return nil, fmt.Errorf("%w: item %s receipt of %s exceeds remaining receiving quantity %s",
				apperrors.ErrQuantityInvariant, itemID, delta, item.RemainingReceivingQuantity())
		}
	}

	txns := make([]ItemTransaction, 0, len(deltas))
	for i := range r.Items {
		item := &r.Items[i]
		delta, ok := deltas[item.ItemID]
		if !ok {
			continue
		}
		prev := item.ReceivedQuantity
		item.ReceivedQuantity = prev.Add(delta)
		item.Touch(actor, now)
		txns = append(txns, r.buildTxn(item, TxnReceived, delta, prev, actor, now, notes))
	}
	r.Touch(actor, now)
	r.Recompute()
	return txns, nil
}

// Cancel abandons the request from any non-terminal state. Quantities are
// frozen as-is: already-issued or received stock is not reverted, and the
// derived terminal status records whether stock had already moved
// (PARTIAL_ISSUED_CANCELLED vs PARTIALLY_RECEIVED_CANCELLED). Inventory
// reconciliation downstream depends on that distinction.
func (r *StoreRequest) Cancel(reason, actor string, now time.Time) error {
	if err := CanTransition(r.Status, TransitionCancel); err != nil {
		return err
	}
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}
	r.CancelledBy = &actor
	cancelledAt := now
	r.CancelledAt = &cancelledAt
	r.CancellationReason = reason
	r.Touch(actor, now)
	r.Recompute()
	return nil
}
