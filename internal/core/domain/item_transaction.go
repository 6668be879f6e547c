package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names the quantity counter a ledger entry affects.
type TransactionType string

const (
	TxnRequested TransactionType = "REQUESTED"
	TxnApproved  TransactionType = "APPROVED"
	TxnIssued    TransactionType = "ISSUED"
	TxnReceived  TransactionType = "RECEIVED"
	TxnFulfilled TransactionType = "FULFILLED"
	TxnRejected  TransactionType = "REJECTED"
)

// ItemTransaction is one immutable entry in the per-line quantity ledger.
// Quantity is the signed delta applied to the counter named by
// TransactionType; PreviousQuantity/NewQuantity snapshot that counter
// around the change. History is never rewritten: corrections are appended
// as inverse-delta entries.
type ItemTransaction struct {
	TransactionID    string          `json:"transactionID"` // Primary Key (e.g., UUID)
	RequestID        string          `json:"requestID"`     // FK -> StoreRequest.requestID
	ItemID           string          `json:"itemID"`        // FK -> StoreRequestItem.itemID
	TransactionType  TransactionType `json:"transactionType"`
	Quantity         decimal.Decimal `json:"quantity"` // Signed delta
	PreviousQuantity decimal.Decimal `json:"previousQuantity"`
	NewQuantity      decimal.Decimal `json:"newQuantity"`
	Notes            string          `json:"notes"`
	PerformedBy      string          `json:"performedBy"` // UserID reference
	PerformedAt      time.Time       `json:"performedAt"`
}

// FoldedQuantities holds the counters reproduced by replaying a line's
// ledger from empty state.
type FoldedQuantities struct {
	Requested decimal.Decimal
	Approved  decimal.Decimal
	Issued    decimal.Decimal
	Received  decimal.Decimal
}

// FoldTransactions replays ledger entries in insertion order and sums the
// deltas per counter. REJECTED and FULFILLED entries are audit markers and
// carry no counter of their own (fulfilled is defined as received).
func FoldTransactions(txns []ItemTransaction) FoldedQuantities {
	folded := FoldedQuantities{
		Requested: decimal.Zero,
		Approved:  decimal.Zero,
		Issued:    decimal.Zero,
		Received:  decimal.Zero,
	}
	for _, txn := range txns {
		switch txn.TransactionType {
		case TxnRequested:
			folded.Requested = folded.Requested.Add(txn.Quantity)
		case TxnApproved:
			folded.Approved = folded.Approved.Add(txn.Quantity)
		case TxnIssued:
			folded.Issued = folded.Issued.Add(txn.Quantity)
		case TxnReceived:
			folded.Received = folded.Received.Add(txn.Quantity)
		}
	}
	return folded
}

// ReconcileItem checks that folding the ledger reproduces the item's stored
// counters exactly. This is the core consistency invariant of the subsystem
// and doubles as a production drift detector.
func ReconcileItem(item StoreRequestItem, txns []ItemTransaction) error {
	folded := FoldTransactions(txns)
	if !folded.Requested.Equal(item.RequestedQuantity) {
		return fmt.Errorf("item %s: ledger requested %s != stored %s",
			item.ItemID, folded.Requested, item.RequestedQuantity)
	}
	if !folded.Approved.Equal(item.Approved()) {
		return fmt.Errorf("item %s: ledger approved %s != stored %s",
			item.ItemID, folded.Approved, item.Approved())
	}
	if !folded.Issued.Equal(item.IssuedQuantity) {
		return fmt.Errorf("item %s: ledger issued %s != stored %s",
			item.ItemID, folded.Issued, item.IssuedQuantity)
	}
	if !folded.Received.Equal(item.ReceivedQuantity) {
		return fmt.Errorf("item %s: ledger received %s != stored %s",
			item.ItemID, folded.Received, item.ReceivedQuantity)
	}
	return nil
}
