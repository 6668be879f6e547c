package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemTransaction represents one append-only ledger row recording a
// quantity movement on a request line. Rows are never updated or deleted.
type ItemTransaction struct {
	TransactionID    string          `json:"transactionID"` // Primary Key (e.g., UUID)
	RequestID        string          `json:"requestID"`     // FK -> StoreRequest.requestID (Not Null)
	ItemID           string          `json:"itemID"`        // FK -> StoreRequestItem.itemID (Not Null)
	TransactionType  string          `json:"transactionType"`
	Quantity         decimal.Decimal `json:"quantity"` // Signed delta; zero for marker rows
	PreviousQuantity decimal.Decimal `json:"previousQuantity"`
	NewQuantity      decimal.Decimal `json:"newQuantity"`
	Notes            string          `json:"notes"` // Nullable
	PerformedBy      string          `json:"performedBy"`
	PerformedAt      time.Time       `json:"performedAt"`
}
