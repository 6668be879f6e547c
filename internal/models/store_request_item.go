package models

import "github.com/shopspring/decimal"

// StoreRequestItem represents a single product line within a transfer
// request. ApprovedQuantity stays NULL until the approval decision; the
// issued and received counters only move through ledger-producing
// operations.
type StoreRequestItem struct {
	ItemID            string           `json:"itemID"`    // Primary Key (e.g., UUID)
	RequestID         string           `json:"requestID"` // FK -> StoreRequest.requestID (Not Null)
	ProductID         string           `json:"productID"` // External product reference (Not Null)
	RequestedQuantity decimal.Decimal  `json:"requestedQuantity"`
	ApprovedQuantity  *decimal.Decimal `json:"approvedQuantity"` // Nullable until approval
	IssuedQuantity    decimal.Decimal  `json:"issuedQuantity"`
	ReceivedQuantity  decimal.Decimal  `json:"receivedQuantity"`
	UnitCost          decimal.Decimal  `json:"unitCost"`
	CurrencyCode      string           `json:"currencyCode"` // FK -> Currency.currencyCode
	ExchangeRate      decimal.Decimal  `json:"exchangeRate"` // Line currency -> system default
	EquivalentAmount  decimal.Decimal  `json:"equivalentAmount"`
	Status            string           `json:"status"`
	AuditFields
}
