package dto

import (
	"time"

	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferItem is one requested line in a new transfer request.
type CreateTransferItem struct {
	ProductID         string          `json:"productID" binding:"required"`
	RequestedQuantity decimal.Decimal `json:"requestedQuantity" binding:"required"`
	UnitCost          decimal.Decimal `json:"unitCost" binding:"required"`
	CurrencyCode      string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"` // Defaults to the header currency
}

// CreateTransferRequest defines the payload to create a new draft transfer.
type CreateTransferRequest struct {
	RequestingStoreID string               `json:"requestingStoreID" binding:"required"`
	IssuingStoreID    string               `json:"issuingStoreID" binding:"required"`
	RequestDate       time.Time            `json:"requestDate" binding:"required"`
	Priority          domain.Priority      `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH URGENT"`
	CurrencyCode      string               `json:"currencyCode" binding:"required,len=3,uppercase"`
	Items             []CreateTransferItem `json:"items" binding:"required,min=1,dive"`
}

// UpdateTransferRequest replaces the editable fields of a draft.
type UpdateTransferRequest struct {
	RequestDate  time.Time            `json:"requestDate" binding:"required"`
	Priority     domain.Priority      `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH URGENT"`
	CurrencyCode string               `json:"currencyCode" binding:"required,len=3,uppercase"`
	Items        []CreateTransferItem `json:"items" binding:"required,min=1,dive"`
}

// ItemQuantity carries a per-line quantity for approve, issue and
// receive payloads.
type ItemQuantity struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ApproveTransferRequest records the final approved quantity for every
// line of a submitted request. Lines may be approved at zero.
type ApproveTransferRequest struct {
	Items []ItemQuantity `json:"items" binding:"required,min=1,dive"`
	Notes string         `json:"notes"`
}

// IssueTransferRequest increases issued quantities by per-line deltas.
type IssueTransferRequest struct {
	Items []ItemQuantity `json:"items" binding:"required,min=1,dive"`
	Notes string         `json:"notes"`
}

// ReceiveTransferRequest increases received quantities by per-line deltas.
type ReceiveTransferRequest struct {
	Items []ItemQuantity `json:"items" binding:"required,min=1,dive"`
	Notes string         `json:"notes"`
}

// RejectTransferRequest refuses a submitted request.
type RejectTransferRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelTransferRequest abandons a request mid-flight.
type CancelTransferRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListTransfersParams defines filters and pagination for listing requests.
type ListTransfersParams struct {
	Status            *domain.RequestStatus `form:"status" binding:"omitempty"`
	RequestingStoreID *string               `form:"requestingStoreID" binding:"omitempty"`
	IssuingStoreID    *string               `form:"issuingStoreID" binding:"omitempty"`
	Limit             int                   `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken         string                `form:"nextToken" binding:"omitempty"`
}

// TransferItemResponse defines the data returned for one request line.
type TransferItemResponse struct {
	ItemID            string           `json:"itemID"`
	RequestID         string           `json:"requestID"`
	ProductID         string           `json:"productID"`
	RequestedQuantity decimal.Decimal  `json:"requestedQuantity"`
	ApprovedQuantity  *decimal.Decimal `json:"approvedQuantity,omitempty"`
	IssuedQuantity    decimal.Decimal  `json:"issuedQuantity"`
	ReceivedQuantity  decimal.Decimal  `json:"receivedQuantity"`
	UnitCost          decimal.Decimal  `json:"unitCost"`
	CurrencyCode      string           `json:"currencyCode"`
	ExchangeRate      decimal.Decimal  `json:"exchangeRate"`
	EquivalentAmount  decimal.Decimal  `json:"equivalentAmount"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"createdAt"`
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	TransactionID    string          `json:"transactionID"`
	RequestID        string          `json:"requestID"`
	ItemID           string          `json:"itemID"`
	TransactionType  string          `json:"transactionType"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousQuantity decimal.Decimal `json:"previousQuantity"`
	NewQuantity      decimal.Decimal `json:"newQuantity"`
	Notes            string          `json:"notes,omitempty"`
	PerformedBy      string          `json:"performedBy"`
	PerformedAt      time.Time       `json:"performedAt"`
}

// TransferResponse defines the data returned for a transfer request.
type TransferResponse struct {
	RequestID         string                 `json:"requestID"`
	ReferenceNumber   string                 `json:"referenceNumber"`
	RequestDate       time.Time              `json:"requestDate"`
	RequestingStoreID string                 `json:"requestingStoreID"`
	IssuingStoreID    string                 `json:"issuingStoreID"`
	Priority          domain.Priority        `json:"priority"`
	CurrencyCode      string                 `json:"currencyCode"`
	ExchangeRate      decimal.Decimal        `json:"exchangeRate"`
	Status            domain.RequestStatus   `json:"status"`
	TotalItems        int                    `json:"totalItems"`
	TotalValue        decimal.Decimal        `json:"totalValue"`
	MixedCurrency     bool                   `json:"mixedCurrency"`
	Version           int64                  `json:"version"`
	SubmittedBy       *string                `json:"submittedBy,omitempty"`
	SubmittedAt       *time.Time             `json:"submittedAt,omitempty"`
	ApprovedBy        *string                `json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time             `json:"approvedAt,omitempty"`
	RejectedBy        *string                `json:"rejectedBy,omitempty"`
	RejectedAt        *time.Time             `json:"rejectedAt,omitempty"`
	RejectionReason   string                 `json:"rejectionReason,omitempty"`
	CancelledBy       *string                `json:"cancelledBy,omitempty"`
	CancelledAt       *time.Time             `json:"cancelledAt,omitempty"`
	CancellationReason string                `json:"cancellationReason,omitempty"`
	FulfilledAt       *time.Time             `json:"fulfilledAt,omitempty"`
	Items             []TransferItemResponse `json:"items,omitempty"`
	Ledger            []LedgerEntryResponse  `json:"ledger,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	CreatedBy         string                 `json:"createdBy"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy     string                 `json:"lastUpdatedBy"`
}

// ListTransfersResponse defines a page of request headers.
type ListTransfersResponse struct {
	Requests  []TransferResponse `json:"requests"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ItemReconciliation defines the replay result for one request line.
type ItemReconciliation struct {
	ItemID           string           `json:"itemID"`
	Consistent       bool             `json:"consistent"`
	Detail           string           `json:"detail,omitempty"`
	StoredApproved   *decimal.Decimal `json:"storedApproved,omitempty"`
	StoredIssued     decimal.Decimal  `json:"storedIssued"`
	StoredReceived   decimal.Decimal  `json:"storedReceived"`
	ReplayedApproved decimal.Decimal  `json:"replayedApproved"`
	ReplayedIssued   decimal.Decimal  `json:"replayedIssued"`
	ReplayedReceived decimal.Decimal  `json:"replayedReceived"`
}

// ReconciliationResponse defines the ledger replay result for a request.
type ReconciliationResponse struct {
	RequestID  string               `json:"requestID"`
	Consistent bool                 `json:"consistent"`
	Items      []ItemReconciliation `json:"items"`
}

// ToTransferItemResponse converts a domain line to its DTO.
func ToTransferItemResponse(item *domain.StoreRequestItem) TransferItemResponse {
	return TransferItemResponse{
		ItemID:            item.ItemID,
		RequestID:         item.RequestID,
		ProductID:         item.ProductID,
		RequestedQuantity: item.RequestedQuantity,
		ApprovedQuantity:  item.ApprovedQuantity,
		IssuedQuantity:    item.IssuedQuantity,
		ReceivedQuantity:  item.ReceivedQuantity,
		UnitCost:          item.UnitCost,
		CurrencyCode:      item.CurrencyCode,
		ExchangeRate:      item.ExchangeRate,
		EquivalentAmount:  item.EquivalentAmount,
		Status:            string(item.Status),
		CreatedAt:         item.CreatedAt,
		LastUpdatedAt:     item.LastUpdatedAt,
	}
}

// ToLedgerEntryResponse converts a domain ledger entry to its DTO.
func ToLedgerEntryResponse(txn *domain.ItemTransaction) LedgerEntryResponse {
	return LedgerEntryResponse{
		TransactionID:    txn.TransactionID,
		RequestID:        txn.RequestID,
		ItemID:           txn.ItemID,
		TransactionType:  string(txn.TransactionType),
		Quantity:         txn.Quantity,
		PreviousQuantity: txn.PreviousQuantity,
		NewQuantity:      txn.NewQuantity,
		Notes:            txn.Notes,
		PerformedBy:      txn.PerformedBy,
		PerformedAt:      txn.PerformedAt,
	}
}

// ToTransferResponse converts a domain.StoreRequest to TransferResponse DTO
func ToTransferResponse(req *domain.StoreRequest) TransferResponse {
	resp := TransferResponse{
		RequestID:          req.RequestID,
		ReferenceNumber:    req.ReferenceNumber,
		RequestDate:        req.RequestDate,
		RequestingStoreID:  req.RequestingStoreID,
		IssuingStoreID:     req.IssuingStoreID,
		Priority:           req.Priority,
		CurrencyCode:       req.CurrencyCode,
		ExchangeRate:       req.ExchangeRate,
		Status:             req.Status,
		TotalItems:         req.TotalItems,
		TotalValue:         req.TotalValue,
		MixedCurrency:      req.MixedCurrency,
		Version:            req.Version,
		SubmittedBy:        req.SubmittedBy,
		SubmittedAt:        req.SubmittedAt,
		ApprovedBy:         req.ApprovedBy,
		ApprovedAt:         req.ApprovedAt,
		RejectedBy:         req.RejectedBy,
		RejectedAt:         req.RejectedAt,
		RejectionReason:    req.RejectionReason,
		CancelledBy:        req.CancelledBy,
		CancelledAt:        req.CancelledAt,
		CancellationReason: req.CancellationReason,
		FulfilledAt:        req.FulfilledAt,
		CreatedAt:          req.CreatedAt,
		CreatedBy:          req.CreatedBy,
		LastUpdatedAt:      req.LastUpdatedAt,
		LastUpdatedBy:      req.LastUpdatedBy,
	}
	if len(req.Items) > 0 {
		resp.Items = make([]TransferItemResponse, len(req.Items))
		for i := range req.Items {
			resp.Items[i] = ToTransferItemResponse(&req.Items[i])
		}
	}
	if len(req.Ledger) > 0 {
		resp.Ledger = make([]LedgerEntryResponse, len(req.Ledger))
		for i := range req.Ledger {
			resp.Ledger[i] = ToLedgerEntryResponse(&req.Ledger[i])
		}
	}
	return resp
}

// ToListTransfersResponse converts a page of domain requests to DTOs.
func ToListTransfersResponse(requests []domain.StoreRequest, nextToken *string) ListTransfersResponse {
	responses := make([]TransferResponse, len(requests))
	for i := range requests {
		responses[i] = ToTransferResponse(&requests[i])
	}
	return ListTransfersResponse{Requests: responses, NextToken: nextToken}
}
