package services

import (
	"context"

	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	"github.com/mocustoms/store_transfer_app/internal/dto"
)

// TransferReaderSvc defines read operations for transfer requests.
type TransferReaderSvc interface {
	// GetRequest retrieves the full aggregate including the ledger.
	GetRequest(ctx context.Context, requestID string, requestingUserID string) (*domain.StoreRequest, error)

	// ListRequests retrieves a paginated list of request headers.
	ListRequests(ctx context.Context, params dto.ListTransfersParams, requestingUserID string) (*dto.ListTransfersResponse, error)

	// ReconcileRequest replays every line's ledger against its stored
	// counters and returns the per-item result.
	ReconcileRequest(ctx context.Context, requestID string, requestingUserID string) (*dto.ReconciliationResponse, error)
}

// TransferWriterSvc defines the workflow mutations. Each call is
// all-or-nothing: on failure the aggregate and its ledger are unchanged.
type TransferWriterSvc interface {
	// CreateRequest builds a new draft aggregate from the request payload.
	CreateRequest(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.StoreRequest, error)

	// UpdateDraft replaces header fields and lines while still in DRAFT.
	UpdateDraft(ctx context.Context, requestID string, req dto.UpdateTransferRequest, userID string) (*domain.StoreRequest, error)

	// SubmitRequest moves a draft to SUBMITTED.
	SubmitRequest(ctx context.Context, requestID string, userID string) (*domain.StoreRequest, error)

	// ApproveRequest records per-line approved quantities.
	ApproveRequest(ctx context.Context, requestID string, req dto.ApproveTransferRequest, userID string) (*domain.StoreRequest, error)

	// RejectRequest terminally refuses a submitted request.
	RejectRequest(ctx context.Context, requestID string, req dto.RejectTransferRequest, userID string) (*domain.StoreRequest, error)

	// IssueRequest increases issued quantities by per-line deltas.
	IssueRequest(ctx context.Context, requestID string, req dto.IssueTransferRequest, userID string) (*domain.StoreRequest, error)

	// ReceiveRequest increases received quantities by per-line deltas.
	ReceiveRequest(ctx context.Context, requestID string, req dto.ReceiveTransferRequest, userID string) (*domain.StoreRequest, error)

	// CancelRequest abandons a request from any non-terminal state.
	CancelRequest(ctx context.Context, requestID string, req dto.CancelTransferRequest, userID string) (*domain.StoreRequest, error)
}

// TransferSvcFacade combines all transfer workflow service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}
