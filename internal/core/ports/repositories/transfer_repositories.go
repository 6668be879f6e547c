package repositories

import (
	"context"

	"github.com/mocustoms/store_transfer_app/internal/core/domain"
)

// ListRequestsFilter narrows a transfer request listing.
type ListRequestsFilter struct {
	Status            *domain.RequestStatus
	RequestingStoreID *string
	IssuingStoreID    *string
}

// TransferReader defines read operations for transfer request aggregates.
type TransferReader interface {
	// FindRequestByID retrieves the header and its items (not the ledger).
	FindRequestByID(ctx context.Context, requestID string) (*domain.StoreRequest, error)

	// ListRequests retrieves a paginated list of request headers using
	// token-based pagination. It returns the requests, a token for the
	// next page, and an error.
	ListRequests(ctx context.Context, filter ListRequestsFilter, limit int, nextToken *string) ([]domain.StoreRequest, *string, error)
}

// LedgerReader defines read operations for the quantity ledger.
type LedgerReader interface {
	// FindTransactionsByRequestID retrieves all ledger entries for a
	// request in insertion order.
	FindTransactionsByRequestID(ctx context.Context, requestID string) ([]domain.ItemTransaction, error)
}

// TransferWriter defines write operations for transfer request aggregates.
// Every write persists the header, its items and any new ledger entries in
// one database transaction; a failed call leaves nothing behind.
type TransferWriter interface {
	// CreateRequest persists a new draft aggregate with its initial
	// REQUESTED ledger entries.
	CreateRequest(ctx context.Context, request domain.StoreRequest, txns []domain.ItemTransaction) error

	// SaveRequest persists a mutated aggregate plus the ledger entries the
	// mutation produced. expectedVersion is the version the aggregate was
	// loaded at; a mismatch fails with ErrConcurrentModification and
	// writes nothing.
	SaveRequest(ctx context.Context, request domain.StoreRequest, newTxns []domain.ItemTransaction, expectedVersion int64) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	LedgerReader
	TransferWriter
}

// TransferRepositoryWithTx extends TransferRepositoryFacade with transaction capabilities
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
