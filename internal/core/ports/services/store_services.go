package services

import (
	"context"

	"github.com/mocustoms/store_transfer_app/internal/core/domain"
)

// StoreReaderSvc defines read operations over store reference data.
type StoreReaderSvc interface {
	// GetStoreByID retrieves a specific store.
	GetStoreByID(ctx context.Context, storeID string) (*domain.Store, error)

	// ListStores retrieves all stores.
	ListStores(ctx context.Context) ([]domain.Store, error)
}

// StoreSvcFacade combines store-related service interfaces and the transfer
// eligibility check run before a request is created.
type StoreSvcFacade interface {
	StoreReaderSvc

	// ValidateTransferPair checks that the requesting store may receive
	// and the issuing store may issue. Fails with ErrValidation otherwise.
	ValidateTransferPair(ctx context.Context, requestingStoreID, issuingStoreID string) error
}
