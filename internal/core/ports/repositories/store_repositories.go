package repositories

import (
	"context"

	"github.com/mocustoms/store_transfer_app/internal/core/domain"
)

// StoreReader defines read operations for store reference data. Stores are
// externally managed; the workflow only consults eligibility flags.
type StoreReader interface {
	// FindStoreByID retrieves a specific store by its id.
	FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error)

	// ListStores retrieves all stores.
	ListStores(ctx context.Context) ([]domain.Store, error)
}

// StoreRepositoryFacade combines all store-related repository interfaces
type StoreRepositoryFacade interface {
	StoreReader
}
