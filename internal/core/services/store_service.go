package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	portsrepo "github.com/mocustoms/store_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
)

// storeService provides read access to store reference data and the
// eligibility check run before a transfer request is created. Stores are
// mastered elsewhere; this service never writes them.
type storeService struct {
	storeRepo portsrepo.StoreRepositoryFacade
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo portsrepo.StoreRepositoryFacade) portssvc.StoreSvcFacade {
	return &storeService{storeRepo: storeRepo}
}

var _ portssvc.StoreSvcFacade = (*storeService)(nil)

func (s *storeService) GetStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	store, err := s.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store %s: %w", storeID, err)
	}
	return store, nil
}

func (s *storeService) ListStores(ctx context.Context) ([]domain.Store, error) {
	stores, err := s.storeRepo.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	if stores == nil {
		return []domain.Store{}, nil
	}
	return stores, nil
}

// ValidateTransferPair checks that both stores exist, are active, and carry
// the eligibility flag for their side of the transfer.
func (s *storeService) ValidateTransferPair(ctx context.Context, requestingStoreID, issuingStoreID string) error {
	requesting, err := s.storeRepo.FindStoreByID(ctx, requestingStoreID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: requesting store %s not found", apperrors.ErrValidation, requestingStoreID)
		}
		return fmt.Errorf("failed to validate requesting store %s: %w", requestingStoreID, err)
	}
	issuing, err := s.storeRepo.FindStoreByID(ctx, issuingStoreID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: issuing store %s not found", apperrors.ErrValidation, issuingStoreID)
		}
		return fmt.Errorf("failed to validate issuing store %s: %w", issuingStoreID, err)
	}

	if !requesting.IsActive {
		return fmt.Errorf("%w: requesting store %s is inactive", apperrors.ErrValidation, requestingStoreID)
	}
	if !issuing.IsActive {
		return fmt.Errorf("%w: issuing store %s is inactive", apperrors.ErrValidation, issuingStoreID)
	}
	if !requesting.CanReceive {
		return fmt.Errorf("%w: store %s cannot receive transfers", apperrors.ErrValidation, requestingStoreID)
	}
	if !issuing.CanIssue {
		return fmt.Errorf("%w: store %s cannot issue transfers", apperrors.ErrValidation, issuingStoreID)
	}
	return nil
}
