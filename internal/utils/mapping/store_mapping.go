package mapping

import (
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	"github.com/mocustoms/store_transfer_app/internal/models"
)

// ToModelStore converts a domain Store to a model Store
func ToModelStore(d domain.Store) models.Store {
	return models.Store{
		StoreID:     d.StoreID,
		StoreCode:   d.StoreCode,
		Name:        d.Name,
		CanIssue:    d.CanIssue,
		CanReceive:  d.CanReceive,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStore converts a model Store to a domain Store
func ToDomainStore(m models.Store) domain.Store {
	return domain.Store{
		StoreID:     m.StoreID,
		StoreCode:   m.StoreCode,
		Name:        m.Name,
		CanIssue:    m.CanIssue,
		CanReceive:  m.CanReceive,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStoreSlice converts a slice of model Stores to a slice of domain Stores
func ToDomainStoreSlice(ms []models.Store) []domain.Store {
	ds := make([]domain.Store, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStore(m)
	}
	return ds
}
