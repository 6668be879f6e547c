package mapping

import (
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	"github.com/mocustoms/store_transfer_app/internal/models"
)

// reasonPtr stores an empty reason as NULL.
func reasonPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func reasonValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ToModelStoreRequest converts a domain StoreRequest header to its model row.
// Items and ledger entries are mapped separately.
func ToModelStoreRequest(d domain.StoreRequest) models.StoreRequest {
	return models.StoreRequest{
		RequestID:          d.RequestID,
		ReferenceNumber:    d.ReferenceNumber,
		RequestDate:        d.RequestDate,
		RequestingStoreID:  d.RequestingStoreID,
		IssuingStoreID:     d.IssuingStoreID,
		Priority:           string(d.Priority),
		CurrencyCode:       d.CurrencyCode,
		ExchangeRate:       d.ExchangeRate,
		Status:             string(d.Status),
		TotalItems:         d.TotalItems,
		TotalValue:         d.TotalValue,
		MixedCurrency:      d.MixedCurrency,
		Version:            d.Version,
		SubmittedBy:        d.SubmittedBy,
		SubmittedAt:        d.SubmittedAt,
		ApprovedBy:         d.ApprovedBy,
		ApprovedAt:         d.ApprovedAt,
		RejectedBy:         d.RejectedBy,
		RejectedAt:         d.RejectedAt,
		RejectionReason:    reasonPtr(d.RejectionReason),
		CancelledBy:        d.CancelledBy,
		CancelledAt:        d.CancelledAt,
		CancellationReason: reasonPtr(d.CancellationReason),
		FulfilledAt:        d.FulfilledAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStoreRequest converts a model StoreRequest row to a domain header.
func ToDomainStoreRequest(m models.StoreRequest) domain.StoreRequest {
	return domain.StoreRequest{
		RequestID:          m.RequestID,
		ReferenceNumber:    m.ReferenceNumber,
		RequestDate:        m.RequestDate,
		RequestingStoreID:  m.RequestingStoreID,
		IssuingStoreID:     m.IssuingStoreID,
		Priority:           domain.Priority(m.Priority),
		CurrencyCode:       m.CurrencyCode,
		ExchangeRate:       m.ExchangeRate,
		Status:             domain.RequestStatus(m.Status),
		TotalItems:         m.TotalItems,
		TotalValue:         m.TotalValue,
		MixedCurrency:      m.MixedCurrency,
		Version:            m.Version,
		SubmittedBy:        m.SubmittedBy,
		SubmittedAt:        m.SubmittedAt,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		RejectedBy:         m.RejectedBy,
		RejectedAt:         m.RejectedAt,
		RejectionReason:    reasonValue(m.RejectionReason),
		CancelledBy:        m.CancelledBy,
		CancelledAt:        m.CancelledAt,
		CancellationReason: reasonValue(m.CancellationReason),
		FulfilledAt:        m.FulfilledAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStoreRequestSlice converts model request rows to domain headers.
func ToDomainStoreRequestSlice(ms []models.StoreRequest) []domain.StoreRequest {
	ds := make([]domain.StoreRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStoreRequest(m)
	}
	return ds
}

// ToModelStoreRequestItem converts a domain item line to its model row.
func ToModelStoreRequestItem(d domain.StoreRequestItem) models.StoreRequestItem {
	return models.StoreRequestItem{
		ItemID:            d.ItemID,
		RequestID:         d.RequestID,
		ProductID:         d.ProductID,
		RequestedQuantity: d.RequestedQuantity,
		ApprovedQuantity:  d.ApprovedQuantity,
		IssuedQuantity:    d.IssuedQuantity,
		ReceivedQuantity:  d.ReceivedQuantity,
		UnitCost:          d.UnitCost,
		CurrencyCode:      d.CurrencyCode,
		ExchangeRate:      d.ExchangeRate,
		EquivalentAmount:  d.EquivalentAmount,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStoreRequestItem converts a model item row to a domain line.
func ToDomainStoreRequestItem(m models.StoreRequestItem) domain.StoreRequestItem {
	return domain.StoreRequestItem{
		ItemID:            m.ItemID,
		RequestID:         m.RequestID,
		ProductID:         m.ProductID,
		RequestedQuantity: m.RequestedQuantity,
		ApprovedQuantity:  m.ApprovedQuantity,
		IssuedQuantity:    m.IssuedQuantity,
		ReceivedQuantity:  m.ReceivedQuantity,
		UnitCost:          m.UnitCost,
		CurrencyCode:      m.CurrencyCode,
		ExchangeRate:      m.ExchangeRate,
		EquivalentAmount:  m.EquivalentAmount,
		Status:            domain.ItemStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStoreRequestItemSlice converts domain lines to model rows.
func ToModelStoreRequestItemSlice(ds []domain.StoreRequestItem) []models.StoreRequestItem {
	ms := make([]models.StoreRequestItem, len(ds))
	for i, d := range ds {
		ms[i] = ToModelStoreRequestItem(d)
	}
	return ms
}

// ToDomainStoreRequestItemSlice converts model rows to domain lines.
func ToDomainStoreRequestItemSlice(ms []models.StoreRequestItem) []domain.StoreRequestItem {
	ds := make([]domain.StoreRequestItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStoreRequestItem(m)
	}
	return ds
}

// ToModelItemTransaction converts a domain ledger entry to its model row.
func ToModelItemTransaction(d domain.ItemTransaction) models.ItemTransaction {
	return models.ItemTransaction{
		TransactionID:    d.TransactionID,
		RequestID:        d.RequestID,
		ItemID:           d.ItemID,
		TransactionType:  string(d.TransactionType),
		Quantity:         d.Quantity,
		PreviousQuantity: d.PreviousQuantity,
		NewQuantity:      d.NewQuantity,
		Notes:            d.Notes,
		PerformedBy:      d.PerformedBy,
		PerformedAt:      d.PerformedAt,
	}
}

// ToDomainItemTransaction converts a model ledger row to a domain entry.
func ToDomainItemTransaction(m models.ItemTransaction) domain.ItemTransaction {
	return domain.ItemTransaction{
		TransactionID:    m.TransactionID,
		RequestID:        m.RequestID,
		ItemID:           m.ItemID,
		TransactionType:  domain.TransactionType(m.TransactionType),
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Notes:            m.Notes,
		PerformedBy:      m.PerformedBy,
		PerformedAt:      m.PerformedAt,
	}
}

// ToModelItemTransactionSlice converts domain ledger entries to model rows.
func ToModelItemTransactionSlice(ds []domain.ItemTransaction) []models.ItemTransaction {
	ms := make([]models.ItemTransaction, len(ds))
	for i, d := range ds {
		ms[i] = ToModelItemTransaction(d)
	}
	return ms
}

// ToDomainItemTransactionSlice converts model ledger rows to domain entries.
func ToDomainItemTransactionSlice(ms []models.ItemTransaction) []domain.ItemTransaction {
	ds := make([]domain.ItemTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItemTransaction(m)
	}
	return ds
}
