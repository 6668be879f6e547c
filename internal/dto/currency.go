package dto

import (
	"time"

	"github.com/mocustoms/store_transfer_app/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}

// StoreResponse defines the data returned for a store reference row.
type StoreResponse struct {
	StoreID    string `json:"storeID"`
	StoreCode  string `json:"storeCode"`
	Name       string `json:"name"`
	CanIssue   bool   `json:"canIssue"`
	CanReceive bool   `json:"canReceive"`
	IsActive   bool   `json:"isActive"`
}

// ToStoreResponse converts a domain.Store to StoreResponse DTO
func ToStoreResponse(store *domain.Store) StoreResponse {
	return StoreResponse{
		StoreID:    store.StoreID,
		StoreCode:  store.StoreCode,
		Name:       store.Name,
		CanIssue:   store.CanIssue,
		CanReceive: store.CanReceive,
		IsActive:   store.IsActive,
	}
}

// ToListStoreResponse converts a slice of domain stores to DTOs.
func ToListStoreResponse(stores []domain.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses
}
