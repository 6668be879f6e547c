package domain

// Currency represents a supported currency in the domain.
// Currencies are externally owned reference data; this service never
// mutates them outside the admin endpoints.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	AuditFields
}
