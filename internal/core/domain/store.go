package domain

// Store represents a physical store location able to participate in stock
// transfers. Read-only reference data as far as the transfer workflow is
// concerned; eligibility flags are enforced before a request is created.
type Store struct {
	StoreID    string `json:"storeID"`   // Primary Key (e.g., UUID)
	StoreCode  string `json:"storeCode"` // Short unique code (e.g., "WH-01")
	Name       string `json:"name"`
	CanIssue   bool   `json:"canIssue"`   // May issue stock to other stores
	CanReceive bool   `json:"canReceive"` // May request/receive stock from other stores
	IsActive   bool   `json:"isActive"`
	AuditFields
}
