package models

// Store represents a physical or logical stock location that can take part
// in transfers.
type Store struct {
	StoreID    string `json:"storeID"`   // Primary Key (e.g., UUID)
	StoreCode  string `json:"storeCode"` // Short unique code (e.g., "WH-01")
	Name       string `json:"name"`
	CanIssue   bool   `json:"canIssue"`   // May act as the issuing side
	CanReceive bool   `json:"canReceive"` // May act as the requesting side
	IsActive   bool   `json:"isActive"`
	AuditFields
}
