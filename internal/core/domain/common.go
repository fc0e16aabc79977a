package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// Party identifies the external business actor (customer, vendor, ...) a
// document or entry relates to. The ledger stores it opaquely.
type Party struct {
	Type string `json:"type"` // e.g. "customer", "vendor"
	ID   string `json:"id"`
}
