package domain

import "time"

// Audit actions recorded against every mutating operation.
const (
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionClose    = "CLOSE"
	AuditActionRetire   = "RETIRE"
	AuditActionRegister = "REGISTER"
	AuditActionLogin    = "LOGIN"
)

// AuditLog is an append-only record of who did what to which record. Entries
// are never updated or deleted.
type AuditLog struct {
	ID         int64             `json:"id"`
	UserID     *int32            `json:"user_id,omitempty"`
	Action     string            `json:"action"`
	TargetType string            `json:"target_type"`
	TargetID   string            `json:"target_id"`
	Details    map[string]string `json:"details,omitempty"`
	IPAddress  string            `json:"ip_address,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Actor identifies who performs a workflow operation. It is passed explicitly
// into every service call so the core stays transport-agnostic.
type Actor struct {
	UserID    *int32
	Role      UserRole
	IPAddress string
}
