package domain

import "time"

type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "ACTIVE"
	AgentStatusInactive AgentStatus = "INACTIVE"
)

// Agent is a field worker who can hold equipment. The identifier (matricule)
// is assigned once at creation and never changes. UserID is nil for agents
// created by an operator before any account linkage.
type Agent struct {
	ID             int32       `json:"id"`
	UserID         *int32      `json:"user_id,omitempty"`
	Identifier     string      `json:"identifier"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email"`
	Address        string      `json:"address"`
	IDNumber       string      `json:"id_number"`
	IDDocumentPath string      `json:"id_document_path,omitempty"`
	ProjectType    string      `json:"project_type"`
	Status         AgentStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
