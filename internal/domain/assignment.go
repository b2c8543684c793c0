package domain

import "time"

// Assignment records one equipment unit handed to one agent. At most one
// assignment per equipment may be active at a time; closing happens only
// through a Return.
type Assignment struct {
	ID                 int32      `json:"id"`
	EquipmentID        int32      `json:"equipment_id"`
	AgentID            int32      `json:"agent_id"`
	AssignedBy         *int32     `json:"assigned_by,omitempty"`
	AssignedAt         time.Time  `json:"assigned_at"`
	ExpectedReturnAt   *time.Time `json:"expected_return_at,omitempty"`
	SignaturePath      string     `json:"signature_path,omitempty"`
	EquipmentPhotoPath string     `json:"equipment_photo_path,omitempty"`
	Notes              string     `json:"notes"`
	IsActive           bool       `json:"is_active"`
}
