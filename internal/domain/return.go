package domain

import "time"

// Return closes exactly one assignment. Creating it is the sole trigger that
// flips the assignment inactive and re-routes the equipment by condition.
type Return struct {
	ID                 int32              `json:"id"`
	AssignmentID       int32              `json:"assignment_id"`
	ReceivedBy         *int32             `json:"received_by,omitempty"`
	ReturnedAt         time.Time          `json:"returned_at"`
	Condition          EquipmentCondition `json:"condition"`
	Notes              string             `json:"notes"`
	EquipmentPhotoPath string             `json:"equipment_photo_path,omitempty"`
}
