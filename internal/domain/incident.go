package domain

import "time"

type IncidentType string

const (
	IncidentTypeLoss      IncidentType = "LOSS"
	IncidentTypeTheft     IncidentType = "THEFT"
	IncidentTypeBreakdown IncidentType = "BREAKDOWN"
)

type IncidentStatus string

const (
	IncidentStatusOpen   IncidentStatus = "OPEN"
	IncidentStatusClosed IncidentStatus = "CLOSED"
)

type Incident struct {
	ID          int32          `json:"id"`
	EquipmentID int32          `json:"equipment_id"`
	AgentID     *int32         `json:"agent_id,omitempty"`
	ReportedBy  *int32         `json:"reported_by,omitempty"`
	Type        IncidentType   `json:"incident_type"`
	Description string         `json:"description"`
	Status      IncidentStatus `json:"status"`
	ReportedAt  time.Time      `json:"reported_at"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
}

func ValidIncidentType(t IncidentType) bool {
	switch t {
	case IncidentTypeLoss, IncidentTypeTheft, IncidentTypeBreakdown:
		return true
	}
	return false
}
