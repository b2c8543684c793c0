package domain

// StatusCount is one bucket of an aggregate query (count grouped by a label).
type StatusCount struct {
	Label string `json:"label"`
	Total int32  `json:"total"`
}

// Report is the read-only aggregate view consumed by reporting collaborators.
type Report struct {
	EquipmentByStatus []StatusCount `json:"equipment_by_status"`
	IncidentsByType   []StatusCount `json:"incidents_by_type"`
	IncidentsByStatus []StatusCount `json:"incidents_by_status"`
	AgentsActive      int32         `json:"agents_active"`
	AgentsInactive    int32         `json:"agents_inactive"`
}
