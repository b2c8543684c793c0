package domain

import "time"

type EquipmentType string

const (
	EquipmentTypeTablet    EquipmentType = "TABLET"
	EquipmentTypeCharger   EquipmentType = "CHARGER"
	EquipmentTypePowerbank EquipmentType = "POWERBANK"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusAssigned    EquipmentStatus = "ASSIGNED"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentStatusLost        EquipmentStatus = "LOST"
	EquipmentStatusRetired     EquipmentStatus = "RETIRED"
)

type EquipmentCondition string

const (
	ConditionGood        EquipmentCondition = "GOOD"
	ConditionDamaged     EquipmentCondition = "DAMAGED"
	ConditionNeedsRepair EquipmentCondition = "NEEDS_REPAIR"
)

type Equipment struct {
	ID           int32              `json:"id"`
	Type         EquipmentType      `json:"type"`
	SerialNumber string             `json:"serial_number"`
	IMEI         *string            `json:"imei,omitempty"`
	Status       EquipmentStatus    `json:"status"`
	Condition    EquipmentCondition `json:"condition"`
	QRCodePath   string             `json:"qr_code_path,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// EquipmentEvent is a workflow event that may move equipment between statuses.
type EquipmentEvent string

const (
	EventAssign          EquipmentEvent = "ASSIGN"
	EventReturnGood      EquipmentEvent = "RETURN_GOOD"
	EventReturnDefective EquipmentEvent = "RETURN_DEFECTIVE"
	EventReportLoss      EquipmentEvent = "REPORT_LOSS"
	EventReportBreakdown EquipmentEvent = "REPORT_BREAKDOWN"
	EventRetire          EquipmentEvent = "RETIRE"
)

// ReturnEvent maps the condition recorded at hand-back to the workflow event
// deciding whether the unit re-enters the available pool.
func ReturnEvent(cond EquipmentCondition) EquipmentEvent {
	if cond == ConditionGood {
		return EventReturnGood
	}
	return EventReturnDefective
}

// IncidentEvent maps an incident type to the workflow event applied to the
// affected equipment.
func IncidentEvent(t IncidentType) EquipmentEvent {
	if t == IncidentTypeBreakdown {
		return EventReportBreakdown
	}
	return EventReportLoss
}

// NextStatus is the equipment state machine as a pure decision function. Only
// assignment is guarded by the current status; returns, incidents and retirement
// overwrite whatever status the unit holds (last write wins between racing
// workflows, by contract). Callers persist the result inside their own
// transaction boundary.
func NextStatus(current EquipmentStatus, ev EquipmentEvent) (EquipmentStatus, error) {
	switch ev {
	case EventAssign:
		if current != EquipmentStatusAvailable {
			return current, ErrInvalidTransition
		}
		return EquipmentStatusAssigned, nil
	case EventReturnGood:
		return EquipmentStatusAvailable, nil
	case EventReturnDefective:
		return EquipmentStatusMaintenance, nil
	case EventReportLoss:
		return EquipmentStatusLost, nil
	case EventReportBreakdown:
		return EquipmentStatusMaintenance, nil
	case EventRetire:
		return EquipmentStatusRetired, nil
	}
	return current, ErrInvalidTransition
}

func ValidEquipmentType(t EquipmentType) bool {
	switch t {
	case EquipmentTypeTablet, EquipmentTypeCharger, EquipmentTypePowerbank:
		return true
	}
	return false
}

func ValidCondition(c EquipmentCondition) bool {
	switch c {
	case ConditionGood, ConditionDamaged, ConditionNeedsRepair:
		return true
	}
	return false
}
