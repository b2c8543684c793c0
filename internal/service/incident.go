package service

import (
	"context"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type incidentService struct {
	store repository.Store
}

func NewIncidentService(store repository.Store) IncidentService {
	return &incidentService{store: store}
}

// Report records the incident and moves the equipment to LOST or MAINTENANCE.
// The active assignment, if any, is left open; the unit comes back through the
// normal return flow once recovered or repaired.
func (s *incidentService) Report(ctx context.Context, actor domain.Actor, in ReportIncidentInput) (*domain.Incident, error) {
	if in.EquipmentID == 0 {
		return nil, fmt.Errorf("%w: equipment is required", domain.ErrValidation)
	}
	if !domain.ValidIncidentType(in.Type) {
		return nil, fmt.Errorf("%w: unknown incident type %q", domain.ErrValidation, in.Type)
	}

	reportedAt := time.Now()
	if in.ReportedAt != nil {
		reportedAt = *in.ReportedAt
	}

	incident := &domain.Incident{
		EquipmentID: in.EquipmentID,
		AgentID:     in.AgentID,
		ReportedBy:  actor.UserID,
		Type:        in.Type,
		Description: in.Description,
		Status:      domain.IncidentStatusOpen,
		ReportedAt:  reportedAt,
	}

	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		eq, err := r.Equipment.GetByIDForUpdate(ctx, in.EquipmentID)
		if err != nil {
			return fmt.Errorf("load equipment %d: %w", in.EquipmentID, err)
		}
		if err := r.Incidents.Create(ctx, incident); err != nil {
			return err
		}

		next, err := domain.NextStatus(eq.Status, domain.IncidentEvent(in.Type))
		if err != nil {
			return err
		}
		if err := r.Equipment.SetStatus(ctx, eq.ID, next); err != nil {
			return err
		}

		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionCreate,
			TargetType: "incident",
			TargetID:   fmt.Sprintf("%d", incident.ID),
			Details: map[string]string{
				"equipment_id":  fmt.Sprintf("%d", in.EquipmentID),
				"incident_type": string(in.Type),
			},
			IPAddress: actor.IPAddress,
		})
	})
	if err != nil {
		return nil, err
	}
	return incident, nil
}

func (s *incidentService) Close(ctx context.Context, actor domain.Actor, id int32) (*domain.Incident, error) {
	var incident *domain.Incident
	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		incident, err = r.Incidents.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if incident.Status == domain.IncidentStatusClosed {
			return domain.ErrAlreadyClosed
		}

		now := time.Now()
		if err := r.Incidents.Close(ctx, id, now); err != nil {
			return err
		}
		incident.Status = domain.IncidentStatusClosed
		incident.ClosedAt = &now

		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionClose,
			TargetType: "incident",
			TargetID:   fmt.Sprintf("%d", id),
			IPAddress:  actor.IPAddress,
		})
	})
	if err != nil {
		return nil, err
	}
	return incident, nil
}

func (s *incidentService) Get(ctx context.Context, id int32) (*domain.Incident, error) {
	return s.store.Repos().Incidents.GetByID(ctx, id)
}

func (s *incidentService) List(ctx context.Context, filter repository.IncidentFilter, page, pageSize int32) ([]domain.Incident, int32, error) {
	return s.store.Repos().Incidents.List(ctx, filter, page, pageSize)
}
