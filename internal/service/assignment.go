package service

import (
	"context"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type assignmentService struct {
	store repository.Store
}

func NewAssignmentService(store repository.Store) AssignmentService {
	return &assignmentService{store: store}
}

func (s *assignmentService) Create(ctx context.Context, actor domain.Actor, in CreateAssignmentInput) (*domain.Assignment, error) {
	if in.EquipmentID == 0 || in.AgentID == 0 {
		return nil, fmt.Errorf("%w: equipment and agent are required", domain.ErrValidation)
	}

	assignedAt := time.Now()
	if in.AssignedAt != nil {
		assignedAt = *in.AssignedAt
	}

	assignment := &domain.Assignment{
		EquipmentID:        in.EquipmentID,
		AgentID:            in.AgentID,
		AssignedBy:         actor.UserID,
		AssignedAt:         assignedAt,
		ExpectedReturnAt:   in.ExpectedReturnAt,
		SignaturePath:      in.SignaturePath,
		EquipmentPhotoPath: in.EquipmentPhotoPath,
		Notes:              in.Notes,
		IsActive:           true,
	}

	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		// Lock the equipment row so the availability check and the status
		// flip are atomic against a concurrent assignment.
		eq, err := r.Equipment.GetByIDForUpdate(ctx, in.EquipmentID)
		if err != nil {
			return fmt.Errorf("load equipment %d: %w", in.EquipmentID, err)
		}
		if _, err := r.Agents.GetByID(ctx, in.AgentID); err != nil {
			return fmt.Errorf("load agent %d: %w", in.AgentID, err)
		}

		next, err := domain.NextStatus(eq.Status, domain.EventAssign)
		if err != nil {
			return err
		}
		if err := r.Assignments.Create(ctx, assignment); err != nil {
			return err
		}
		if err := r.Equipment.SetStatus(ctx, eq.ID, next); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionCreate,
			TargetType: "assignment",
			TargetID:   fmt.Sprintf("%d", assignment.ID),
			Details: map[string]string{
				"equipment_id": fmt.Sprintf("%d", in.EquipmentID),
				"agent_id":     fmt.Sprintf("%d", in.AgentID),
			},
			IPAddress: actor.IPAddress,
		})
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Get(ctx context.Context, id int32) (*domain.Assignment, error) {
	return s.store.Repos().Assignments.GetByID(ctx, id)
}

func (s *assignmentService) List(ctx context.Context, filter repository.AssignmentFilter, page, pageSize int32) ([]domain.Assignment, int32, error) {
	return s.store.Repos().Assignments.List(ctx, filter, page, pageSize)
}
