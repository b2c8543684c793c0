package service

import (
	"context"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type returnService struct {
	store repository.Store
}

func NewReturnService(store repository.Store) ReturnService {
	return &returnService{store: store}
}

func (s *returnService) Create(ctx context.Context, actor domain.Actor, in CreateReturnInput) (*domain.Return, error) {
	if in.AssignmentID == 0 {
		return nil, fmt.Errorf("%w: assignment is required", domain.ErrValidation)
	}
	if !domain.ValidCondition(in.Condition) {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, in.Condition)
	}

	returnedAt := time.Now()
	if in.ReturnedAt != nil {
		returnedAt = *in.ReturnedAt
	}

	ret := &domain.Return{
		AssignmentID:       in.AssignmentID,
		ReceivedBy:         actor.UserID,
		ReturnedAt:         returnedAt,
		Condition:          in.Condition,
		Notes:              in.Notes,
		EquipmentPhotoPath: in.EquipmentPhotoPath,
	}

	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		assignment, err := r.Assignments.GetByIDForUpdate(ctx, in.AssignmentID)
		if err != nil {
			return fmt.Errorf("load assignment %d: %w", in.AssignmentID, err)
		}
		if !assignment.IsActive {
			return domain.ErrAlreadyReturned
		}

		if err := r.Returns.Create(ctx, ret); err != nil {
			return err
		}
		if err := r.Assignments.Close(ctx, assignment.ID); err != nil {
			return err
		}

		eq, err := r.Equipment.GetByIDForUpdate(ctx, assignment.EquipmentID)
		if err != nil {
			return fmt.Errorf("load equipment %d: %w", assignment.EquipmentID, err)
		}
		next, err := domain.NextStatus(eq.Status, domain.ReturnEvent(in.Condition))
		if err != nil {
			return err
		}
		if err := r.Equipment.SetStatusAndCondition(ctx, eq.ID, next, in.Condition); err != nil {
			return err
		}

		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionCreate,
			TargetType: "return",
			TargetID:   fmt.Sprintf("%d", ret.ID),
			Details: map[string]string{
				"assignment_id": fmt.Sprintf("%d", in.AssignmentID),
				"condition":     string(in.Condition),
			},
			IPAddress: actor.IPAddress,
		})
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *returnService) List(ctx context.Context, filter repository.ReturnFilter, page, pageSize int32) ([]domain.Return, int32, error) {
	return s.store.Repos().Returns.List(ctx, filter, page, pageSize)
}
