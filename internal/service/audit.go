package service

import (
	"context"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type auditService struct {
	store repository.Store
}

func NewAuditService(store repository.Store) AuditService {
	return &auditService{store: store}
}

func (s *auditService) List(ctx context.Context, filter repository.AuditFilter, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	return s.store.Repos().Audit.List(ctx, filter, page, pageSize)
}
