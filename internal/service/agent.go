package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type agentService struct {
	store  repository.Store
	issuer IdentifierIssuer
}

func NewAgentService(store repository.Store, issuer IdentifierIssuer) AgentService {
	return &agentService{store: store, issuer: issuer}
}

func (s *agentService) Create(ctx context.Context, actor domain.Actor, agent *domain.Agent) error {
	agent.FirstName = strings.TrimSpace(agent.FirstName)
	agent.LastName = strings.TrimSpace(agent.LastName)
	if agent.FirstName == "" || agent.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	if agent.Status == "" {
		agent.Status = domain.AgentStatusActive
	}

	if agent.Identifier == "" {
		identifier, err := s.issuer.GenerateAgentIdentifier(ctx, time.Now())
		if err != nil {
			return err
		}
		agent.Identifier = identifier
	}

	return s.store.WithinTx(ctx, func(r repository.Repos) error {
		if err := r.Agents.Create(ctx, agent); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionCreate,
			TargetType: "agent",
			TargetID:   fmt.Sprintf("%d", agent.ID),
			Details:    map[string]string{"identifier": agent.Identifier},
			IPAddress:  actor.IPAddress,
		})
	})
}

func (s *agentService) Get(ctx context.Context, id int32) (*domain.Agent, error) {
	return s.store.Repos().Agents.GetByID(ctx, id)
}

func (s *agentService) Update(ctx context.Context, actor domain.Actor, agent *domain.Agent) error {
	return s.store.WithinTx(ctx, func(r repository.Repos) error {
		current, err := r.Agents.GetByID(ctx, agent.ID)
		if err != nil {
			return err
		}
		// The identifier is issued once and never rewritten.
		agent.Identifier = current.Identifier
		if err := r.Agents.Update(ctx, agent); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionUpdate,
			TargetType: "agent",
			TargetID:   fmt.Sprintf("%d", agent.ID),
			IPAddress:  actor.IPAddress,
		})
	})
}

func (s *agentService) List(ctx context.Context, filter repository.AgentFilter, page, pageSize int32) ([]domain.Agent, int32, error) {
	return s.store.Repos().Agents.List(ctx, filter, page, pageSize)
}
