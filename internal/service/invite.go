package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type inviteService struct {
	store      repository.Store
	issuer     IdentifierIssuer
	email      EmailService
	baseURL    string
	defaultTTL time.Duration
}

func NewInviteService(store repository.Store, issuer IdentifierIssuer, email EmailService, baseURL string, defaultTTL time.Duration) InviteService {
	if defaultTTL <= 0 {
		defaultTTL = 7 * 24 * time.Hour
	}
	return &inviteService{
		store:      store,
		issuer:     issuer,
		email:      email,
		baseURL:    strings.TrimRight(baseURL, "/"),
		defaultTTL: defaultTTL,
	}
}

func (s *inviteService) Issue(ctx context.Context, actor domain.Actor, in IssueInviteInput) (*domain.Invite, string, error) {
	token, err := s.issuer.GenerateInviteToken(ctx)
	if err != nil {
		return nil, "", err
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	invite := &domain.Invite{
		Token:     token,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Notes:     in.Notes,
		CreatedBy: actor.UserID,
		ExpiresAt: time.Now().Add(ttl),
	}

	err = s.store.WithinTx(ctx, func(r repository.Repos) error {
		if err := r.Invites.Create(ctx, invite); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionCreate,
			TargetType: "invite",
			TargetID:   fmt.Sprintf("%d", invite.ID),
			Details:    map[string]string{"email": invite.Email},
			IPAddress:  actor.IPAddress,
		})
	})
	if err != nil {
		return nil, "", err
	}

	link := fmt.Sprintf("%s/registration/%s", s.baseURL, token)
	if invite.Email != "" {
		if err := s.email.SendInvite(ctx, invite.Email, link, invite.ExpiresAt); err != nil {
			logger.Warn("invite email delivery failed", "invite_id", invite.ID, "error", err)
		}
	}
	return invite, link, nil
}

func (s *inviteService) Register(ctx context.Context, token string, in RegistrationInput, ip string) (*domain.User, *domain.Agent, error) {
	invite, err := s.store.Repos().Invites.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidToken
		}
		return nil, nil, err
	}
	// Expiry wins over used_at when both apply.
	if invite.IsExpired(time.Now()) {
		return nil, nil, domain.ErrInviteExpired
	}
	if invite.IsUsed() {
		return nil, nil, domain.ErrAlreadyUsed
	}

	if in.Email == "" {
		in.Email = invite.Email
	}
	if in.Phone == "" {
		in.Phone = invite.Phone
	}

	user, agent, err := s.prepare(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	err = s.store.WithinTx(ctx, func(r repository.Repos) error {
		// Compare-and-swap on used_at closes the window between the checks
		// above and the account creation.
		stamped, err := r.Invites.MarkUsed(ctx, token, time.Now())
		if err != nil {
			return err
		}
		if !stamped {
			return domain.ErrAlreadyUsed
		}
		return s.registerTx(ctx, r, user, agent, ip)
	})
	if err != nil {
		return nil, nil, err
	}
	return user, agent, nil
}

func (s *inviteService) RegisterOpen(ctx context.Context, in RegistrationInput, ip string) (*domain.User, *domain.Agent, error) {
	user, agent, err := s.prepare(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	err = s.store.WithinTx(ctx, func(r repository.Repos) error {
		return s.registerTx(ctx, r, user, agent, ip)
	})
	if err != nil {
		return nil, nil, err
	}
	return user, agent, nil
}

// prepare validates the input, issues the agent identifier and builds the
// user and agent records that registerTx persists.
func (s *inviteService) prepare(ctx context.Context, in RegistrationInput) (*domain.User, *domain.Agent, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" {
		return nil, nil, fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	if in.Password == "" {
		return nil, nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	// A caller-supplied identifier is honored after a uniqueness pre-check;
	// the column constraint remains the backstop. Otherwise one is issued.
	identifier := strings.TrimSpace(in.Identifier)
	if identifier != "" {
		taken, err := s.store.Repos().Agents.IdentifierExists(ctx, identifier)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, domain.ErrDuplicateIdentifier
		}
	} else {
		issued, err := s.issuer.GenerateAgentIdentifier(ctx, time.Now())
		if err != nil {
			return nil, nil, err
		}
		identifier = issued
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = identifier
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        in.Email,
		Phone:        in.Phone,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleAgent,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	agent := &domain.Agent{
		Identifier:  identifier,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		IDNumber:    in.IDNumber,
		ProjectType: in.ProjectType,
		Status:      domain.AgentStatusActive,
	}
	agent.IDDocumentPath = in.IDDocumentPath
	return user, agent, nil
}

func (s *inviteService) registerTx(ctx context.Context, r repository.Repos, user *domain.User, agent *domain.Agent, ip string) error {
	if err := r.Users.Create(ctx, user); err != nil {
		return err
	}
	agent.UserID = &user.ID
	if err := r.Agents.Create(ctx, agent); err != nil {
		return err
	}
	return r.Audit.Append(ctx, &domain.AuditLog{
		UserID:     &user.ID,
		Action:     domain.AuditActionRegister,
		TargetType: "agent",
		TargetID:   fmt.Sprintf("%d", agent.ID),
		Details:    map[string]string{"identifier": agent.Identifier, "username": user.Username},
		IPAddress:  ip,
	})
}

func (s *inviteService) List(ctx context.Context, page, pageSize int32) ([]domain.Invite, int32, error) {
	return s.store.Repos().Invites.List(ctx, page, pageSize)
}
