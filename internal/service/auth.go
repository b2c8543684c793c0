package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type authService struct {
	store  repository.Store
	tokens security.TokenManager
}

func NewAuthService(store repository.Store, tokens security.TokenManager) AuthService {
	return &authService{store: store, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, identifier, password, ip string) (*domain.User, string, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, "", "", ErrInvalidCredentials
	}

	repos := s.store.Repos()
	user, err := repos.Users.GetByLoginIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if !user.IsActive {
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	entry := &domain.AuditLog{
		UserID:     &user.ID,
		Action:     domain.AuditActionLogin,
		TargetType: "user",
		TargetID:   fmt.Sprintf("%d", user.ID),
		IPAddress:  ip,
	}
	if err := repos.Audit.Append(ctx, entry); err != nil {
		logger.Warn("login audit append failed", "user_id", user.ID, "error", err)
	}

	return user, access, refresh, nil
}
