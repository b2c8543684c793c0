package service

import (
	"context"
	"testing"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-at-least-32-characters!!", time.Hour, 24*time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	activeUser := &domain.User{
		ID:           7,
		Username:     "ada",
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	t.Run("issues access and refresh tokens", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewAuthService(store, tokens)

		m.users.On("GetByLoginIdentifier", ctx, "ada").Return(activeUser, nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		user, access, refresh, err := svc.Login(ctx, "ada", "correct-horse", "10.0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), user.ID)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Equal(t, "ADMIN", claims.Role)

		claims, err = tokens.ValidateToken(refresh)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("wrong password", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewAuthService(store, tokens)

		m.users.On("GetByLoginIdentifier", ctx, "ada").Return(activeUser, nil)

		_, _, _, err := svc.Login(ctx, "ada", "wrong", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewAuthService(store, tokens)

		m.users.On("GetByLoginIdentifier", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, _, _, err := svc.Login(ctx, "ghost", "whatever", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewAuthService(store, tokens)

		inactive := *activeUser
		inactive.IsActive = false
		m.users.On("GetByLoginIdentifier", ctx, "ada").Return(&inactive, nil)

		_, _, _, err := svc.Login(ctx, "ada", "correct-horse", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		store, _ := newMockRepos()
		svc := NewAuthService(store, tokens)

		_, _, _, err := svc.Login(ctx, "  ", "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
