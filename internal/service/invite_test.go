package service

import (
	"context"
	"testing"
	"time"

	"equiptrack-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInviteIssue(t *testing.T) {
	ctx := context.Background()

	store, m := newMockRepos()
	issuer := new(MockIssuer)
	email := new(MockEmailService)
	svc := NewInviteService(store, issuer, email, "https://equiptrack.example/", 0)

	issuer.On("GenerateInviteToken", ctx).Return("tok123", nil)
	m.invites.On("Create", ctx, mock.AnythingOfType("*domain.Invite")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Invite).ID = 11
		}).
		Return(nil)
	m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
	email.On("SendInvite", ctx, "agent@example.com", "https://equiptrack.example/registration/tok123", mock.AnythingOfType("time.Time")).Return(nil)

	invite, link, err := svc.Issue(ctx, staffActor(), IssueInviteInput{Email: "agent@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "tok123", invite.Token)
	assert.Equal(t, "https://equiptrack.example/registration/tok123", link)
	// Default TTL is seven days.
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), invite.ExpiresAt, time.Minute)
	email.AssertExpectations(t)
}

func TestInviteIssueEmailFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	store, m := newMockRepos()
	issuer := new(MockIssuer)
	email := new(MockEmailService)
	svc := NewInviteService(store, issuer, email, "https://equiptrack.example", 24*time.Hour)

	issuer.On("GenerateInviteToken", ctx).Return("tok123", nil)
	m.invites.On("Create", ctx, mock.AnythingOfType("*domain.Invite")).Return(nil)
	m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
	email.On("SendInvite", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, _, err := svc.Issue(ctx, staffActor(), IssueInviteInput{Email: "agent@example.com"})
	assert.NoError(t, err)
}

func TestInviteRegister(t *testing.T) {
	ctx := context.Background()

	input := RegistrationInput{
		Password:  "s3cret",
		FirstName: "Ada",
		LastName:  "Okafor",
	}

	t.Run("consumes the invite and creates the account", func(t *testing.T) {
		store, m := newMockRepos()
		issuer := new(MockIssuer)
		svc := NewInviteService(store, issuer, new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", Email: "ada@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		issuer.On("GenerateAgentIdentifier", ctx, mock.AnythingOfType("time.Time")).
			Return("AG202608290042", nil)
		m.invites.On("MarkUsed", ctx, "tok123", mock.AnythingOfType("time.Time")).Return(true, nil)
		m.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 31
			}).
			Return(nil)
		m.agents.On("Create", ctx, mock.AnythingOfType("*domain.Agent")).Return(nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		user, agent, err := svc.Register(ctx, "tok123", input, "10.0.0.2")
		assert.NoError(t, err)
		// Username falls back to the issued identifier, email comes from the
		// invite, and the agent row points back at the new user.
		assert.Equal(t, "AG202608290042", user.Username)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, domain.RoleAgent, user.Role)
		assert.Equal(t, "AG202608290042", agent.Identifier)
		assert.Equal(t, int32(31), *agent.UserID)
	})

	t.Run("used invite is rejected", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewInviteService(store, new(MockIssuer), new(MockEmailService), "https://equiptrack.example", 0)

		used := time.Now().Add(-time.Hour)
		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour), UsedAt: &used}, nil)

		_, _, err := svc.Register(ctx, "tok123", input, "")
		assert.ErrorIs(t, err, domain.ErrAlreadyUsed)
	})

	t.Run("expired invite is rejected", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewInviteService(store, new(MockIssuer), new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(-time.Minute)}, nil)

		_, _, err := svc.Register(ctx, "tok123", input, "")
		assert.ErrorIs(t, err, domain.ErrInviteExpired)
	})

	t.Run("expiry wins when the invite is also used", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewInviteService(store, new(MockIssuer), new(MockEmailService), "https://equiptrack.example", 0)

		used := time.Now().Add(-2 * time.Hour)
		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(-time.Minute), UsedAt: &used}, nil)

		_, _, err := svc.Register(ctx, "tok123", input, "")
		assert.ErrorIs(t, err, domain.ErrInviteExpired)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewInviteService(store, new(MockIssuer), new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Register(ctx, "nope", input, "")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("losing the consume race is rejected", func(t *testing.T) {
		store, m := newMockRepos()
		issuer := new(MockIssuer)
		svc := NewInviteService(store, issuer, new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		issuer.On("GenerateAgentIdentifier", ctx, mock.AnythingOfType("time.Time")).
			Return("AG202608290042", nil)
		m.invites.On("MarkUsed", ctx, "tok123", mock.AnythingOfType("time.Time")).Return(false, nil)

		_, _, err := svc.Register(ctx, "tok123", input, "")
		assert.ErrorIs(t, err, domain.ErrAlreadyUsed)
		m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("supplied identifier is honored", func(t *testing.T) {
		store, m := newMockRepos()
		issuer := new(MockIssuer)
		svc := NewInviteService(store, issuer, new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.agents.On("IdentifierExists", ctx, "AG199901010007").Return(false, nil)
		m.invites.On("MarkUsed", ctx, "tok123", mock.AnythingOfType("time.Time")).Return(true, nil)
		m.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		m.agents.On("Create", ctx, mock.AnythingOfType("*domain.Agent")).Return(nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		withID := input
		withID.Identifier = " AG199901010007 "
		_, agent, err := svc.Register(ctx, "tok123", withID, "")
		assert.NoError(t, err)
		assert.Equal(t, "AG199901010007", agent.Identifier)
		issuer.AssertNotCalled(t, "GenerateAgentIdentifier", mock.Anything, mock.Anything)
	})

	t.Run("supplied identifier already taken", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewInviteService(store, new(MockIssuer), new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.agents.On("IdentifierExists", ctx, "AG199901010007").Return(true, nil)

		withID := input
		withID.Identifier = "AG199901010007"
		_, _, err := svc.Register(ctx, "tok123", withID, "")
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
		m.invites.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing names fail validation", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewInviteService(store, new(MockIssuer), new(MockEmailService), "https://equiptrack.example", 0)

		m.invites.On("GetByToken", ctx, "tok123").
			Return(&domain.Invite{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		_, _, err := svc.Register(ctx, "tok123", RegistrationInput{Password: "x"}, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRegisterOpen(t *testing.T) {
	ctx := context.Background()

	store, m := newMockRepos()
	issuer := new(MockIssuer)
	svc := NewInviteService(store, issuer, new(MockEmailService), "https://equiptrack.example", 0)

	issuer.On("GenerateAgentIdentifier", ctx, mock.AnythingOfType("time.Time")).
		Return("AG202608290001", nil)
	m.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 44
		}).
		Return(nil)
	m.agents.On("Create", ctx, mock.AnythingOfType("*domain.Agent")).Return(nil)
	m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

	user, agent, err := svc.RegisterOpen(ctx, RegistrationInput{
		Username:  "ada",
		Password:  "s3cret",
		FirstName: "Ada",
		LastName:  "Okafor",
	}, "10.0.0.3")
	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, domain.AgentStatusActive, agent.Status)
	m.invites.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
}
