package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

const (
	identifierAttempts = 100
	inviteTokenBytes   = 32
)

type identifierIssuer struct {
	store  repository.Store
	prefix string
}

// NewIdentifierIssuer builds the issuer for agent identifiers and invite
// tokens. The prefix defaults to "AG" when empty.
func NewIdentifierIssuer(store repository.Store, prefix string) IdentifierIssuer {
	if prefix == "" {
		prefix = "AG"
	}
	return &identifierIssuer{store: store, prefix: prefix}
}

// GenerateAgentIdentifier produces prefix + date + a 4-digit random suffix,
// retrying on collision. The identifier column's unique constraint remains the
// backstop for a race between the existence check and the insert.
func (i *identifierIssuer) GenerateAgentIdentifier(ctx context.Context, now time.Time) (string, error) {
	repos := i.store.Repos()
	datePart := now.Format("20060102")

	for attempt := 0; attempt < identifierAttempts; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", fmt.Errorf("generate identifier suffix: %w", err)
		}
		candidate := fmt.Sprintf("%s%s%04d", i.prefix, datePart, n.Int64())

		exists, err := repos.Agents.IdentifierExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check identifier %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrIdentifierSpaceExhausted
}

func (i *identifierIssuer) GenerateInviteToken(ctx context.Context) (string, error) {
	repos := i.store.Repos()

	for attempt := 0; attempt < identifierAttempts; attempt++ {
		buf := make([]byte, inviteTokenBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate invite token: %w", err)
		}
		candidate := base64.RawURLEncoding.EncodeToString(buf)

		exists, err := repos.Invites.TokenExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check invite token: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrIdentifierSpaceExhausted
}
