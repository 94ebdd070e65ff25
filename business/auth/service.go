package auth

import (
	"context"
	"fmt"
	"time"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

// Default lifetime of a registered session.
const defaultSessionTTL = 24 * time.Hour

// TokenStore persists live session tokens so the revocation-aware auth
// middleware can look them up.
type TokenStore interface {
	SaveToken(ctx context.Context, token, userID string, ttl time.Duration) error
	RevokeToken(ctx context.Context, token string) error
}

// Service registers and revokes sessions. The JWT itself is minted by the
// identity provider; this service only tracks which tokens are live so a
// logout invalidates a token before its expiry.
type Service struct {
	tokens     TokenStore
	sessionTTL time.Duration
}

// NewService creates the session service. tokens may be nil; sessions are
// then untracked, which matches plain JWT auth. A non-positive ttl uses
// the default.
func NewService(tokens TokenStore, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &Service{
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// RegisterSession marks the token as a live session for the user.
func (s *Service) RegisterSession(ctx context.Context, userID, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if userID == "" || token == "" {
		return domain.ErrBadParamInput
	}

	if s.tokens == nil {
		return nil
	}

	if err := s.tokens.SaveToken(ctx, token, userID, s.sessionTTL); err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}

	logger.Info("session registered", "user_id", userID)
	return nil
}

// RevokeSession removes the token from the live set.
func (s *Service) RevokeSession(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if token == "" {
		return domain.ErrBadParamInput
	}

	if s.tokens == nil {
		return nil
	}

	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
