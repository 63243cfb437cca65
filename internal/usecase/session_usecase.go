package usecase

import (
	"context"
	"time"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/service"
	"bookswap/pkg/errors"
)

const DefaultSessionExpiry = 5 * 24 * time.Hour

type SessionUseCase struct {
	identity service.IdentityProvider
	expiry   time.Duration
}

func NewSessionUseCase(identity service.IdentityProvider, expiry time.Duration) *SessionUseCase {
	if expiry <= 0 {
		expiry = DefaultSessionExpiry
	}
	return &SessionUseCase{
		identity: identity,
		expiry:   expiry,
	}
}

func (uc *SessionUseCase) Expiry() time.Duration {
	return uc.expiry
}

// Verify decodes a session cookie. Revoked sessions are rejected.
func (uc *SessionUseCase) Verify(ctx context.Context, credential string) (*entity.Identity, error) {
	if credential == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}

	identity, err := uc.identity.VerifySession(ctx, credential)
	if err != nil {
		return nil, errors.Unauthenticated("Invalid or expired session cookie", err)
	}
	return identity, nil
}

// Login exchanges an ID token for a session cookie.
func (uc *SessionUseCase) Login(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", errors.Unauthenticated("Unauthorized", nil)
	}

	cookie, err := uc.identity.CreateSession(ctx, idToken, uc.expiry)
	if err != nil {
		return "", errors.Unauthenticated("Unauthorized", err)
	}
	return cookie, nil
}

// Logout revokes every refresh token of the user so outstanding session
// cookies stop verifying.
func (uc *SessionUseCase) Logout(ctx context.Context, identity *entity.Identity) error {
	if identity == nil || identity.UID == "" {
		return errors.Unauthenticated("No session cookie provided", nil)
	}

	if err := uc.identity.RevokeSessions(ctx, identity.UID); err != nil {
		return errors.Internal("Failed to revoke session", err)
	}
	return nil
}
