package service

import (
	"context"
	"time"

	"bookswap/internal/domain/entity"
)

type IdentityProvider interface {
	// VerifySession decodes a session cookie, rejecting revoked sessions.
	VerifySession(ctx context.Context, sessionCookie string) (*entity.Identity, error)
	CreateSession(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	RevokeSessions(ctx context.Context, uid string) error

	GetUser(ctx context.Context, uid string) (*entity.Identity, error)
	UpdateUser(ctx context.Context, uid string, update entity.IdentityUpdate) (*entity.Identity, error)
	DeleteUser(ctx context.Context, uid string) error
}
