package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookswap/internal/domain/entity"
	"bookswap/pkg/errors"
)

func TestVerifyRejectsMissingCookie(t *testing.T) {
	uc := NewSessionUseCase(newFakeIdentityProvider(), 0)

	_, err := uc.Verify(context.Background(), "")

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeUnauthenticated, appErr.Code)
	assert.Equal(t, "No session cookie provided", appErr.Message)
}

func TestVerifyRejectsRevokedCookie(t *testing.T) {
	uc := NewSessionUseCase(newFakeIdentityProvider(), 0)

	_, err := uc.Verify(context.Background(), "stale")

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "Invalid or expired session cookie", appErr.Message)
}

func TestVerifyReturnsIdentity(t *testing.T) {
	provider := newFakeIdentityProvider()
	provider.sessions["good"] = &entity.Identity{UID: "u1", Email: "a@b.c", DisplayName: "Ann"}
	uc := NewSessionUseCase(provider, 0)

	identity, err := uc.Verify(context.Background(), "good")

	require.NoError(t, err)
	assert.Equal(t, &entity.Identity{UID: "u1", Email: "a@b.c", DisplayName: "Ann"}, identity)
}

func TestLoginCreatesFiveDaySession(t *testing.T) {
	provider := newFakeIdentityProvider()
	provider.idTokens["id-token"] = "u1"
	uc := NewSessionUseCase(provider, 0)

	cookie, err := uc.Login(context.Background(), "id-token")

	require.NoError(t, err)
	assert.Equal(t, "cookie-u1", cookie)
	assert.Equal(t, DefaultSessionExpiry, provider.lastExpiry)

	identity, err := uc.Verify(context.Background(), cookie)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UID)
}

func TestLoginRejectsBadToken(t *testing.T) {
	uc := NewSessionUseCase(newFakeIdentityProvider(), 0)

	_, err := uc.Login(context.Background(), "")
	assert.True(t, errors.Is(err, errors.CodeUnauthenticated))

	_, err = uc.Login(context.Background(), "forged")
	assert.True(t, errors.Is(err, errors.CodeUnauthenticated))
}

func TestLogoutRevokesSessions(t *testing.T) {
	provider := newFakeIdentityProvider()
	uc := NewSessionUseCase(provider, 0)

	require.NoError(t, uc.Logout(context.Background(), &entity.Identity{UID: "u1"}))
	assert.Equal(t, []string{"u1"}, provider.revoked)

	provider.failRevoke = fmt.Errorf("backend unavailable")
	err := uc.Logout(context.Background(), &entity.Identity{UID: "u1"})
	assert.True(t, errors.Is(err, errors.CodeInternal))
}
