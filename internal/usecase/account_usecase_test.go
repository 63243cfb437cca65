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

func TestProfileEchoesSessionIdentity(t *testing.T) {
	uc := NewAccountUseCase(newFakeIdentityProvider())

	got, err := uc.Profile(&entity.Identity{UID: "u1", Email: "a@b.c", DisplayName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.DisplayName)

	_, err = uc.Profile(nil)
	assert.True(t, errors.Is(err, errors.CodeUnauthenticated))
}

func TestSessionUserReadsProviderRecord(t *testing.T) {
	provider := newFakeIdentityProvider()
	provider.users["u1"] = &entity.Identity{UID: "u1", Email: "fresh@example.com", DisplayName: "Fresh"}
	uc := NewAccountUseCase(provider)

	got, err := uc.SessionUser(context.Background(), &entity.Identity{UID: "u1", Email: "stale@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", got.Email)

	provider.failGetUser = fmt.Errorf("unavailable")
	_, err = uc.SessionUser(context.Background(), &entity.Identity{UID: "u1"})
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestUpdateAccountRejectsEmptyUpdate(t *testing.T) {
	provider := newFakeIdentityProvider()
	uc := NewAccountUseCase(provider)

	_, err := uc.UpdateAccount(context.Background(), u1, entity.IdentityUpdate{})

	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.False(t, provider.updateCalled)
}

func TestUpdateAccountSendsSuppliedFields(t *testing.T) {
	provider := newFakeIdentityProvider()
	uc := NewAccountUseCase(provider)

	got, err := uc.UpdateAccount(context.Background(), u1, entity.IdentityUpdate{DisplayName: "Paul"})
	require.NoError(t, err)

	assert.Equal(t, "Paul", got.DisplayName)
	assert.Equal(t, entity.IdentityUpdate{DisplayName: "Paul"}, provider.lastUpdate)
}

func TestUpdateAccountSurfacesProviderMessage(t *testing.T) {
	provider := newFakeIdentityProvider()
	provider.failUpdate = fmt.Errorf("email already exists")
	uc := NewAccountUseCase(provider)

	_, err := uc.UpdateAccount(context.Background(), u1, entity.IdentityUpdate{Email: "taken@example.com"})

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "email already exists", appErr.Message)
}

func TestDeleteAccount(t *testing.T) {
	provider := newFakeIdentityProvider()
	uc := NewAccountUseCase(provider)

	require.NoError(t, uc.DeleteAccount(context.Background(), u1))
	assert.Equal(t, []string{"u1"}, provider.deleted)

	provider.failDelete = fmt.Errorf("user not found")
	err := uc.DeleteAccount(context.Background(), u1)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
