package usecase

import (
	"context"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/service"
	"bookswap/pkg/errors"
	"bookswap/pkg/logger"
)

// AccountUseCase manages the caller's own identity-provider record.
type AccountUseCase struct {
	identity service.IdentityProvider
}

func NewAccountUseCase(identity service.IdentityProvider) *AccountUseCase {
	return &AccountUseCase{
		identity: identity,
	}
}

// Profile echoes the identity decoded from the session.
func (uc *AccountUseCase) Profile(identity *entity.Identity) (*entity.Identity, error) {
	if identity == nil || identity.UID == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}
	return identity, nil
}

// SessionUser reads the current user record rather than the session claims.
func (uc *AccountUseCase) SessionUser(ctx context.Context, identity *entity.Identity) (*entity.Identity, error) {
	if identity == nil || identity.UID == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}

	user, err := uc.identity.GetUser(ctx, identity.UID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch user", err)
	}
	return user, nil
}

func (uc *AccountUseCase) UpdateAccount(ctx context.Context, identity *entity.Identity, update entity.IdentityUpdate) (*entity.Identity, error) {
	if identity == nil || identity.UID == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}
	if update.IsEmpty() {
		return nil, errors.BadRequest("No fields to update", nil)
	}

	user, err := uc.identity.UpdateUser(ctx, identity.UID, update)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	logger.Info("Account %s updated", identity.UID)
	return user, nil
}

func (uc *AccountUseCase) DeleteAccount(ctx context.Context, identity *entity.Identity) error {
	if identity == nil || identity.UID == "" {
		return errors.Unauthenticated("No session cookie provided", nil)
	}

	if err := uc.identity.DeleteUser(ctx, identity.UID); err != nil {
		return errors.BadRequest(err.Error(), err)
	}

	logger.Info("Account %s deleted", identity.UID)
	return nil
}
