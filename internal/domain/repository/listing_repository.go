package repository

import (
	"context"

	"bookswap/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	ListAll(ctx context.Context) ([]*entity.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error)
	Update(ctx context.Context, id string, patch entity.ListingPatch) error
	Delete(ctx context.Context, id string) error
}
