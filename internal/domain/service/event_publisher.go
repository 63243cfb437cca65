package service

import (
	"context"

	"bookswap/internal/domain/entity"
)

type ListingEventPublisher interface {
	PublishListingEvent(ctx context.Context, event entity.ListingEvent) error
}
