package messaging

import (
	"context"
	"errors"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/service"
)

// MultiPublisher delivers each event to every publisher and joins their errors.
type MultiPublisher struct {
	publishers []service.ListingEventPublisher
}

func NewMultiPublisher(publishers ...service.ListingEventPublisher) *MultiPublisher {
	kept := make([]service.ListingEventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &MultiPublisher{publishers: kept}
}

func (m *MultiPublisher) PublishListingEvent(ctx context.Context, event entity.ListingEvent) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.PublishListingEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
