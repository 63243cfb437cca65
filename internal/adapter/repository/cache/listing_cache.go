package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/repository"
	"bookswap/pkg/logger"
)

const keyPrefix = "book:"

// cachedListingRepository reads single listings through Redis and drops the
// cached copy on every write to that listing.
type cachedListingRepository struct {
	repository.ListingRepository
	client redis.Cmdable
	ttl    time.Duration
}

func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func NewCachedListingRepository(next repository.ListingRepository, client redis.Cmdable, ttl time.Duration) repository.ListingRepository {
	return &cachedListingRepository{
		ListingRepository: next,
		client:            client,
		ttl:               ttl,
	}
}

func (r *cachedListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err == nil {
		var listing entity.Listing
		if err := json.Unmarshal(data, &listing); err == nil {
			return listing.Normalize(), nil
		}
		logger.Warn("Discarding unreadable cached book %s", id)
	} else if err != redis.Nil {
		logger.Warn("Book cache read failed for %s: %v", id, err)
	}

	listing, err := r.ListingRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listing); err == nil {
		if err := r.client.Set(ctx, keyPrefix+id, data, r.ttl).Err(); err != nil {
			logger.Warn("Book cache write failed for %s: %v", id, err)
		}
	}

	return listing, nil
}

func (r *cachedListingRepository) Update(ctx context.Context, id string, patch entity.ListingPatch) error {
	r.invalidate(ctx, id)
	err := r.ListingRepository.Update(ctx, id, patch)
	r.invalidate(ctx, id)
	return err
}

func (r *cachedListingRepository) Delete(ctx context.Context, id string) error {
	err := r.ListingRepository.Delete(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *cachedListingRepository) invalidate(ctx context.Context, id string) {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		logger.Warn("Book cache invalidation failed for %s: %v", id, err)
	}
}
