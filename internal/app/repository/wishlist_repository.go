package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// WishlistRepository persists the wishlist the same way the cart is persisted:
// one serialized entry per session.
type WishlistRepository interface {
	Load(ctx context.Context, sessionID string) ([]model.WishlistItem, error)
	Save(ctx context.Context, sessionID string, items []model.WishlistItem) error
	Delete(ctx context.Context, sessionID string) error
}

func encodeWishlistItems(items []model.WishlistItem) ([]byte, error) {
	if items == nil {
		items = []model.WishlistItem{}
	}
	return json.Marshal(items)
}

func decodeWishlistItems(data []byte) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return items, nil
}

type redisWishlistRepository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisWishlistRepository(client *redis.Client, keyPrefix string, ttl time.Duration) WishlistRepository {
	return &redisWishlistRepository{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (r *redisWishlistRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, sessionID)
}

func (r *redisWishlistRepository) Load(ctx context.Context, sessionID string) ([]model.WishlistItem, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to read wishlist entry from storage", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	items, err := decodeWishlistItems(data)
	if err != nil {
		logger.Warn("Persisted wishlist payload is malformed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return items, nil
}

func (r *redisWishlistRepository) Save(ctx context.Context, sessionID string, items []model.WishlistItem) error {
	data, err := encodeWishlistItems(items)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(sessionID), data, r.ttl).Err(); err != nil {
		logger.Error("Failed to write wishlist entry to storage", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *redisWishlistRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		logger.Error("Failed to delete wishlist entry from storage", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// MemoryWishlistRepository is the in-process wishlist backend.
type MemoryWishlistRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryWishlistRepository() *MemoryWishlistRepository {
	return &MemoryWishlistRepository{entries: make(map[string][]byte)}
}

func (r *MemoryWishlistRepository) Load(ctx context.Context, sessionID string) ([]model.WishlistItem, error) {
	r.mu.RLock()
	data, ok := r.entries[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return decodeWishlistItems(data)
}

func (r *MemoryWishlistRepository) Save(ctx context.Context, sessionID string, items []model.WishlistItem) error {
	data, err := encodeWishlistItems(items)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.entries[sessionID] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryWishlistRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
	return nil
}
