package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Distinct failure kinds for the durable storage layer. Services fold all of
// them to a safe default state; the kind only drives logging.
var (
	ErrNotFound           = errors.New("no persisted entry for session")
	ErrCorruptPayload     = errors.New("persisted payload is malformed")
	ErrStorageUnavailable = errors.New("durable storage unavailable")
)

// CartRepository persists the full cart line collection under a fixed key per
// session. The serialized layout is a flat JSON array of
// {id, name, price, image, quantity} records, no schema tag.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) ([]model.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []model.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

func encodeCartLines(lines []model.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []model.CartLine{}
	}
	return json.Marshal(lines)
}

func decodeCartLines(data []byte) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return lines, nil
}

type redisCartRepository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisCartRepository(client *redis.Client, keyPrefix string, ttl time.Duration) CartRepository {
	return &redisCartRepository{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (r *redisCartRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, sessionID)
}

func (r *redisCartRepository) Load(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	logger.Debug("Loading cart lines from storage", map[string]interface{}{
		"session_id": sessionID,
	})

	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to read cart entry from storage", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	lines, err := decodeCartLines(data)
	if err != nil {
		logger.Warn("Persisted cart payload is malformed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	logger.Debug("Cart lines loaded from storage", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(lines),
	})
	return lines, nil
}

func (r *redisCartRepository) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	logger.Debug("Saving cart lines to storage", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(lines),
	})

	data, err := encodeCartLines(lines)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(sessionID), data, r.ttl).Err(); err != nil {
		logger.Error("Failed to write cart entry to storage", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *redisCartRepository) Delete(ctx context.Context, sessionID string) error {
	logger.Debug("Deleting cart entry from storage", map[string]interface{}{
		"session_id": sessionID,
	})

	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		logger.Error("Failed to delete cart entry from storage", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
