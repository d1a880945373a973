package repository

import (
	"context"
	"sync"

	"github.com/dukatech/netstore-backend/internal/app/model"
)

// MemoryCartRepository keeps the serialized per-session entries in process
// memory. Default backend for development and tests; it goes through the same
// codec as the Redis backend so the round-trip and malformed-payload contracts
// hold identically.
type MemoryCartRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{entries: make(map[string][]byte)}
}

func (r *MemoryCartRepository) Load(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	r.mu.RLock()
	data, ok := r.entries[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return decodeCartLines(data)
}

func (r *MemoryCartRepository) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	data, err := encodeCartLines(lines)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.entries[sessionID] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
	return nil
}

// SaveRaw stores a pre-serialized payload verbatim. Test hook for exercising
// the malformed-payload path.
func (r *MemoryCartRepository) SaveRaw(sessionID string, data []byte) {
	r.mu.Lock()
	r.entries[sessionID] = data
	r.mu.Unlock()
}
