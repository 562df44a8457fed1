package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror is the durable copy of a session cart. Carts survive restarts
// through the mirror; the in-memory store stays the source of truth.
type Mirror interface {
	Load(ctx context.Context, userID string) ([]Item, error)
	Save(ctx context.Context, userID string, items []Item) error
	Delete(ctx context.Context, userID string) error
}

const mirrorTTL = 30 * 24 * time.Hour

type redisMirror struct {
	client *redis.Client
}

func NewRedisMirror(client *redis.Client) Mirror {
	return &redisMirror{client: client}
}

func mirrorKey(userID string) string {
	return "cart:" + userID
}

func (m *redisMirror) Load(ctx context.Context, userID string) ([]Item, error) {
	raw, err := m.client.Get(ctx, mirrorKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart mirror: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart mirror: %w", err)
	}
	return items, nil
}

func (m *redisMirror) Save(ctx context.Context, userID string, items []Item) error {
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart mirror: %w", err)
	}
	if err := m.client.Set(ctx, mirrorKey(userID), body, mirrorTTL).Err(); err != nil {
		return fmt.Errorf("set cart mirror: %w", err)
	}
	return nil
}

func (m *redisMirror) Delete(ctx context.Context, userID string) error {
	if err := m.client.Del(ctx, mirrorKey(userID)).Err(); err != nil {
		return fmt.Errorf("del cart mirror: %w", err)
	}
	return nil
}

// memoryMirror backs carts when no Redis address is configured. Useful
// for local runs and tests; carts then live only as long as the process.
type memoryMirror struct {
	mu    sync.Mutex
	items map[string][]Item
}

func NewMemoryMirror() Mirror {
	return &memoryMirror{items: make(map[string][]Item)}
}

func (m *memoryMirror) Load(ctx context.Context, userID string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[userID]
	if !ok {
		return nil, nil
	}
	out := make([]Item, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *memoryMirror) Save(ctx context.Context, userID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]Item, len(items))
	copy(stored, items)
	m.items[userID] = stored
	return nil
}

func (m *memoryMirror) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, userID)
	return nil
}
