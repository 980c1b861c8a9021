// internal/wizard/persist/store.go

// Package persist keeps wizard state alive across page refreshes: draft
// snapshots, chat transcripts and the submitted-applications list, all as
// JSON blobs under prefixed keys.
package persist

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"social-support-portal/internal/common/database"
)

// KeyPrefix namespaces every portal key in shared storage.
const KeyPrefix = "tamm:ss:"

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("key not found")

// DraftKey names a session's draft snapshot.
func DraftKey(session string) string {
	return "draft:" + session
}

// ChatKey names a session's assistant transcript.
func ChatKey(session string) string {
	return "chat:" + session
}

// Store is the persistence abstraction the wizard writes through. Values are
// opaque JSON strings.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ==========================
// In-memory store
// ==========================

// MemoryStore is a process-local Store used in tests and when no Redis is
// configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[KeyPrefix+key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyPrefix+key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, KeyPrefix+key)
	return nil
}

// ==========================
// Redis-backed store
// ==========================

// RedisStore persists wizard state in Redis with no expiration; drafts live
// until submitted or explicitly cleared.
type RedisStore struct {
	client *database.RedisClient
}

func NewRedisStore(client *database.RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, KeyPrefix+key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, KeyPrefix+key, value, 0)
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, KeyPrefix+key)
}
