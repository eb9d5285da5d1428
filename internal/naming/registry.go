package naming

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Kind separates the species and biome name spaces.
type Kind string

const (
	KindSpecies Kind = "species"
	KindBiome   Kind = "biome"
)

// Registry records which names a session has handed out. Claim reports
// false when the name was already taken.
type Registry interface {
	Claim(ctx context.Context, kind Kind, name string) (bool, error)
	Reset(ctx context.Context) error
}

type MemoryRegistry struct {
	mu    sync.Mutex
	names map[Kind]map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{names: make(map[Kind]map[string]struct{})}
}

func (m *MemoryRegistry) Claim(_ context.Context, kind Kind, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.names[kind]
	if !ok {
		set = make(map[string]struct{})
		m.names[kind] = set
	}
	if _, taken := set[name]; taken {
		return false, nil
	}
	set[name] = struct{}{}
	return true, nil
}

func (m *MemoryRegistry) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = make(map[Kind]map[string]struct{})
	return nil
}

// Len returns how many names of kind have been claimed.
func (m *MemoryRegistry) Len(kind Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.names[kind])
}

// RedisRegistry keeps one set per kind so several server instances share a
// single naming session.
type RedisRegistry struct {
	client    *redis.Client
	namespace string
}

func NewRedisRegistry(client *redis.Client, namespace string) *RedisRegistry {
	if namespace == "" {
		namespace = "biosphere"
	}
	return &RedisRegistry{client: client, namespace: namespace}
}

func (r *RedisRegistry) key(kind Kind) string {
	return fmt.Sprintf("%s:names:%s", r.namespace, kind)
}

func (r *RedisRegistry) Claim(ctx context.Context, kind Kind, name string) (bool, error) {
	added, err := r.client.SAdd(ctx, r.key(kind), name).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim %s name: %w", kind, err)
	}
	return added == 1, nil
}

func (r *RedisRegistry) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(KindSpecies), r.key(KindBiome)).Err(); err != nil {
		return fmt.Errorf("failed to reset name registry: %w", err)
	}
	return nil
}
