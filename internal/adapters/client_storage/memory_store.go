package client_storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/karlseguin/ccache/v3"
)

// MemoryStore - хранилище в памяти процесса на LRU-кэше. Для разработки и тестов:
// данные посетителей живут до рестарта и вытесняются по TTL или при превышении MaxEntries.
// Общее пространство (кэш курсов) лежит отдельно и не вытесняется.
type MemoryStore struct {
	cache *ccache.Cache[string]
	ttl   time.Duration

	sharedMu sync.RWMutex
	shared   map[string]string
}

type MemoryConfig struct {
	MaxEntries int64
	TTL        time.Duration
}

func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 100_000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	return &MemoryStore{
		cache:  ccache.New(ccache.Configure[string]().MaxSize(cfg.MaxEntries)),
		ttl:    cfg.TTL,
		shared: make(map[string]string),
	}
}

func storageKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s", namespace, key)
}

func (s *MemoryStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if namespace == domain.SharedNamespace {
		s.sharedMu.RLock()
		defer s.sharedMu.RUnlock()
		v, ok := s.shared[key]
		return v, ok, nil
	}
	item := s.cache.Get(storageKey(namespace, key))
	if item == nil || item.Expired() {
		return "", false, nil
	}
	return item.Value(), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, namespace, key, value string) error {
	if namespace == domain.SharedNamespace {
		s.sharedMu.Lock()
		s.shared[key] = value
		s.sharedMu.Unlock()
	} else {
		s.cache.Set(storageKey(namespace, key), value, s.ttl)
	}
	contextkeys.LoggerFromContext(ctx).Debug("Value stored in memory", port.Fields{
		"component": "MemoryStore",
		"namespace": namespace,
		"key":       key,
	})
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, namespace, key string) error {
	if namespace == domain.SharedNamespace {
		s.sharedMu.Lock()
		delete(s.shared, key)
		s.sharedMu.Unlock()
		return nil
	}
	s.cache.Delete(storageKey(namespace, key))
	return nil
}

// Close останавливает фоновую горутину кэша.
func (s *MemoryStore) Close() {
	s.cache.Stop()
}
