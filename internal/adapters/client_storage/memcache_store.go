package client_storage

import (
	"context"
	"errors"
	"fmt"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/port"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheClient - методы клиента memcached, которые использует хранилище.
type MemcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

var _ MemcacheClient = (*memcache.Client)(nil)

// MemcacheStore хранит значения в memcached. Значения не истекают, но могут быть
// вытеснены сервером.
type MemcacheStore struct {
	client MemcacheClient
	prefix string
}

func NewMemcacheStore(client MemcacheClient, prefix string) (*MemcacheStore, error) {
	if client == nil {
		return nil, fmt.Errorf("memcache client cannot be nil")
	}
	return &MemcacheStore{client: client, prefix: prefix}, nil
}

// NewMemcacheClient подключается к списку серверов host:port.
func NewMemcacheClient(servers ...string) (*memcache.Client, error) {
	if len(servers) == 0 {
		return nil, fmt.Errorf("at least one memcached server is required")
	}
	client := memcache.New(servers...)
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping memcached: %w", err)
	}
	return client, nil
}

func (s *MemcacheStore) itemKey(namespace, key string) string {
	return s.prefix + storageKey(namespace, key)
}

func (s *MemcacheStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	item, err := s.client.Get(s.itemKey(namespace, key))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return "", false, nil
		}
		contextkeys.LoggerFromContext(ctx).Error("Error getting from Memcached", err, port.Fields{
			"component": "MemcacheStore",
			"key":       s.itemKey(namespace, key),
		})
		return "", false, fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	return string(item.Value), true, nil
}

func (s *MemcacheStore) Set(ctx context.Context, namespace, key, value string) error {
	item := &memcache.Item{Key: s.itemKey(namespace, key), Value: []byte(value)}
	if err := s.client.Set(item); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Error setting value in Memcached", err, port.Fields{
			"component": "MemcacheStore",
			"key":       item.Key,
		})
		return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *MemcacheStore) Delete(ctx context.Context, namespace, key string) error {
	err := s.client.Delete(s.itemKey(namespace, key))
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}
