package port

import "context"

// ClientStoragePort - постоянное хранилище состояния посетителя (аналог localStorage).
// namespace - id посетителя или domain.SharedNamespace, value - JSON-строка.
type ClientStoragePort interface {
	// Get возвращает found=false, если ключа нет.
	Get(ctx context.Context, namespace, key string) (value string, found bool, err error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}
