package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/contracts"
	"rental-bff/internal/core/port"
)

// jsonStore - JSON поверх клиентского хранилища. Значение, которое не читается
// или не проходит схему, считается отсутствующим.
type jsonStore struct {
	storage port.ClientStoragePort
}

// load возвращает found=false для отсутствующего или испорченного значения.
// Ошибка - только при сбое самого хранилища.
func (s jsonStore) load(ctx context.Context, namespace, key string, dst any) (bool, error) {
	raw, found, err := s.storage.Get(ctx, namespace, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}

	logger := contextkeys.LoggerFromContext(ctx)
	if err := contracts.ValidateStoredValue(key, []byte(raw)); err != nil {
		logger.Warn("Stored value rejected, treating as absent", port.Fields{"key": key, "error": err.Error()})
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("Stored value is not decodable, treating as absent", port.Fields{"key": key, "error": err.Error()})
		return false, nil
	}
	return true, nil
}

func (s jsonStore) save(ctx context.Context, namespace, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := contracts.ValidateStoredValue(key, raw); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, namespace, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s jsonStore) remove(ctx context.Context, namespace, key string) error {
	if err := s.storage.Delete(ctx, namespace, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// savePreference - запись настройки: сбой логируется, но операция считается успешной.
func (s jsonStore) savePreference(ctx context.Context, namespace, key string, v any) {
	if err := s.save(ctx, namespace, key, v); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to persist preference", port.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}
}
