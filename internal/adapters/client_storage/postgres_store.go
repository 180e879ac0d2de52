package client_storage

import (
	"context"
	"errors"
	"fmt"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS client_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// PostgresStore хранит значения посетителей в таблице client_storage.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema создает таблицу, если ее еще нет. Вызывается один раз при старте.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create client_storage table: %w", err)
	}
	return nil
}

func (s *PostgresStore) logger(ctx context.Context, method, namespace, key string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresStore",
		"method":    method,
		"namespace": namespace,
		"key":       key,
	})
}

func (s *PostgresStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	query := `SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`

	var value string
	err := s.pool.QueryRow(ctx, query, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		s.logger(ctx, "Get", namespace, key).Error("Failed to read stored value", err, nil)
		return "", false, fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, namespace, key, value string) error {
	query := `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, namespace, key, value); err != nil {
		s.logger(ctx, "Set", namespace, key).Error("Failed to write stored value", err, nil)
		return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
	}
	s.logger(ctx, "Set", namespace, key).Debug("Value stored.", nil)
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, namespace, key string) error {
	query := `DELETE FROM client_storage WHERE namespace = $1 AND key = $2`

	cmdTag, err := s.pool.Exec(ctx, query, namespace, key)
	if err != nil {
		s.logger(ctx, "Delete", namespace, key).Error("Failed to delete stored value", err, nil)
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	if cmdTag.RowsAffected() == 0 {
		s.logger(ctx, "Delete", namespace, key).Debug("Nothing to delete.", nil)
	}
	return nil
}
