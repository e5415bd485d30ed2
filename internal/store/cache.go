// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Get returns the cached value for key. Entries older than the configured
// expiry are treated as missing.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value, storedAt string
	err := s.qb.Select("value", "stored_at").
		From("cache").
		Where(sq.Eq{"key": key}).
		QueryRowContext(ctx).
		Scan(&value, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache %s: %w", key, err)
	}

	t, err := time.Parse(timeLayout, storedAt)
	if err != nil || s.now().Sub(t) > s.expiry {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.qb.Insert("cache").
		Columns("key", "value", "stored_at").
		Values(key, string(value), s.timestamp()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at").
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("writing cache %s: %w", key, err)
	}
	return nil
}

// GetJSON decodes the cached value for key into v.
func (s *Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding cache %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// Delete removes key from the cache. Removing a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.qb.Delete("cache").Where(sq.Eq{"key": key}).ExecContext(ctx); err != nil {
		return fmt.Errorf("deleting cache %s: %w", key, err)
	}
	return nil
}

// Clear removes every cache entry and returns how many were dropped.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.qb.Delete("cache").ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Purge removes expired cache entries.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.expiry).UTC().Format(timeLayout)
	res, err := s.qb.Delete("cache").Where(sq.Lt{"stored_at": cutoff}).ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return res.RowsAffected()
}
