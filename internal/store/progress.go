// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SaveProgress records the words a stopped run did not reach under name.
func (s *Store) SaveProgress(ctx context.Context, name string, remaining []string) error {
	data, err := json.Marshal(remaining)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	_, err = s.qb.Insert("progress").
		Columns("name", "remaining", "updated_at").
		Values(name, string(data), s.timestamp()).
		Suffix("ON CONFLICT(name) DO UPDATE SET remaining = excluded.remaining, updated_at = excluded.updated_at").
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("saving progress %s: %w", name, err)
	}
	return nil
}

// LoadProgress returns the remaining words saved under name, or nil.
func (s *Store) LoadProgress(ctx context.Context, name string) ([]string, error) {
	var data string
	err := s.qb.Select("remaining").
		From("progress").
		Where(sq.Eq{"name": name}).
		QueryRowContext(ctx).
		Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading progress %s: %w", name, err)
	}

	var remaining []string
	if err := json.Unmarshal([]byte(data), &remaining); err != nil {
		return nil, fmt.Errorf("decoding progress %s: %w", name, err)
	}
	return remaining, nil
}

// ClearProgress forgets the progress saved under name.
func (s *Store) ClearProgress(ctx context.Context, name string) error {
	if _, err := s.qb.Delete("progress").Where(sq.Eq{"name": name}).ExecContext(ctx); err != nil {
		return fmt.Errorf("clearing progress %s: %w", name, err)
	}
	return nil
}
