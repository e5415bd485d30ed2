// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/pdiddy/wordbank/pkg/types"
)

// Entry is a master wordbank row.
type Entry struct {
	types.WordEntry
	Approved  bool
	UpdatedAt string
}

// ListFilter narrows List. Zero value lists everything.
type ListFilter struct {
	NeedsReview  bool
	ApprovedOnly bool
	Limit        uint64
}

// SaveEntry records e in the master wordbank without changing its approval
// state. New rows start unapproved. Words are keyed case-insensitively.
func (s *Store) SaveEntry(ctx context.Context, e types.WordEntry) error {
	return s.upsertEntry(ctx, e, false)
}

// Approve records e and marks it approved so later runs can reuse it.
func (s *Store) Approve(ctx context.Context, e types.WordEntry) error {
	return s.upsertEntry(ctx, e, true)
}

func (s *Store) upsertEntry(ctx context.Context, e types.WordEntry, approve bool) error {
	word := normalize(e.Word)
	if word == "" {
		return fmt.Errorf("saving entry: empty word")
	}
	if approve {
		e.NeedsReview = false
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entry %s: %w", word, err)
	}

	conflict := "ON CONFLICT(word) DO UPDATE SET id = excluded.id, part_of_speech = excluded.part_of_speech, " +
		"data = excluded.data, needs_review = excluded.needs_review, updated_at = excluded.updated_at"
	if approve {
		conflict += ", approved = 1"
	}

	_, err = s.qb.Insert("entries").
		Columns("word", "id", "part_of_speech", "data", "needs_review", "approved", "updated_at").
		Values(word, e.ID, e.PartOfSpeech, string(data), e.NeedsReview, approve, s.timestamp()).
		Suffix(conflict).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("saving entry %s: %w", word, err)
	}
	return nil
}

// Entry returns the master row for word.
func (s *Store) Entry(ctx context.Context, word string) (Entry, bool, error) {
	rows, err := s.selectEntries().Where(sq.Eq{"word": normalize(word)}).QueryContext(ctx)
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading entry %s: %w", word, err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

// ApprovedEntry returns word's entry only when it has been approved.
func (s *Store) ApprovedEntry(ctx context.Context, word string) (types.WordEntry, bool, error) {
	e, ok, err := s.Entry(ctx, word)
	if err != nil || !ok || !e.Approved {
		return types.WordEntry{}, false, err
	}
	return e.WordEntry, true, nil
}

// IsApproved reports whether word has an approved master entry.
func (s *Store) IsApproved(ctx context.Context, word string) (bool, error) {
	var approved bool
	err := s.qb.Select("approved").
		From("entries").
		Where(sq.Eq{"word": normalize(word)}).
		QueryRowContext(ctx).
		Scan(&approved)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking approval %s: %w", word, err)
	}
	return approved, nil
}

// Remove deletes word from the master wordbank and reports whether it existed.
func (s *Store) Remove(ctx context.Context, word string) (bool, error) {
	res, err := s.qb.Delete("entries").Where(sq.Eq{"word": normalize(word)}).ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("removing entry %s: %w", word, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// List returns master rows ordered by word.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Entry, error) {
	q := s.selectEntries().OrderBy("word ASC")
	if f.NeedsReview {
		q = q.Where(sq.Eq{"needs_review": true})
	}
	if f.ApprovedOnly {
		q = q.Where(sq.Eq{"approved": true})
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) selectEntries() sq.SelectBuilder {
	return s.qb.Select("data", "approved", "updated_at").From("entries")
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var (
			data string
			e    Entry
		)
		if err := rows.Scan(&data, &e.Approved, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &e.WordEntry); err != nil {
			return nil, fmt.Errorf("decoding entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
