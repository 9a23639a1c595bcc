package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"weekly-rollover/internal/model"
	"weekly-rollover/internal/note/repository"
)

const selectColumns = `id, content, tags_json, pinned, archived, deleted, created_at, modified_at`

func (r *implRepository) Query(ctx context.Context, opt repository.QueryOptions) ([]model.Note, error) {
	query := `SELECT ` + selectColumns + ` FROM notes WHERE deleted = 0`
	if !opt.IncludeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		if !n.HasAllTags(opt.Tags) {
			continue
		}
		notes = append(notes, n)
		if opt.Limit > 0 && len(notes) == opt.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

func (r *implRepository) Get(ctx context.Context, id string) (model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return n, err
}

func (r *implRepository) Create(ctx context.Context, opt repository.CreateOptions) (model.Note, error) {
	now := r.now().UTC()
	n := model.Note{
		ID:         uuid.NewString(),
		Content:    opt.Content,
		Tags:       normaliseTags(opt.Tags),
		Pinned:     opt.Pinned,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	tagsJSON, err := json.Marshal(n.Tags)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (`+selectColumns+`) VALUES (?, ?, ?, ?, 0, 0, ?, ?)`,
		n.ID, n.Content, string(tagsJSON), n.Pinned, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to create note: %v", err)
		return model.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}

	r.l.Debugf(ctx, "sqlite repository: created %s", n.ID)
	return n, nil
}

// Update writes every mutable field. modified_at only moves when
// something actually changed.
func (r *implRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	current, err := r.Get(ctx, note.ID)
	if err != nil {
		return model.Note{}, err
	}

	note.Tags = normaliseTags(note.Tags)
	note.CreatedAt = current.CreatedAt
	note.ModifiedAt = current.ModifiedAt
	note.URL = current.URL
	if changed(current, note) {
		note.ModifiedAt = r.now().UTC()
	}

	tagsJSON, err := json.Marshal(note.Tags)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE notes SET content = ?, tags_json = ?, pinned = ?, archived = ?, deleted = ?, modified_at = ? WHERE id = ?`,
		note.Content, string(tagsJSON), note.Pinned, note.Archived, note.Deleted, note.ModifiedAt.UnixNano(), note.ID,
	)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to update %s: %v", note.ID, err)
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (model.Note, error) {
	var (
		n                   model.Note
		tagsJSON            string
		created, modified   int64
		pinned, arch, trash bool
	)
	if err := s.Scan(&n.ID, &n.Content, &tagsJSON, &pinned, &arch, &trash, &created, &modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, err
		}
		return model.Note{}, fmt.Errorf("failed to scan note: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
		return model.Note{}, fmt.Errorf("failed to decode tags of %s: %w", n.ID, err)
	}

	n.Pinned, n.Archived, n.Deleted = pinned, arch, trash
	n.CreatedAt = time.Unix(0, created).UTC()
	n.ModifiedAt = time.Unix(0, modified).UTC()
	return n, nil
}

func normaliseTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func changed(a, b model.Note) bool {
	return a.Content != b.Content ||
		a.Pinned != b.Pinned ||
		a.Archived != b.Archived ||
		a.Deleted != b.Deleted ||
		!slices.Equal(a.Tags, b.Tags)
}
