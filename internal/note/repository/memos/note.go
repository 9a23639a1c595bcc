package memos

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"weekly-rollover/internal/model"
	"weekly-rollover/internal/note/repository"
	pkgLog "weekly-rollover/pkg/log"
)

type implRepository struct {
	client      *Client
	memoBaseURL string // e.g. "http://localhost:5230" for deep link generation
	l           pkgLog.Logger
}

// New creates a new Memos-backed note repository.
func New(client *Client, memoBaseURL string, l pkgLog.Logger) repository.NoteRepository {
	return &implRepository{
		client:      client,
		memoBaseURL: strings.TrimRight(memoBaseURL, "/"),
		l:           l,
	}
}

func (r *implRepository) Query(ctx context.Context, opt repository.QueryOptions) ([]model.Note, error) {
	pageSize := repository.DefaultQueryLimit
	if opt.Limit > 0 && opt.Limit < pageSize {
		pageSize = opt.Limit
	}

	states := []string{StateNormal}
	if opt.IncludeArchived {
		states = append(states, StateArchived)
	}

	// The API filters on a single tag; the rest is checked here.
	tag := ""
	if len(opt.Tags) > 0 {
		tag = strings.TrimPrefix(opt.Tags[0], "#")
	}

	notes := make([]model.Note, 0, pageSize)
	for _, state := range states {
		seen := make(map[string]bool)
		token := ""
		for {
			resp, err := r.client.ListMemos(ctx, ListMemosRequest{
				PageSize:  pageSize,
				PageToken: token,
				State:     state,
				Tag:       tag,
			})
			if err != nil {
				r.l.Errorf(ctx, "memos repository: list failed: %v", err)
				return nil, err
			}

			for i := range resp.Memos {
				n := r.memoToNote(&resp.Memos[i])
				if n.HasAllTags(opt.Tags) {
					notes = append(notes, n)
				}
			}

			token = resp.NextPageToken
			if token == "" || (opt.Limit > 0 && len(notes) >= opt.Limit) {
				break
			}
			if seen[token] {
				r.l.Warnf(ctx, "memos repository: page token %q repeated, stopping", token)
				break
			}
			seen[token] = true
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	if opt.Limit > 0 && len(notes) > opt.Limit {
		notes = notes[:opt.Limit]
	}
	return notes, nil
}

func (r *implRepository) Get(ctx context.Context, id string) (model.Note, error) {
	memo, err := r.client.GetMemo(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return model.Note{}, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
		}
		return model.Note{}, err
	}
	return r.memoToNote(memo), nil
}

// Create sends pinned with the create call so that createTime equals
// updateTime until the user edits the memo.
func (r *implRepository) Create(ctx context.Context, opt repository.CreateOptions) (model.Note, error) {
	memo, err := r.client.CreateMemo(ctx, CreateMemoRequest{
		Content:    withTagLine(opt.Content, opt.Tags),
		Visibility: VisibilityPrivate,
		Pinned:     opt.Pinned,
	})
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to create memo: %v", err)
		return model.Note{}, err
	}
	return r.memoToNote(memo), nil
}

func (r *implRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	if note.Deleted {
		if err := r.client.DeleteMemo(ctx, note.ID); err != nil {
			if errors.Is(err, ErrMemoNotFound) {
				return model.Note{}, fmt.Errorf("%w: %s", repository.ErrNotFound, note.ID)
			}
			return model.Note{}, err
		}
		r.l.Debugf(ctx, "memos repository: deleted %s", note.ID)
		return note, nil
	}

	state := StateNormal
	if note.Archived {
		state = StateArchived
	}

	memo, err := r.client.UpdateMemo(ctx, note.ID, UpdateMemoRequest{
		Content:    withTagLine(note.Content, note.Tags),
		Pinned:     note.Pinned,
		State:      state,
		UpdateMask: []string{"content", "pinned", "state"},
	})
	if err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return model.Note{}, fmt.Errorf("%w: %s", repository.ErrNotFound, note.ID)
		}
		r.l.Errorf(ctx, "memos repository: failed to update %s: %v", note.ID, err)
		return model.Note{}, err
	}
	return r.memoToNote(memo), nil
}

// withTagLine appends "#tag" tokens missing from content; Memos derives
// tags from the body.
func withTagLine(content string, tags []string) string {
	missing := make([]string, 0, len(tags))
	for _, t := range tags {
		token := "#" + strings.TrimPrefix(t, "#")
		if !containsToken(content, token) {
			missing = append(missing, token)
		}
	}
	if len(missing) == 0 {
		return content
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(content, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(missing, " "))
	sb.WriteString("\n")
	return sb.String()
}

func containsToken(content, token string) bool {
	for _, field := range strings.Fields(content) {
		if strings.EqualFold(field, token) {
			return true
		}
	}
	return false
}

// memoToNote converts a Memos API Memo object to the internal model.Note.
func (r *implRepository) memoToNote(m *Memo) model.Note {
	uid := m.UID
	// Name format is "memos/{uid}" from the Memos v1 API
	if uid == "" && m.Name != "" {
		parts := strings.SplitN(m.Name, "/", 2)
		if len(parts) == 2 {
			uid = parts[1]
		}
	}

	memoURL := ""
	if uid != "" && r.memoBaseURL != "" {
		memoURL = fmt.Sprintf("%s/m/%s", r.memoBaseURL, uid)
	}

	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, strings.TrimPrefix(t, "#"))
	}

	return model.Note{
		ID:         m.Name,
		Content:    m.Content,
		Tags:       tags,
		Pinned:     m.Pinned,
		Archived:   m.State == StateArchived,
		URL:        memoURL,
		CreatedAt:  parseTime(m.CreateTime),
		ModifiedAt: parseTime(m.UpdateTime),
	}
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
