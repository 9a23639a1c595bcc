package model

import (
	"strings"
	"time"
)

// Note is a record in the note store.
type Note struct {
	ID         string    // Store identifier (e.g. "memos/123" or a UUID)
	Content    string    // Full Markdown body; the first line is the title
	Tags       []string  // Tags without the leading '#'
	Pinned     bool      // Pinned or flagged in the store listing
	Archived   bool      // Moved out of the active listing
	Deleted    bool      // Trashed
	URL        string    // Deep link to the store UI, may be empty
	CreatedAt  time.Time // Creation time
	ModifiedAt time.Time // Last content or state change
}

// Title returns the first line of the note body.
func (n Note) Title() string {
	title, _, _ := strings.Cut(n.Content, "\n")
	return strings.TrimRight(title, "\r")
}

// Modified reports whether the note changed after it was created.
func (n Note) Modified() bool {
	return !n.CreatedAt.Equal(n.ModifiedAt)
}

// HasTag reports whether the note carries tag, case-insensitively.
func (n Note) HasTag(tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	for _, t := range n.Tags {
		if strings.EqualFold(strings.TrimPrefix(t, "#"), tag) {
			return true
		}
	}
	return false
}

// HasAllTags reports whether every tag in tags is present.
func (n Note) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !n.HasTag(t) {
			return false
		}
	}
	return true
}
