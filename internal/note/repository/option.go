package repository

// QueryOptions holds the parameters for listing notes.
type QueryOptions struct {
	Tags            []string // Every tag must be present (empty = no filter)
	IncludeArchived bool     // Include archived notes
	Limit           int      // Max number of results (<= 0 = no limit)
}

// CreateOptions holds the parameters for creating a note.
type CreateOptions struct {
	Content string   // Full Markdown body
	Tags    []string // Tags without '#'
	Pinned  bool
}

// DefaultQueryLimit is the page size for listings shown to the user.
const DefaultQueryLimit = 50
