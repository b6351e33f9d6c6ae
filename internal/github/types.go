package github

import (
	"context"
	"time"
)

// Backend runs searches against GitHub.
type Backend interface {
	// SearchCode returns the code search hits for q.
	SearchCode(ctx context.Context, q CodeQuery) ([]CodeResult, error)
	// ListGists returns one record per listed gist file.
	ListGists(ctx context.Context, q GistQuery) ([]GistRecord, error)
	// GistContent returns the raw content of a gist file. An empty filename
	// selects every file in the gist.
	GistContent(ctx context.Context, id, filename string) (string, error)
}

// CodeQuery describes a code search.
type CodeQuery struct {
	Query     string
	Owner     string // Restrict to repositories owned by this account
	Language  string
	Extension string
	Limit     int // Maximum results (0 = backend default)
}

// GistQuery describes a gist listing.
type GistQuery struct {
	Query string
	Limit int
	Since *time.Time // Only gists updated after this time (nil = no filter)
}

// CodeResult is a single code search hit.
type CodeResult struct {
	Path       string
	URL        string
	Repository string // owner/name
	Fragments  []string
}

// GistRecord is one file entry from a gist listing.
type GistRecord struct {
	ID          string
	Filename    string
	Description string
	Content     string // First matching content line from the listing
}
