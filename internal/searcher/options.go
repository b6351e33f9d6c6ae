package searcher

import (
	"time"

	"github.com/jparise/gh-search/internal/github"
)

// DefaultGistLimit is the number of gists listed when no limit is given.
const DefaultGistLimit = 100

// RepoOptions contains the code search parameters.
type RepoOptions struct {
	Query     string
	Owner     string // Restrict to repositories owned by this account
	Language  string
	Extension string
	Excludes  []string // Exclude path patterns
	Limit     int      // Maximum results (0 = backend default)
	Summary   bool     // One row per repository instead of one per match
}

// Validate checks the options without contacting GitHub.
func (o *RepoOptions) Validate() error {
	if o.Query == "" {
		return github.Errorf(github.KindValidation, "search query is required")
	}
	if o.Limit < 0 {
		return github.Errorf(github.KindValidation, "--limit must be positive, got %d", o.Limit)
	}
	return validatePatterns(o.Excludes...)
}

// GistOptions contains the gist search parameters.
type GistOptions struct {
	Query          string
	Limit          int
	Filename       string     // Filename pattern (empty = all files)
	Since          *time.Time // Gists updated after this time (nil = no filter)
	IncludeContent bool       // Emit the matched line
	CaseSensitive  bool
	SimpleMatch    bool // Match the query literally instead of as a regexp
	Jobs           int  // Maximum concurrent content fetches
}

// Validate checks the options, including the query pattern, without
// contacting GitHub.
func (o *GistOptions) Validate() error {
	if o.Query == "" {
		return github.Errorf(github.KindValidation, "search query is required")
	}
	if o.Limit < 1 {
		return github.Errorf(github.KindValidation, "--limit must be positive, got %d", o.Limit)
	}
	if err := validatePatterns(o.Filename); err != nil {
		return err
	}
	_, err := newMatcher(o.Query, o.CaseSensitive, o.SimpleMatch)
	return err
}
