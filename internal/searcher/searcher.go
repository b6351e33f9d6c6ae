// Package searcher runs code and gist searches against a GitHub backend and
// renders the results.
package searcher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jparise/gh-search/internal/github"
	"golang.org/x/sync/semaphore"
)

// GistMatch is the first matching line of a gist file.
type GistMatch struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Text     string `json:"match,omitempty"`
}

// Searcher orchestrates searches over a backend.
type Searcher struct {
	backend github.Backend
	output  *Output
}

// New creates a new Searcher.
func New(backend github.Backend, output *Output) *Searcher {
	return &Searcher{
		backend: backend,
		output:  output,
	}
}

// SearchRepos runs a code search and writes either one row per match or, in
// summary mode, one row per repository.
func (s *Searcher) SearchRepos(ctx context.Context, opts *RepoOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	results, err := s.backend.SearchCode(ctx, github.CodeQuery{
		Query:     opts.Query,
		Owner:     opts.Owner,
		Language:  opts.Language,
		Extension: opts.Extension,
		Limit:     opts.Limit,
	})
	if err != nil {
		return err
	}
	s.output.Infof("%d code search results", len(results))

	results, err = filterByExcludes(results, opts.Excludes)
	if err != nil {
		return err
	}

	if opts.Summary {
		return s.output.RepoSummaries(Summarize(results))
	}
	return s.output.RepoMatches(Detail(results))
}

// SearchGists runs a gist search and writes the matches in listing order.
func (s *Searcher) SearchGists(ctx context.Context, opts *GistOptions) error {
	matches, err := s.FindGists(ctx, opts)
	if err != nil {
		return err
	}
	return s.output.GistMatches(matches, opts.IncludeContent)
}

// FindGists lists gists matching the query, fetches each one's content and
// returns the first matching line of every gist file that has one.
func (s *Searcher) FindGists(ctx context.Context, opts *GistOptions) ([]GistMatch, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	match, err := newMatcher(opts.Query, opts.CaseSensitive, opts.SimpleMatch)
	if err != nil {
		return nil, err
	}

	records, err := s.backend.ListGists(ctx, github.GistQuery{
		Query: opts.Query,
		Limit: opts.Limit,
		Since: opts.Since,
	})
	if err != nil {
		return nil, err
	}
	s.output.Infof("%d gist files listed", len(records))

	records, err = filterByFilename(records, opts.Filename)
	if err != nil {
		return nil, err
	}
	if len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	return s.fetchMatches(ctx, records, match, opts)
}

// fetchMatches fetches each record's content and finds its first matching
// line. Results are returned in record order regardless of concurrency.
func (s *Searcher) fetchMatches(ctx context.Context, records []github.GistRecord, match matcher, opts *GistOptions) ([]GistMatch, error) {
	if len(records) == 0 {
		return []GistMatch{}, nil
	}

	jobs := max(opts.Jobs, 1)
	found := make([]*GistMatch, len(records))

	var wg sync.WaitGroup
	var errorCount atomic.Int32
	sem := semaphore.NewWeighted(int64(jobs))

	for i, record := range records {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i int, record github.GistRecord) {
			defer wg.Done()
			defer sem.Release(1)

			m, err := s.fetchMatch(ctx, record, match, opts.IncludeContent)
			if err != nil {
				errorCount.Add(1)
				s.output.Warningf("%s (%s): %v", record.ID, record.Filename, err)
				return
			}
			found[i] = m
		}(i, record)
	}

	wg.Wait()

	// A single failed gist is only a warning, like any other per-gist failure.
	if len(records) > 1 && int(errorCount.Load()) == len(records) {
		return nil, github.Errorf(github.KindExternalTool, "failed to fetch all %d gists", len(records))
	}

	matches := make([]GistMatch, 0, len(records))
	for _, m := range found {
		if m != nil {
			matches = append(matches, *m)
		}
	}
	return matches, nil
}

// fetchMatch returns nil when the gist has no matching line.
func (s *Searcher) fetchMatch(ctx context.Context, record github.GistRecord, match matcher, includeContent bool) (*GistMatch, error) {
	content, err := s.backend.GistContent(ctx, record.ID, record.Filename)
	if err != nil {
		return nil, err
	}

	line, text, ok := firstMatch(content, match)
	if !ok {
		return nil, nil
	}

	m := &GistMatch{
		ID:       record.ID,
		Filename: record.Filename,
		Line:     line,
	}
	if includeContent {
		m.Text = text
	}
	return m, nil
}
