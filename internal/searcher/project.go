package searcher

import (
	"cmp"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jparise/gh-search/internal/github"
)

// fragmentSeparator joins the text-match fragments of a single result.
const fragmentSeparator = " … "

// RepoMatch is a single code search match.
type RepoMatch struct {
	Repository string `json:"repository"`
	Path       string `json:"path"`
	URL        string `json:"url"`
	Match      string `json:"match"`
}

// RepoSummary names a repository with at least one match.
type RepoSummary struct {
	Repository string `json:"repository"`
}

// Summarize reduces results to their distinct repositories, sorted by name.
func Summarize(results []github.CodeResult) []RepoSummary {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Repository)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	summaries := make([]RepoSummary, len(names))
	for i, name := range names {
		summaries[i] = RepoSummary{Repository: name}
	}
	return summaries
}

// Detail projects every result to a RepoMatch, sorted by repository. Matches
// within the same repository keep their original order.
func Detail(results []github.CodeResult) []RepoMatch {
	matches := make([]RepoMatch, len(results))
	for i, r := range results {
		matches[i] = RepoMatch{
			Repository: r.Repository,
			Path:       r.Path,
			URL:        r.URL,
			Match:      strings.Join(r.Fragments, fragmentSeparator),
		}
	}

	slices.SortStableFunc(matches, func(a, b RepoMatch) int {
		return cmp.Compare(a.Repository, b.Repository)
	})
	return matches
}

// validatePatterns rejects malformed glob patterns before any search runs.
func validatePatterns(patterns ...string) error {
	for _, pattern := range patterns {
		if pattern != "" && !doublestar.ValidatePattern(pattern) {
			return github.Errorf(github.KindValidation, "invalid pattern %q", pattern)
		}
	}
	return nil
}

// filterByExcludes drops results whose path matches any exclude pattern.
// Patterns containing a slash are matched against the full path, others
// against the basename.
func filterByExcludes(results []github.CodeResult, excludes []string) ([]github.CodeResult, error) {
	if len(excludes) == 0 {
		return results, nil
	}

	filtered := make([]github.CodeResult, 0, len(results))
	for _, result := range results {
		excluded := false
		for _, pattern := range excludes {
			matched, err := matchPath(pattern, result.Path)
			if err != nil {
				return nil, err
			}
			if matched {
				excluded = true
				break
			}
		}

		if !excluded {
			filtered = append(filtered, result)
		}
	}

	return filtered, nil
}

// filterByFilename keeps records whose filename matches pattern.
func filterByFilename(records []github.GistRecord, pattern string) ([]github.GistRecord, error) {
	if pattern == "" {
		return records, nil
	}

	var filtered []github.GistRecord
	for _, record := range records {
		matched, err := matchPath(pattern, record.Filename)
		if err != nil {
			return nil, err
		}
		if matched {
			filtered = append(filtered, record)
		}
	}

	return filtered, nil
}

func matchPath(pattern, p string) (bool, error) {
	if !strings.Contains(pattern, "/") {
		p = path.Base(p)
	}

	matched, err := doublestar.Match(pattern, p)
	if err != nil {
		return false, github.Wrap(github.KindValidation, err, "pattern %q failed to match path %q", pattern, p)
	}
	return matched, nil
}
