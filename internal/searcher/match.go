package searcher

import (
	"regexp"
	"strings"

	"github.com/jparise/gh-search/internal/github"
)

// matcher reports whether a line matches the query.
type matcher func(line string) bool

// newMatcher builds a line matcher for query. By default the query is a
// case-insensitive regular expression.
func newMatcher(query string, caseSensitive, simple bool) (matcher, error) {
	if simple {
		if caseSensitive {
			return func(line string) bool { return strings.Contains(line, query) }, nil
		}
		lowered := strings.ToLower(query)
		return func(line string) bool {
			return strings.Contains(strings.ToLower(line), lowered)
		}, nil
	}

	flags := ""
	if !caseSensitive {
		flags = "(?i)"
	}
	re, err := regexp.Compile(flags + query)
	if err != nil {
		return nil, github.Wrap(github.KindValidation, err, "invalid pattern %q (use --simple-match to search literally)", query)
	}
	return re.MatchString, nil
}

// firstMatch returns the 1-based number and text of the first line in
// content accepted by match.
func firstMatch(content string, match matcher) (int, string, bool) {
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if match(line) {
			return i + 1, line, true
		}
	}
	return 0, "", false
}
