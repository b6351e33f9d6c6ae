package github

import (
	"strings"
)

const (
	// gistIDLen is the width of the id column in `gh gist list` output. The
	// filename starts after a single separator space.
	gistIDLen = 32

	// contentIndent is the minimum indentation of a content snippet line.
	// Anything indented less (but at all) is a description line.
	contentIndent = 8
)

// ParseGistListing parses the output of `gh gist list --include-content`.
//
// The format is indentation coded:
//
//	<32-char id> <filename>
//	    <description>
//	        <matching content line>
//	        <more matching content lines...>
//
// Each unindented line starts a new record. The first description-level line
// after it is the description and the first content-level line is the
// content snippet; both are trimmed and both are optional. Blank lines are
// skipped.
func ParseGistListing(text string) ([]GistRecord, error) {
	var records []GistRecord
	var current *GistRecord
	var haveDescription, haveContent bool

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == 0 {
			record, err := parseGistHeader(line)
			if err != nil {
				return nil, Wrap(KindParse, err, "gist listing line %d: %q", i+1, line)
			}
			records = append(records, record)
			current = &records[len(records)-1]
			haveDescription, haveContent = false, false
			continue
		}

		if current == nil {
			return nil, Errorf(KindParse, "gist listing line %d: %q: indented line before any gist", i+1, line)
		}

		switch {
		case indent >= contentIndent:
			if !haveContent {
				current.Content = strings.TrimSpace(line)
				haveContent = true
			}
		case !haveDescription && !haveContent:
			current.Description = strings.TrimSpace(line)
			haveDescription = true
		}
	}

	return records, nil
}

func parseGistHeader(line string) (GistRecord, error) {
	if len(line) <= gistIDLen {
		return GistRecord{}, Errorf(KindParse, "line is %d characters, expected at least %d", len(line), gistIDLen+1)
	}
	if line[gistIDLen] != ' ' {
		return GistRecord{}, Errorf(KindParse, "expected a space after the %d-character gist id", gistIDLen)
	}

	return GistRecord{
		ID:       line[:gistIDLen],
		Filename: line[gistIDLen+1:],
	}, nil
}
