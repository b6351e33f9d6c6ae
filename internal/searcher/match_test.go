package searcher

import (
	"testing"

	"github.com/jparise/gh-search/internal/github"
)

func TestNewMatcher(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		caseSensitive bool
		simple        bool
		line          string
		want          bool
	}{
		// Default: case-insensitive regexp
		{name: "literal text", query: "iex", line: "iwr https://x | iex", want: true},
		{name: "case-insensitive by default", query: "INVOKE-WEBREQUEST", line: "Invoke-WebRequest https://x", want: true},
		{name: "regexp", query: `install\.ps1`, line: "https://chocolatey.org/install.ps1", want: true},
		{name: "regexp anchors", query: "^iex", line: "iwr | iex", want: false},
		{name: "no match", query: "boxstarter", line: "unrelated", want: false},

		// Case-sensitive
		{name: "case-sensitive match", query: "Invoke", caseSensitive: true, line: "Invoke-WebRequest", want: true},
		{name: "case-sensitive no match", query: "invoke", caseSensitive: true, line: "Invoke-WebRequest", want: false},

		// Simple match
		{name: "simple match metacharacters", query: "a.b", simple: true, line: "axb", want: false},
		{name: "simple match literal", query: "a.b", simple: true, line: "x a.b y", want: true},
		{name: "simple match ignores case", query: "A.B", simple: true, line: "a.b", want: true},
		{name: "simple match case-sensitive", query: "A.B", simple: true, caseSensitive: true, line: "a.b", want: false},
		{name: "simple match invalid regexp is fine", query: "(", simple: true, line: "f(x)", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := newMatcher(tt.query, tt.caseSensitive, tt.simple)
			if err != nil {
				t.Fatalf("newMatcher(%q) unexpected error: %v", tt.query, err)
			}
			if got := match(tt.line); got != tt.want {
				t.Errorf("match(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := newMatcher("(unclosed", false, false)
	if kind := github.KindOf(err); kind != github.KindValidation {
		t.Errorf("newMatcher() error = %v, want kind %q", err, github.KindValidation)
	}
}

func TestFirstMatch(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		query    string
		wantLine int
		wantText string
		wantOK   bool
	}{
		{
			name:     "first line",
			content:  "iex here\nand here",
			query:    "iex",
			wantLine: 1,
			wantText: "iex here",
			wantOK:   true,
		},
		{
			name:     "only first of several matches",
			content:  "alpha\niex one\nbeta\niex two\n",
			query:    "iex",
			wantLine: 2,
			wantText: "iex one",
			wantOK:   true,
		},
		{
			name:     "CRLF content",
			content:  "alpha\r\nIEX\r\n",
			query:    "iex",
			wantLine: 2,
			wantText: "IEX",
			wantOK:   true,
		},
		{
			name:    "no match",
			content: "alpha\nbeta\n",
			query:   "gamma",
			wantOK:  false,
		},
		{
			name:    "empty content",
			content: "",
			query:   "x",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := newMatcher(tt.query, false, false)
			if err != nil {
				t.Fatalf("newMatcher(%q) unexpected error: %v", tt.query, err)
			}

			line, text, ok := firstMatch(tt.content, match)
			if ok != tt.wantOK {
				t.Fatalf("firstMatch() ok = %v, want %v", ok, tt.wantOK)
			}
			if line != tt.wantLine || text != tt.wantText {
				t.Errorf("firstMatch() = (%d, %q), want (%d, %q)", line, text, tt.wantLine, tt.wantText)
			}
		})
	}
}
