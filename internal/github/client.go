// Package github provides the GitHub search backends for gh-search.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
)

const (
	pageSize = 100

	// defaultCodeLimit matches the `gh search code` default.
	defaultCodeLimit = 30

	textMatchMediaType = "application/vnd.github.text-match+json"
)

// ClientOptions configures the GitHub API client.
type ClientOptions struct {
	AuthToken    string
	Host         string
	CacheDir     string
	CacheTTL     time.Duration
	DisableCache bool
	Timeout      time.Duration
}

// Client implements Backend on top of the go-gh REST client.
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a new GitHub API client with the given options.
func NewClient(opts ClientOptions) (*Client, error) {
	apiOpts := api.ClientOptions{
		AuthToken:   opts.AuthToken,
		Host:        opts.Host,
		CacheDir:    opts.CacheDir,
		CacheTTL:    opts.CacheTTL,
		EnableCache: !opts.DisableCache,
		Timeout:     opts.Timeout,
		Headers: map[string]string{
			"Accept": textMatchMediaType,
		},
	}

	rest, err := api.NewRESTClient(apiOpts)
	if err != nil {
		return nil, Wrap(KindDependencyMissing, err, "failed to create GitHub client (is gh authenticated?)")
	}

	return &Client{
		rest: rest,
	}, nil
}

// do issues a GET request and classifies any failure.
func (c *Client) do(ctx context.Context, endpoint string, response any) error {
	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, response)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Wrap(KindDecode, err, "failed to decode response from %s", endpoint)
	}
	return Wrap(KindExternalTool, err, "request to %s failed", endpoint)
}

// buildCodeQuery appends search qualifiers to the free-text query.
func buildCodeQuery(q CodeQuery) string {
	terms := []string{q.Query}
	if q.Owner != "" {
		terms = append(terms, "user:"+q.Owner)
	}
	if q.Language != "" {
		terms = append(terms, "language:"+q.Language)
	}
	if q.Extension != "" {
		terms = append(terms, "extension:"+strings.TrimPrefix(q.Extension, "."))
	}
	return strings.Join(terms, " ")
}

type codeSearchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Path       string `json:"path"`
		HTMLURL    string `json:"html_url"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
		TextMatches []struct {
			Fragment string `json:"fragment"`
		} `json:"text_matches"`
	} `json:"items"`
}

// SearchCode queries the code search API, following pages until the limit
// is reached or the results run out.
func (c *Client) SearchCode(ctx context.Context, q CodeQuery) ([]CodeResult, error) {
	if q.Query == "" {
		return nil, Errorf(KindValidation, "search query is required")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultCodeLimit
	}
	perPage := min(limit, pageSize)
	query := url.QueryEscape(buildCodeQuery(q))

	var results []CodeResult
	for page := 1; len(results) < limit; page++ {
		endpoint := fmt.Sprintf("search/code?q=%s&per_page=%d&page=%d", query, perPage, page)

		var response codeSearchResponse
		if err := c.do(ctx, endpoint, &response); err != nil {
			return nil, err
		}

		for _, item := range response.Items {
			result := CodeResult{
				Path:       item.Path,
				URL:        item.HTMLURL,
				Repository: item.Repository.FullName,
			}
			for _, m := range item.TextMatches {
				result.Fragments = append(result.Fragments, m.Fragment)
			}
			results = append(results, result)
		}

		if len(response.Items) < perPage {
			break
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

type gistFile struct {
	Filename  string `json:"filename"`
	RawURL    string `json:"raw_url"`
	Truncated bool   `json:"truncated"`
	Content   string `json:"content"`
}

type gist struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Files       map[string]gistFile `json:"files"`
}

// sortedFiles returns the gist's files ordered by name.
func (g gist) sortedFiles() []gistFile {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, name)
	}
	slices.Sort(names)

	files := make([]gistFile, 0, len(names))
	for _, name := range names {
		file := g.Files[name]
		if file.Filename == "" {
			file.Filename = name
		}
		files = append(files, file)
	}
	return files
}

// ListGists lists the authenticated user's gists, one record per file.
//
// The listing endpoint does not return file content, so every file of up to
// q.Limit gists is returned and content matching is left to the caller.
func (c *Client) ListGists(ctx context.Context, q GistQuery) ([]GistRecord, error) {
	if q.Query == "" {
		return nil, Errorf(KindValidation, "search query is required")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = pageSize
	}
	perPage := min(limit, pageSize)

	var since string
	if q.Since != nil {
		since = "&since=" + url.QueryEscape(q.Since.UTC().Format(time.RFC3339))
	}

	var records []GistRecord
	gistCount := 0
	for page := 1; gistCount < limit; page++ {
		endpoint := fmt.Sprintf("gists?per_page=%d&page=%d%s", perPage, page, since)

		var gists []gist
		if err := c.do(ctx, endpoint, &gists); err != nil {
			return nil, err
		}

		for _, g := range gists {
			if gistCount == limit {
				break
			}
			gistCount++

			for _, file := range g.sortedFiles() {
				records = append(records, GistRecord{
					ID:          g.ID,
					Filename:    file.Filename,
					Description: g.Description,
				})
			}
		}

		if len(gists) < perPage {
			break
		}
	}

	return records, nil
}

// GistContent fetches a gist and returns the content of the named file, or
// of every file when filename is empty.
func (c *Client) GistContent(ctx context.Context, id, filename string) (string, error) {
	var g gist
	if err := c.do(ctx, "gists/"+url.PathEscape(id), &g); err != nil {
		return "", err
	}

	var contents []string
	for _, file := range g.sortedFiles() {
		if filename != "" && file.Filename != filename {
			continue
		}

		content := file.Content
		if file.Truncated && file.RawURL != "" {
			raw, err := c.raw(ctx, file.RawURL)
			if err != nil {
				return "", err
			}
			content = raw
		}
		contents = append(contents, content)
	}

	if filename != "" && len(contents) == 0 {
		return "", Errorf(KindExternalTool, "gist %s has no file named %q", id, filename)
	}

	return strings.Join(contents, "\n"), nil
}

// raw downloads a truncated gist file from its raw URL.
func (c *Client) raw(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.rest.RequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", Wrap(KindExternalTool, err, "failed to download %s", rawURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Wrap(KindExternalTool, err, "failed to read %s", rawURL)
	}
	return string(body), nil
}
