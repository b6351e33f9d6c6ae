package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	gh "github.com/cli/go-gh/v2"
)

// DefaultTimeout bounds a single gh invocation.
const DefaultTimeout = 30 * time.Second

// codeSearchFields are the JSON fields requested from `gh search code`.
const codeSearchFields = "repository,path,url,textMatches"

type runFunc func(ctx context.Context, args ...string) (stdout, stderr bytes.Buffer, err error)

// ExecOptions configures the gh subprocess backend.
type ExecOptions struct {
	Timeout time.Duration                    // Per-invocation timeout (0 = DefaultTimeout)
	Logf    func(format string, args ...any) // Receives each invocation (optional)
}

// ExecBackend implements Backend by running the gh executable.
type ExecBackend struct {
	timeout  time.Duration
	logf     func(format string, args ...any)
	lookPath func() (string, error)
	run      runFunc
}

// NewExecBackend creates a backend that shells out to gh.
func NewExecBackend(opts ExecOptions) *ExecBackend {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &ExecBackend{
		timeout:  timeout,
		logf:     logf,
		lookPath: gh.Path,
		run:      gh.ExecContext,
	}
}

// exec runs gh with args and returns its standard output.
func (b *ExecBackend) exec(ctx context.Context, args ...string) ([]byte, error) {
	if _, err := b.lookPath(); err != nil {
		return nil, Wrap(KindDependencyMissing, err, "gh executable not found (install it from https://cli.github.com)")
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.logf("running gh %s", strings.Join(args, " "))

	stdout, stderr, err := b.run(ctx, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, Wrap(KindExternalTool, ctx.Err(), "gh %s timed out after %s", args[0], b.timeout)
		}
		// go-gh folds stderr into its error; keep only the exit status as the
		// cause so the message is not repeated.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = exitErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, Wrap(KindExternalTool, err, "gh %s failed: %s", args[0], msg)
		}
		return nil, Wrap(KindExternalTool, err, "gh %s failed", args[0])
	}

	return stdout.Bytes(), nil
}

// SearchCode runs `gh search code` and decodes its JSON output.
func (b *ExecBackend) SearchCode(ctx context.Context, q CodeQuery) ([]CodeResult, error) {
	if q.Query == "" {
		return nil, Errorf(KindValidation, "search query is required")
	}

	out, err := b.exec(ctx, codeSearchArgs(q)...)
	if err != nil {
		return nil, err
	}

	return decodeCodeResults(out)
}

// ListGists runs `gh gist list` and parses its indented listing.
func (b *ExecBackend) ListGists(ctx context.Context, q GistQuery) ([]GistRecord, error) {
	if q.Query == "" {
		return nil, Errorf(KindValidation, "search query is required")
	}
	if q.Since != nil {
		return nil, Errorf(KindValidation, "filtering gists by date requires the api backend")
	}

	out, err := b.exec(ctx, gistListArgs(q)...)
	if err != nil {
		return nil, err
	}

	return ParseGistListing(string(out))
}

// GistContent runs `gh gist view --raw` for a single gist.
func (b *ExecBackend) GistContent(ctx context.Context, id, filename string) (string, error) {
	out, err := b.exec(ctx, gistViewArgs(id, filename)...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func codeSearchArgs(q CodeQuery) []string {
	args := []string{"search", "code", q.Query}
	if q.Owner != "" {
		args = append(args, "--owner="+q.Owner)
	}
	if q.Language != "" {
		args = append(args, "--language="+q.Language)
	}
	if q.Extension != "" {
		args = append(args, "--extension="+q.Extension)
	}
	if q.Limit > 0 {
		args = append(args, "--limit="+strconv.Itoa(q.Limit))
	}
	return append(args, "--json", codeSearchFields)
}

func gistListArgs(q GistQuery) []string {
	return []string{
		"gist", "list",
		"--filter", q.Query,
		"--include-content",
		"--limit", strconv.Itoa(q.Limit),
	}
}

func gistViewArgs(id, filename string) []string {
	args := []string{"gist", "view", id, "--raw"}
	if filename != "" {
		args = append(args, "--filename", filename)
	}
	return args
}

// ghCodeResult mirrors an entry of `gh search code --json` output.
type ghCodeResult struct {
	Path       string `json:"path"`
	URL        string `json:"url"`
	Repository struct {
		NameWithOwner string `json:"nameWithOwner"`
	} `json:"repository"`
	TextMatches []struct {
		Fragment string `json:"fragment"`
	} `json:"textMatches"`
}

func decodeCodeResults(data []byte) ([]CodeResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw []ghCodeResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Wrap(KindDecode, err, "failed to decode code search results")
	}

	results := make([]CodeResult, 0, len(raw))
	for _, r := range raw {
		result := CodeResult{
			Path:       r.Path,
			URL:        r.URL,
			Repository: r.Repository.NameWithOwner,
		}
		for _, m := range r.TextMatches {
			result.Fragments = append(result.Fragments, m.Fragment)
		}
		results = append(results, result)
	}

	return results, nil
}
