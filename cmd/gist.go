package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jparise/gh-search/internal/github"
	"github.com/jparise/gh-search/internal/searcher"
	"github.com/jparise/gh-search/internal/timeparse"
	"github.com/spf13/cobra"
)

var (
	gistOpts = searcher.GistOptions{Limit: searcher.DefaultGistLimit}
	since    string
)

var gistCmd = &cobra.Command{
	Use:   "gist <query>",
	Short: "Search your gists",
	Long: `Search the authenticated user's gists.

Candidate gists are listed by GitHub, then each file's content is fetched and
searched line by line. The query is a case-insensitive regular expression
unless --case-sensitive or --simple-match is given. Only the first matching
line of each file is reported.`,
	Example: `  gh-search gist "BoxStarter" --include-content
  gh-search gist "iex" --filename "*.ps1" --jobs 8
  gh-search gist "choco" --since 2w --backend api`,
	Args: validArgs(cobra.MaximumNArgs(1)),
	RunE: runGist,
}

func init() {
	flags := gistCmd.Flags()
	flags.BoolVar(&gistOpts.IncludeContent, "include-content", false,
		"include the matching line in the output")
	flags.IntVarP(&gistOpts.Limit, "limit", "L", searcher.DefaultGistLimit,
		"maximum number of gists to list")
	flags.StringVar(&gistOpts.Filename, "filename", "",
		"only search files whose name matches a glob")
	flags.BoolVarP(&gistOpts.CaseSensitive, "case-sensitive", "s", false,
		"match case exactly")
	flags.BoolVarP(&gistOpts.SimpleMatch, "simple-match", "F", false,
		"match the query as a literal string instead of a regular expression")
	flags.StringVar(&since, "since", "",
		"only gists updated since a time (e.g., 2d, 3weeks, 2024-01-31); api backend only")
}

// parseSince converts the --since flag into an absolute time.
func parseSince(value string, now time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timeparse.ParseSince(value, now)
	if err != nil {
		return nil, github.Wrap(github.KindValidation, err, "invalid --since")
	}
	return &t, nil
}

func runGist(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := gistOpts
	opts.Query = queryArg(args)
	opts.Jobs = jobs

	var err error
	if opts.Since, err = parseSince(since, time.Now()); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	s, err := newSearcher(cmd)
	if err != nil {
		return err
	}
	return s.SearchGists(ctx, &opts)
}
