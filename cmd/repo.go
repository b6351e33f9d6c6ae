package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jparise/gh-search/internal/searcher"
	"github.com/spf13/cobra"
)

var repoOpts searcher.RepoOptions

var repoCmd = &cobra.Command{
	Use:   "repo <query>",
	Short: "Search code across GitHub repositories",
	Long: `Search code across GitHub repositories.

Each match is listed with its repository, path, URL, and the matched text
fragments. With --summary, only the distinct repositories are listed.`,
	Example: `  gh-search repo "Invoke-WebRequest" --owner chocolatey
  gh-search repo "iex" --summary --language powershell
  gh-search repo "install" --extension ps1 --exclude "*_test.ps1"`,
	Args: validArgs(cobra.MaximumNArgs(1)),
	RunE: runRepo,
}

func init() {
	flags := repoCmd.Flags()
	flags.StringVar(&repoOpts.Owner, "owner", "",
		"restrict the search to repositories owned by this user or organization")
	flags.BoolVar(&repoOpts.Summary, "summary", false,
		"list each matching repository once")
	flags.IntVarP(&repoOpts.Limit, "limit", "L", 0,
		"maximum number of results (default: backend default)")
	flags.StringVar(&repoOpts.Language, "language", "",
		"restrict the search to a language")
	flags.StringVar(&repoOpts.Extension, "extension", "",
		"restrict the search to a file extension")
	flags.StringArrayVarP(&repoOpts.Excludes, "exclude", "E", []string{},
		"exclude paths matching a glob (can be specified multiple times)")
}

func runRepo(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := repoOpts
	opts.Query = queryArg(args)
	if err := opts.Validate(); err != nil {
		return err
	}

	s, err := newSearcher(cmd)
	if err != nil {
		return err
	}
	return s.SearchRepos(ctx, &opts)
}
