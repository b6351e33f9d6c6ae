package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/gh-search/internal/github"
	"github.com/jparise/gh-search/internal/searcher"
	"github.com/jparise/gh-search/internal/timeparse"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

// formatMode selects the result format.
type formatMode string

func (f *formatMode) String() string {
	return string(*f)
}

func (f *formatMode) Set(v string) error {
	switch searcher.Format(v) {
	case searcher.FormatTable, searcher.FormatJSON, searcher.FormatCSV:
		*f = formatMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"table\", \"json\", or \"csv\"")
	}
}

func (f *formatMode) Type() string {
	return "format"
}

// backendKind selects how searches reach GitHub.
type backendKind string

const (
	backendGH  backendKind = "gh"
	backendAPI backendKind = "api"
)

func (b *backendKind) String() string {
	return string(*b)
}

func (b *backendKind) Set(v string) error {
	switch v {
	case "gh", "api":
		*b = backendKind(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"gh\" or \"api\"")
	}
}

func (b *backendKind) Type() string {
	return "backend"
}

// ttlValue is a duration flag that also accepts days and weeks ("2d", "1w").
type ttlValue time.Duration

func (d *ttlValue) String() string {
	return time.Duration(*d).String()
}

func (d *ttlValue) Set(v string) error {
	if parsed, err := time.ParseDuration(v); err == nil {
		*d = ttlValue(parsed)
		return nil
	}
	parsed, err := timeparse.ParseDuration(v)
	if err != nil {
		return err
	}
	*d = ttlValue(parsed)
	return nil
}

func (d *ttlValue) Type() string {
	return "duration"
}

var (
	_ pflag.Value = (*colorMode)(nil)
	_ pflag.Value = (*formatMode)(nil)
	_ pflag.Value = (*backendKind)(nil)
	_ pflag.Value = (*ttlValue)(nil)
)

var (
	version = "dev"

	// Persistent flags.
	color    = colorAuto
	format   = formatMode(searcher.FormatTable)
	backend  = backendGH
	timeout  time.Duration
	jobs     int
	verbose  bool
	noCache  bool
	cacheDir string
	cacheTTL = ttlValue(24 * time.Hour)
)

var rootCmd = &cobra.Command{
	Use:   "gh-search <command>",
	Short: "Search GitHub code and gists",
	Long: `gh-search searches GitHub code and gists through the gh CLI.

By default every search runs the gh executable, which must be installed and
authenticated. Use --backend api to call the GitHub REST API directly with
gh's stored credentials instead.

Results are printed as a table, or as JSON or CSV with --format.

Examples:
  gh-search repo "Invoke-WebRequest" --owner chocolatey
  gh-search repo --summary "iex" --language powershell
  gh-search gist "BoxStarter" --include-content
  gh-search gist --format json --jobs 4 --since 2w "chocolatey"`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if jobs < 1 || jobs > 100 {
			return github.Errorf(github.KindValidation, "--jobs must be between 1 and 100, got %d", jobs)
		}
		if timeout <= 0 {
			return github.Errorf(github.KindValidation, "--timeout must be positive, got %s", timeout)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Var(&color, "color",
		"colorize output: auto, always, never")
	flags.Var(&format, "format",
		"output format: table, json, csv")
	flags.Var(&backend, "backend",
		"search backend: gh (run the gh executable) or api (call the REST API)")
	flags.DurationVar(&timeout, "timeout", github.DefaultTimeout,
		"maximum time for each GitHub request")
	flags.IntVarP(&jobs, "jobs", "j", 1,
		"maximum concurrent gist content fetches")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"print progress information to stderr")
	flags.BoolVar(&noCache, "no-cache", false,
		"api backend: bypass cache, always fetch fresh data")
	flags.StringVar(&cacheDir, "cache-dir", "",
		"api backend: override cache directory location")
	flags.Var(&cacheTTL, "cache-ttl",
		"api backend: cache time-to-live (e.g., 30m, 1h, 2d)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return github.Wrap(github.KindValidation, err, "invalid usage")
	})
	rootCmd.AddCommand(repoCmd, gistCmd)
}

// validArgs reports argument count errors as validation errors.
func validArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return github.Wrap(github.KindValidation, err, "invalid usage")
		}
		return nil
	}
}

// Execute runs the root command. Errors are reported before returning.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		newOutput(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).Error(err)
	}
	return err
}

// newOutput builds the output writer from the persistent flags.
func newOutput(stdout, stderr io.Writer) *searcher.Output {
	terminal := term.FromEnv()

	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		colorize = terminal.IsColorEnabled()
	}

	opts := searcher.OutputOptions{
		Format:   searcher.Format(format),
		Colorize: colorize,
		Verbose:  verbose,
	}
	if stdout == os.Stdout && terminal.IsTerminalOutput() {
		opts.IsTTY = true
		if width, _, err := terminal.Size(); err == nil {
			opts.Width = width
		}
	}

	return searcher.NewOutput(stdout, stderr, opts)
}

// newBackend builds the selected search backend.
func newBackend(output *searcher.Output) (github.Backend, error) {
	switch backend {
	case backendAPI:
		host, _ := auth.DefaultHost()
		token, _ := auth.TokenForHost(host)
		if token == "" {
			return nil, github.Errorf(github.KindDependencyMissing,
				"no GitHub token for %s; run `gh auth login` or set GH_TOKEN", host)
		}
		client, err := github.NewClient(github.ClientOptions{
			AuthToken:    token,
			Host:         host,
			CacheDir:     cacheDir,
			CacheTTL:     time.Duration(cacheTTL),
			DisableCache: noCache,
			Timeout:      timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return github.NewExecBackend(github.ExecOptions{
			Timeout: timeout,
			Logf:    output.Infof,
		}), nil
	}
}

// newSearcher wires the output and backend for a command.
func newSearcher(cmd *cobra.Command) (*searcher.Searcher, error) {
	output := newOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	b, err := newBackend(output)
	if err != nil {
		return nil, err
	}
	return searcher.New(b, output), nil
}

// queryArg returns the optional positional query. A missing query is left
// empty so that it is rejected like an explicitly empty one.
func queryArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
