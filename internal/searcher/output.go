package searcher

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/jparise/gh-search/internal/github"
	"github.com/mgutz/ansi"
)

// Format selects how result rows are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// OutputOptions configures an Output.
type OutputOptions struct {
	Format   Format
	Colorize bool
	IsTTY    bool // Truncate table columns to Width
	Width    int
	Verbose  bool // Write Infof messages
}

// Output handles all output formatting with optional color support.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	opts   OutputOptions

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
}

// NewOutput creates a new Output.
func NewOutput(stdout, stderr io.Writer, opts OutputOptions) *Output {
	if opts.Format == "" {
		opts.Format = FormatTable
	}

	color := func(name string) func(string) string {
		if opts.Colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		opts:   opts,
		cyan:   color("cyan"),
		green:  color("green+b"),
		white:  color("white"),
		yellow: color("yellow"),
		red:    color("red+b"),
	}
}

// column is a single table column.
type column struct {
	header string
	color  func(string) string
}

// RepoSummaries writes one row per repository.
func (o *Output) RepoSummaries(summaries []RepoSummary) error {
	columns := []column{{"REPOSITORY", o.cyan}}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.Repository}
	}
	return o.write(columns, rows, summaries)
}

// RepoMatches writes one row per code search match.
func (o *Output) RepoMatches(matches []RepoMatch) error {
	columns := []column{
		{"REPOSITORY", o.cyan},
		{"PATH", o.green},
		{"URL", o.white},
		{"MATCH", nil},
	}
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{m.Repository, m.Path, m.URL, m.Match}
	}
	return o.write(columns, rows, matches)
}

// GistMatches writes one row per matching gist file. The MATCH column is
// present only when includeContent is set.
func (o *Output) GistMatches(matches []GistMatch, includeContent bool) error {
	columns := []column{
		{"ID", o.cyan},
		{"FILENAME", o.green},
		{"LINE", o.yellow},
	}
	if includeContent {
		columns = append(columns, column{"MATCH", nil})
	}

	rows := make([][]string, len(matches))
	for i, m := range matches {
		row := []string{m.ID, m.Filename, strconv.Itoa(m.Line)}
		if includeContent {
			row = append(row, m.Text)
		}
		rows[i] = row
	}
	return o.write(columns, rows, matches)
}

func (o *Output) write(columns []column, rows [][]string, records any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.opts.Format {
	case FormatJSON:
		return o.writeJSON(records)
	case FormatCSV:
		return o.writeCSV(columns, rows)
	default:
		return o.writeTable(columns, rows)
	}
}

func (o *Output) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return jsonpretty.Format(o.stdout, bytes.NewReader(data), "  ", o.opts.Colorize)
}

func (o *Output) writeCSV(columns []column, rows [][]string) error {
	w := csv.NewWriter(o.stdout)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToLower(c.header)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func (o *Output) writeTable(columns []column, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	tp := tableprinter.New(o.stdout, o.opts.IsTTY, o.opts.Width)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.header
	}
	tp.AddHeader(header)

	for _, row := range rows {
		for i, field := range row {
			field = oneLine(field)
			if color := columns[i].color; color != nil {
				tp.AddField(field, tableprinter.WithColor(color))
			} else {
				tp.AddField(field)
			}
		}
		tp.EndRow()
	}

	return tp.Render()
}

// oneLine collapses runs of whitespace (including newlines) in a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// errorResult is the JSON form of a failed search.
type errorResult struct {
	Status   string   `json:"status"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Trace    []string `json:"trace,omitempty"`
}

// Error reports a failed search. With JSON output the failure is written to
// stdout as an object; otherwise it goes to stderr.
func (o *Output) Error(err error) {
	kind := github.KindOf(err)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.opts.Format == FormatJSON {
		result := errorResult{
			Status:   "error",
			Category: string(kind),
			Message:  err.Error(),
			Trace:    trace(err),
		}
		if o.writeJSON(result) == nil {
			return
		}
	}

	label := "Error:"
	if kind != github.KindUnknown {
		label = fmt.Sprintf("Error (%s):", kind)
	}
	fmt.Fprintf(o.stderr, "%s %s\n", o.red(label), err)
}

// trace lists the messages of each error wrapped by err.
func trace(err error) []string {
	var causes []string
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		causes = append(causes, cause.Error())
	}
	return causes
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr in verbose mode.
func (o *Output) Infof(format string, args ...any) {
	if !o.opts.Verbose {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}
