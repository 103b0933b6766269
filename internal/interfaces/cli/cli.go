package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/no-draw-tracker/external/soccerstats"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	// ExitTomorrow means the next match is exactly one day away.
	ExitTomorrow = 0
	// ExitNotTomorrow covers a match further out and invalid usage.
	ExitNotTomorrow = 1
	ExitNoMatch     = 2
	ExitFailure     = 3
)

type MatchFinder interface {
	FindNextMatch(ctx context.Context, team string) (usecase.NextMatch, bool, error)
}

type RowDumper interface {
	DebugFixtureRows(ctx context.Context, pageURL string, limit int) ([]soccerstats.DebugRow, error)
}

// Deps are the collaborators the commands run against.
type Deps struct {
	Finder MatchFinder
	Dumper RowDumper
	Stdout io.Writer
	Stderr io.Writer
}

type runner struct {
	deps   Deps
	code   int
	format string
	url    string
	limit  int
}

// NewRootCmd builds the nextmatch command tree. The exit code of the last run
// is available through the returned func; flag and argument errors map to ExitNotTomorrow.
func NewRootCmd(deps Deps) (*cobra.Command, func() int) {
	r := &runner{deps: deps, code: ExitNotTomorrow}

	cmd := &cobra.Command{
		Use:   "nextmatch <team name...>",
		Short: "Find a team's next fixture across the configured competitions",
		Long: `Find a team's next fixture across the configured competitions.
Exit codes: 0 match is tomorrow, 1 match is later or invalid usage,
2 no upcoming match, 3 unexpected failure.`,
		Example:       "  nextmatch Volos\n  nextmatch --format json Manchester United",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.runNextMatch,
	}
	cmd.PersistentFlags().StringVar(&r.format, "format", string(FormatText), "Output format: text or json")
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	debug := &cobra.Command{
		Use:           "debug",
		Short:         "Print the first fixture-looking rows of a page",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.runDebug,
	}
	debug.Flags().StringVar(&r.url, "url", "", "Page URL to inspect (required)")
	debug.Flags().IntVar(&r.limit, "limit", 5, "Maximum number of rows to print")
	_ = debug.MarkFlagRequired("url")
	cmd.AddCommand(debug)

	return cmd, func() int { return r.code }
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, deps Deps, args []string) int {
	cmd, exitCode := NewRootCmd(deps)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		code := exitCode()
		if code == ExitTomorrow {
			code = ExitFailure
		}
		return code
	}
	return exitCode()
}

func (r *runner) runNextMatch(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(r.format)
	if err != nil {
		r.code = ExitNotTomorrow
		return err
	}

	team := strings.TrimSpace(strings.Join(args, " "))
	if team == "" {
		r.code = ExitNotTomorrow
		fmt.Fprintln(r.deps.Stderr, "Usage: nextmatch <team-name>")
		fmt.Fprintln(r.deps.Stderr, "Example: nextmatch Volos")
		return nil
	}

	match, found, err := r.deps.Finder.FindNextMatch(cmd.Context(), team)
	if err != nil {
		r.code = ExitFailure
		return fmt.Errorf("find next match: %w", err)
	}

	report := newReport(team, match, found)
	if err := writeReport(r.deps.Stdout, report, format); err != nil {
		r.code = ExitFailure
		return fmt.Errorf("write report: %w", err)
	}

	switch {
	case !found:
		r.code = ExitNoMatch
	case match.IsTomorrow():
		r.code = ExitTomorrow
	default:
		r.code = ExitNotTomorrow
	}
	return nil
}

func (r *runner) runDebug(cmd *cobra.Command, _ []string) error {
	format, err := parseFormat(r.format)
	if err != nil {
		r.code = ExitNotTomorrow
		return err
	}

	rows, err := r.deps.Dumper.DebugFixtureRows(cmd.Context(), strings.TrimSpace(r.url), r.limit)
	if err != nil {
		r.code = ExitFailure
		return fmt.Errorf("dump fixture rows: %w", err)
	}

	if err := writeDebugRows(r.deps.Stdout, strings.TrimSpace(r.url), rows, format); err != nil {
		r.code = ExitFailure
		return fmt.Errorf("write rows: %w", err)
	}

	r.code = 0
	return nil
}
