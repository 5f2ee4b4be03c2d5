// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Symantec/config-compare/internal/config"
	"github.com/Symantec/config-compare/internal/issue"
	"github.com/Symantec/config-compare/internal/report"
	"github.com/Symantec/config-compare/internal/source"
	"github.com/Symantec/config-compare/internal/walk"
	"github.com/Symantec/config-compare/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the root comparison command with its flags and
// subcommands. All handlers delegate to the App services.
func newRootCommand(app *App) *cobra.Command {
	var req CompareRequest
	var output string

	rootCmd := &cobra.Command{
		Use:   "config-compare <source> <source> [source...]",
		Short: "Compare configuration files across formats",
		Long: TitleStyle.Render("config-compare") + SubtitleStyle.Render(" - Compare configuration files across formats") + `

config-compare normalizes JSON, XML, YAML, TOML, and freeform
shell-style configuration files into one canonical path model, then
reports where the sources agree and where they differ. The report is
tab-separated text with one row per path and value, and one presence
column per source.

` + SubtitleStyle.Render("Examples:") + `
  config-compare prod.json staging.json        Show paths that differ
  config-compare -s prod.json staging.json     Show paths that agree
  config-compare -v app.xml app.properties     Show every path
  config-compare -e 'password' a.json b.json   Hide rows matching a pattern`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Paths = args
			req.Output = types.FilesystemPath(output)
			return runCompare(cmd.Context(), app, req)
		},
	}

	rootCmd.Flags().BoolVarP(&req.Verbose, "verbose", "v", false, "show every row, including values present in all sources")
	rootCmd.Flags().BoolVarP(&req.Same, "same", "s", false, "show only rows whose value is identical in all sources")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.Flags().StringVarP(&req.Include, "include", "i", "", "show only rows matching this pattern")
	rootCmd.Flags().StringVarP(&req.Exclude, "exclude", "e", "", "hide rows matching this pattern")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "same")

	rootCmd.PersistentFlags().StringVar(&req.ConfigPath, "config", "", "config file (default is $HOME/.config/config-compare/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&req.Debug, "debug", false, "enable debug diagnostics")

	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// runCompare executes one comparison request, renders its diagnostics, and
// maps failures onto the exit code contract.
func runCompare(ctx context.Context, app *App, req CompareRequest) error {
	result, diags, err := app.Comparer.Compare(ctx, req)

	app.Diagnostics.Render(ctx, visibleDiagnostics(diags, req.Debug), app.stderr)

	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			renderServiceError(app.stderr, svcErr)
		}
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	if req.Debug {
		summary := fmt.Sprintf("compared %d sources across %d paths", result.Sources, result.Paths)
		fmt.Fprintln(app.stderr, VerboseStyle.Render(summary))
	}

	return nil
}

// visibleDiagnostics drops debug-severity diagnostics unless debug output was
// requested. Warnings and errors always surface.
func visibleDiagnostics(diags []walk.Diagnostic, debug bool) []walk.Diagnostic {
	if debug {
		return diags
	}

	visible := make([]walk.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == walk.SeverityDebug {
			continue
		}
		visible = append(visible, d)
	}
	return visible
}

// exitCodeFor classifies a comparison failure: problems with what the user
// asked for (bad sources, bad patterns, bad config) exit 2, problems while
// doing the work (unsupported shapes, write failures) exit 1.
func exitCodeFor(err error) types.ExitCode {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.IssueID {
		case issue.TooFewSourcesId, issue.SourceNotFoundId, issue.InvalidFilterPatternId, issue.ConfigLoadFailedId:
			return types.ExitUsage
		}
	}

	switch {
	case errors.Is(err, source.ErrTooFewSources),
		errors.Is(err, source.ErrMissingSource),
		errors.Is(err, report.ErrInvalidPattern),
		errors.Is(err, report.ErrInvalidMode),
		errors.Is(err, types.ErrInvalidFilesystemPath),
		errors.Is(err, config.ErrInvalidLoadOptions),
		errors.Is(err, config.ErrInvalidConfig):
		return types.ExitUsage
	}

	return types.ExitFailure
}

// getVersionString returns a formatted version string for display.
// Resolution order: ldflags-injected version, then Go module build info
// (for go-install binaries), then a development fallback.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}

	return "dev (built from source)"
}

// Execute builds the production App, runs the root command, and exits the
// process. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		// Errors without an explicit exit code escaped Cobra's own parsing
		// (unknown flags, missing arguments, conflicting display modes), so
		// they follow the usage exit code.
		os.Exit(int(types.ExitUsage))
	}
}

// formatErrorForDisplay formats an error for user display.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
