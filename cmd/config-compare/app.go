// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Symantec/config-compare/internal/aggregate"
	"github.com/Symantec/config-compare/internal/config"
	"github.com/Symantec/config-compare/internal/issue"
	"github.com/Symantec/config-compare/internal/report"
	"github.com/Symantec/config-compare/internal/source"
	"github.com/Symantec/config-compare/internal/walk"
	"github.com/Symantec/config-compare/pkg/types"

	"github.com/charmbracelet/log"
)

// codeConfigLoadFailed identifies configuration load diagnostics emitted by
// loadConfigWithFallback. Merge diagnostics carry walk package codes instead.
const codeConfigLoadFailed = "config_load_failed"

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces.
	App struct {
		Config      ConfigProvider
		Comparer    CompareService
		Diagnostics DiagnosticRenderer
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp. Tests can supply mock
	// implementations to isolate specific service behavior.
	Dependencies struct {
		Config      ConfigProvider
		Comparer    CompareService
		Diagnostics DiagnosticRenderer
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// CompareRequest captures all CLI comparison inputs as an immutable value.
	// It is the request-scoped data contract between the CLI layer (Cobra
	// handlers) and the CompareService implementation.
	CompareRequest struct {
		// Paths are the positional source file paths, in command-line order.
		Paths []string
		// Verbose selects the verbose display mode (every row is shown).
		Verbose bool
		// Same selects the same-values display mode.
		Same bool
		// Output is the --output report destination. Zero value ("") means stdout.
		Output types.FilesystemPath
		// Include is the --include row filter pattern. Zero value ("") falls
		// back to the configured default.
		Include string
		// Exclude is the --exclude row filter pattern. Zero value ("") falls
		// back to the configured default.
		Exclude string
		// ConfigPath is the explicit --config flag value.
		ConfigPath string
		// Debug enables debug diagnostics and per-source merge logging.
		Debug bool
	}

	// CompareResult contains comparison outcome counters.
	CompareResult struct {
		// Sources is the number of distinct sources merged.
		Sources int
		// Paths is the number of canonical paths in the merged model.
		Paths int
	}

	// CompareService runs one comparison and returns user-renderable
	// diagnostics. Implementations must not write diagnostics directly to
	// stderr; diagnostics are returned as structured data for the CLI layer
	// to render.
	CompareService interface {
		Compare(ctx context.Context, req CompareRequest) (CompareResult, []walk.Diagnostic, error)
	}

	// DiagnosticRenderer renders structured diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []walk.Diagnostic, stderr io.Writer)
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock
	// implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// compareService implements CompareService on top of the source, walk,
	// and report packages.
	compareService struct {
		config ConfigProvider
		stdout io.Writer
		stderr io.Writer
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}
	if deps.Comparer == nil {
		deps.Comparer = newCompareService(deps.Config, deps.Stdout, deps.Stderr)
	}

	return &App{
		Config:      deps.Config,
		Comparer:    deps.Comparer,
		Diagnostics: deps.Diagnostics,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}, nil
}

// newCompareService creates the production CompareService.
func newCompareService(cfgProvider ConfigProvider, stdout, stderr io.Writer) CompareService {
	return &compareService{config: cfgProvider, stdout: stdout, stderr: stderr}
}

// Compare resolves the requested sources, merges them into one canonical
// model, and renders the comparison report. Failures are returned as
// ServiceError values carrying the issue catalog entry and any styled card
// for the CLI layer to render.
func (s *compareService) Compare(ctx context.Context, req CompareRequest) (CompareResult, []walk.Diagnostic, error) {
	cfg, diags := loadConfigWithFallback(ctx, s.config, req.ConfigPath)
	for _, d := range diags {
		if d.Severity == walk.SeverityError {
			return CompareResult{}, nil, newServiceError(d.Cause, issue.ConfigLoadFailedId, "")
		}
	}

	logger := log.NewWithOptions(s.stderr, log.Options{Prefix: "compare"})
	if req.Debug || cfg.UI.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if req.Output != "" {
		if ok, errs := req.Output.IsValid(); !ok {
			return CompareResult{}, diags, newServiceError(errs[0], 0, "")
		}
	}

	sources, err := source.Resolve(req.Paths)
	if err != nil {
		return CompareResult{}, diags, classifyResolveError(err, req.Paths)
	}

	inputs, err := source.Load(sources)
	if err != nil {
		return CompareResult{}, diags, newServiceError(err, issue.SourceNotFoundId, "")
	}

	agg := aggregate.New()
	walker := walk.New(agg)
	for _, in := range inputs {
		if err := walker.MergeSource(in.Source, in.Content); err != nil {
			diags = append(diags, walker.Diagnostics()...)
			var shapeErr *walk.UnsupportedShapeError
			if errors.As(err, &shapeErr) {
				return CompareResult{}, diags, newServiceError(err, issue.UnsupportedShapeId, RenderUnsupportedShapeError(shapeErr))
			}
			return CompareResult{}, diags, newServiceError(err, 0, "")
		}
		logger.Debug("merged source", "source", in.Source, "paths", agg.Len())
	}
	diags = append(diags, walker.Diagnostics()...)

	include := filterPattern(req.Include, cfg.Filters.Include)
	exclude := filterPattern(req.Exclude, cfg.Filters.Exclude)
	opts, err := report.NewOptions(displayMode(req), include, exclude, cfg.ShortValueLength.Int())
	if err != nil {
		return CompareResult{}, diags, newServiceError(err, issue.InvalidFilterPatternId, RenderInvalidFilterError(err, include, exclude))
	}

	out := s.stdout
	var sink *os.File
	if req.Output != "" {
		sink, err = os.Create(req.Output.String())
		if err != nil {
			return CompareResult{}, diags, newServiceError(fmt.Errorf("opening report output: %w", err), issue.ReportWriteFailedId, "")
		}
		out = sink
	}

	writeErr := report.NewReporter(opts).Write(agg, out)
	if sink != nil {
		if closeErr := sink.Close(); writeErr == nil && closeErr != nil {
			writeErr = fmt.Errorf("closing report output: %w", closeErr)
		}
	}
	if writeErr != nil {
		return CompareResult{}, diags, newServiceError(writeErr, issue.ReportWriteFailedId, "")
	}

	logger.Debug("report rendered", "sources", len(sources), "paths", agg.Len())

	return CompareResult{Sources: len(sources), Paths: agg.Len()}, diags, nil
}

// classifyResolveError maps source resolution failures to ServiceError values
// with their styled cards attached.
func classifyResolveError(err error, paths []string) error {
	var missingErr *source.MissingSourceError
	if errors.As(err, &missingErr) {
		return newServiceError(err, issue.SourceNotFoundId, RenderMissingSourcesError(missingErr))
	}
	if errors.Is(err, source.ErrTooFewSources) {
		return newServiceError(err, issue.TooFewSourcesId, RenderTooFewSourcesError(paths))
	}
	return newServiceError(err, 0, "")
}

// displayMode maps the mutually exclusive display flags to a report mode.
// Flag conflicts are rejected by Cobra before the request is built, so at
// most one of Verbose and Same is set here.
func displayMode(req CompareRequest) report.Mode {
	switch {
	case req.Verbose:
		return report.ModeVerbose
	case req.Same:
		return report.ModeSame
	default:
		return report.ModeDefault
	}
}

// filterPattern applies flag-over-config precedence for one row filter.
func filterPattern(flagValue string, configValue config.FilterPattern) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue.String()
}

// loadConfigWithFallback loads configuration via the provider. On failure it
// returns defaults plus a diagnostic describing the failure, so one broken
// config file cannot take the whole tool down.
func loadConfigWithFallback(ctx context.Context, provider ConfigProvider, configPath string) (*config.Config, []walk.Diagnostic) {
	cfg, err := provider.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(configPath)})
	if err == nil {
		return cfg, nil
	}

	// When the user explicitly specified a config path, do not silently fall
	// back to defaults; surface the error as a diagnostic so downstream
	// callers can decide whether to abort.
	if configPath != "" {
		return config.DefaultConfig(), []walk.Diagnostic{{
			Severity: walk.SeverityError,
			Code:     codeConfigLoadFailed,
			Message:  fmt.Sprintf("failed to load config from %s: %v", configPath, err),
			Cause:    err,
		}}
	}

	// Default config path: the loader only returns errors for existing files,
	// missing files silently yield defaults. An error here means a config file
	// likely exists but is malformed, so it gets SeverityError. os.ErrNotExist
	// can still surface when the config directory itself cannot be determined
	// (missing HOME, for example); that stays a warning.
	severity := walk.SeverityError
	if errors.Is(err, os.ErrNotExist) {
		severity = walk.SeverityWarning
	}

	return config.DefaultConfig(), []walk.Diagnostic{{
		Severity: severity,
		Code:     codeConfigLoadFailed,
		Message:  fmt.Sprintf("failed to load config, using defaults: %v", err),
		Cause:    err,
	}}
}

func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []walk.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		switch diag.Severity {
		case walk.SeverityError:
			prefix = ErrorStyle.Render("error")
		case walk.SeverityDebug:
			prefix = VerboseStyle.Render("debug")
		}

		location := string(diag.Source)
		if diag.Path != "" {
			if location != "" {
				location += " at "
			}
			location += diag.Path
		}

		if location != "" {
			_, _ = fmt.Fprintf(stderr, "%s: %s (%s)\n", prefix, diag.Message, location)
			continue
		}

		_, _ = fmt.Fprintf(stderr, "%s: %s\n", prefix, diag.Message)
	}
}
