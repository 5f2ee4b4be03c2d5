// SPDX-License-Identifier: MPL-2.0

package walk

import "github.com/Symantec/config-compare/internal/aggregate"

const (
	// SeverityDebug marks expected fallbacks that are only interesting when
	// tracing a run.
	SeverityDebug Severity = "debug"
	// SeverityWarning marks fallbacks an operator probably wants to know
	// about, such as markup that looked parseable but was not.
	SeverityWarning Severity = "warning"
	// SeverityError marks conditions where a requested input was unusable and
	// the run continued on degraded data, such as an unreadable config file.
	SeverityError Severity = "error"
)

type (
	// Severity represents walk diagnostic severity.
	Severity string

	// Diagnostic represents a non-fatal condition observed while merging a
	// source. Diagnostics are collected on the Walker and returned to the
	// CLI layer for rendering; they never change what gets recorded.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g., "markup_parse_fallback").
		Code string
		// Message is the human-readable description.
		Message string
		// Source is the configuration source being merged.
		Source aggregate.Source
		// Path is the canonical path at which the condition was observed.
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)
