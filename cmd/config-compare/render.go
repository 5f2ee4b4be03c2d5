// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/Symantec/config-compare/internal/source"
	"github.com/Symantec/config-compare/internal/walk"
)

// RenderMissingSourcesError creates a styled error message when one or more
// requested source files do not exist on disk.
func RenderMissingSourcesError(err *source.MissingSourceError) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Source files not found!"))
	sb.WriteString("\n\n")
	sb.WriteString("The following sources could not be read:\n\n")

	sb.WriteString(renderLabelStyle.Render("Missing:"))
	sb.WriteString("\n")
	for _, path := range err.Paths {
		sb.WriteString(renderValueStyle.Render(fmt.Sprintf("  • %s\n", path)))
	}

	sb.WriteString("\n")
	sb.WriteString(renderHintStyle.Render("Check the paths for typos, then run the comparison again."))
	sb.WriteString("\n")

	return sb.String()
}

// RenderTooFewSourcesError creates a styled error message when fewer than
// two distinct sources remain after deduplication.
func RenderTooFewSourcesError(paths []string) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Not enough sources to compare!"))
	sb.WriteString("\n\n")
	sb.WriteString("A comparison needs at least two distinct source files.\n")
	sb.WriteString("Repeated paths count once.\n\n")

	sb.WriteString(renderLabelStyle.Render("Provided:"))
	sb.WriteString("\n")
	for _, path := range paths {
		sb.WriteString(renderValueStyle.Render(fmt.Sprintf("  • %s\n", path)))
	}

	sb.WriteString("\n")
	sb.WriteString(renderHintStyle.Render("Add another source file to the argument list."))
	sb.WriteString("\n")

	return sb.String()
}

// RenderUnsupportedShapeError creates a styled error message when a source
// contains a sequence whose elements are mappings. Lists are compared as
// unordered value sets, so a list of records cannot be merged.
func RenderUnsupportedShapeError(err *walk.UnsupportedShapeError) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Unsupported document shape!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Source %s contains a list of records, which has no defined comparison.\n\n",
		renderCommandStyle.Render("'"+string(err.Source)+"'")))

	sb.WriteString(renderLabelStyle.Render("Path:   "))
	sb.WriteString(renderValueStyle.Render(err.Path))
	sb.WriteString("\n")
	sb.WriteString(renderLabelStyle.Render("Shape:"))
	sb.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(err.Dump, "\n"), "\n") {
		sb.WriteString(renderValueStyle.Render("  " + line))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(renderHintStyle.Render("Restructure the list into a keyed mapping, or exclude this file from the comparison."))
	sb.WriteString("\n")

	return sb.String()
}

// RenderInvalidFilterError creates a styled error message for row filter
// patterns that fail to compile.
func RenderInvalidFilterError(err error, include, exclude string) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Invalid filter pattern!"))
	sb.WriteString("\n\n")
	sb.WriteString("Row filters must be valid RE2 regular expressions.\n\n")

	if include != "" {
		sb.WriteString(renderLabelStyle.Render("Include:  "))
		sb.WriteString(renderCommandStyle.Render(fmt.Sprintf("%q", include)))
		sb.WriteString("\n")
	}
	if exclude != "" {
		sb.WriteString(renderLabelStyle.Render("Exclude:  "))
		sb.WriteString(renderCommandStyle.Render(fmt.Sprintf("%q", exclude)))
		sb.WriteString("\n")
	}
	sb.WriteString(renderLabelStyle.Render("Error:    "))
	sb.WriteString(renderValueStyle.Render(err.Error()))
	sb.WriteString("\n")

	sb.WriteString("\n")
	sb.WriteString(renderHintStyle.Render("See https://github.com/google/re2/wiki/Syntax for the supported pattern syntax."))
	sb.WriteString("\n")

	return sb.String()
}
