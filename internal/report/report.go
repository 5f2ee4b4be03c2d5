// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Symantec/config-compare/internal/aggregate"
)

const (
	// presenceShim fills the VALUE column of presence rows so pasted rows
	// keep their column alignment in spreadsheets and wikis.
	presenceShim = `" "`
	// truncationMarker follows the shortened form of a long value.
	truncationMarker = " ... "
	// trailingColumnHeader names the last column, which repeats truncated
	// values in full.
	trailingColumnHeader = "COMPLETE VALUE IF TRUNCATED"
)

var (
	commentRow   = regexp.MustCompile(`^\s*#`)
	openingQuote = regexp.MustCompile(`^\s*"`)
)

// Reporter renders one merged aggregate under a fixed set of options.
type Reporter struct {
	opts *Options
}

// NewReporter creates a Reporter. A nil opts selects default-mode output
// with no filters.
func NewReporter(opts *Options) *Reporter {
	if opts == nil {
		opts = &Options{mode: ModeDefault, shortValueLength: DefaultShortValueLength}
	}
	return &Reporter{opts: opts}
}

// Write renders the aggregate to out: a header row, then per canonical path
// (sorted) a presence row followed by one row per distinct value (sorted).
// Rows suppressed by the display mode or the filters are not written.
func (r *Reporter) Write(agg *aggregate.Aggregate, out io.Writer) error {
	sources := agg.Sources()
	total := agg.SourceCount()

	header := "PATH\tVALUE"
	for _, src := range sources {
		header += "\t" + string(src)
	}
	header += "\t" + trailingColumnHeader
	if _, err := fmt.Fprintln(out, header); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	for _, pathKey := range agg.Paths() {
		node := agg.Node(pathKey)

		if r.showRow(node.Clusters, total) && r.passesFilters(pathKey) {
			row := pathKey + "\t" + presenceShim + presenceCells(node.Clusters, sources)
			if _, err := fmt.Fprintln(out, row); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}

		values := maps.Keys(node.Values)
		slices.Sort(values)
		for _, value := range values {
			set := node.Values[value]
			label := pathKey + aggregate.Separator + value
			if !r.showRow(set, total) || !r.passesFilters(label) {
				continue
			}
			if _, err := fmt.Fprintln(out, r.valueRow(pathKey, value, set, sources)); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}
	}
	return nil
}

// showRow applies the display mode to one row's source set.
func (r *Reporter) showRow(set *aggregate.SourceSet, total int) bool {
	switch r.opts.mode {
	case ModeSame:
		return set.Len() == total
	case ModeVerbose:
		return true
	default:
		return set.Len() != total
	}
}

// passesFilters applies the include and exclude patterns to a row label.
// Both must pass; they are independent of the display mode.
func (r *Reporter) passesFilters(label string) bool {
	if r.opts.include != nil && !r.opts.include.MatchString(label) {
		return false
	}
	if r.opts.exclude != nil && r.opts.exclude.MatchString(label) {
		return false
	}
	return true
}

// valueRow renders one value row. Values longer than the threshold show a
// shortened form (comment segments dropped, truncated, quote-balanced) in
// the value column and the full value in the trailing column.
func (r *Reporter) valueRow(pathKey, value string, set *aggregate.SourceSet, sources []aggregate.Source) string {
	truncated := len(value) > r.opts.shortValueLength

	row := pathKey
	if truncated {
		prefix := shortenValue(value)
		if len(prefix) > r.opts.shortValueLength-1 {
			prefix = prefix[:r.opts.shortValueLength-1]
		}
		row += "\t" + prefix + truncationMarker
		if openingQuote.MatchString(prefix) && strings.Count(prefix, `"`)%2 == 1 {
			row += `"`
		}
	} else {
		row += "\t" + value
	}

	row += presenceCells(set, sources)
	if truncated {
		row += "\t" + value
	}
	return row
}

// shortenValue builds the truncation source for a long value: the value is
// split on its literal newline escapes, comment and empty segments are
// dropped, and the rest is left-trimmed and joined with single spaces.
func shortenValue(value string) string {
	var parts []string
	for _, row := range strings.Split(value, `\n`) {
		if row == "" || commentRow.MatchString(row) {
			continue
		}
		parts = append(parts, strings.TrimLeftFunc(row, unicode.IsSpace))
	}
	return strings.Join(parts, " ")
}

// presenceCells renders one "\t X " or "\t - " cell per source, in the
// run's source order.
func presenceCells(set *aggregate.SourceSet, sources []aggregate.Source) string {
	var b strings.Builder
	for _, src := range sources {
		if set.Contains(src) {
			b.WriteString("\t X ")
		} else {
			b.WriteString("\t - ")
		}
	}
	return b.String()
}
