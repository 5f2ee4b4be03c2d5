// SPDX-License-Identifier: MPL-2.0

package walk

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Symantec/config-compare/internal/aggregate"
	"github.com/Symantec/config-compare/internal/document"
)

var (
	// commentPattern matches full-line comments. Comment lines are dropped
	// without terminating a pending continuation run.
	commentPattern = regexp.MustCompile(`^\s*#`)
	// continuationPattern matches a trailing backslash, with or without
	// trailing whitespace after it. After splitting on newlines this covers
	// both the "\ " spelling and a bare backslash before the line break.
	continuationPattern = regexp.MustCompile(`\\\s*$`)
	// exportPattern strips a leading shell export keyword from assignments.
	exportPattern = regexp.MustCompile(`(?i)^\s*export\s*`)
	// anyWhitespace collapses a continuation run before comma splitting.
	anyWhitespace = regexp.MustCompile(`\s+`)
)

// doubleEqualsSentinel temporarily replaces literal "==" so the first-"="
// split never lands inside it. It must not contain "=".
const doubleEqualsSentinel = "\x00eqeq\x00"

// parseFreeform tokenizes ad-hoc shell/properties text line by line:
// comments are discarded, backslash continuations accumulate into one
// logical line that is flushed as a comma-separated list of sequence
// elements, and ordinary lines become key=value mapping leaves or plain
// text leaves. Every produced leaf re-enters the walker, so a value that
// itself looks like an embedded document is still compared structurally.
func (w *Walker) parseFreeform(source aggregate.Source, path aggregate.Path, text string) error {
	run := ""
	for _, line := range strings.Split(text, "\n") {
		if commentPattern.MatchString(line) {
			continue
		}
		if continuationPattern.MatchString(line) {
			run += " " + continuationPattern.ReplaceAllString(line, "")
			continue
		}
		if run != "" {
			// The terminating line belongs to the logical line it ends.
			run += " " + line
			if err := w.flushRun(source, path, run); err != nil {
				return err
			}
			run = ""
			continue
		}
		if err := w.plainLine(source, path, line); err != nil {
			return err
		}
	}
	if run != "" {
		return w.flushRun(source, path, run)
	}
	return nil
}

// flushRun turns an accumulated logical line into a comma-separated list:
// all whitespace is stripped and each comma token walks as one sequence
// element under the ELEMENT marker.
func (w *Walker) flushRun(source aggregate.Source, path aggregate.Path, run string) error {
	tokens := strings.Split(anyWhitespace.ReplaceAllString(run, ""), ",")
	elements := make([]*document.Document, 0, len(tokens))
	for _, token := range tokens {
		elements = append(elements, document.NewString(token))
	}
	return w.walk(source, path, document.NewSequence(elements))
}

// plainLine handles a line outside any continuation run. Assignments split
// on the first "=" that is not part of a literal "==" and walk as a
// one-entry mapping; anything else walks as a scalar at the current path.
func (w *Walker) plainLine(source aggregate.Source, path aggregate.Path, line string) error {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if line == "" {
		return nil
	}
	line = exportPattern.ReplaceAllString(line, "")

	protected := strings.ReplaceAll(line, "==", doubleEqualsSentinel)
	if !strings.Contains(protected, "=") {
		return w.walk(source, path, document.NewString(line))
	}

	key, value, _ := strings.Cut(protected, "=")
	key = restoreEquals(key)
	value = restoreEquals(value)
	entry := document.NewMapping(map[string]*document.Document{
		key: document.NewString(value),
	})
	return w.walk(source, path, entry)
}

func restoreEquals(part string) string {
	return aggregate.CleanSegment(strings.ReplaceAll(part, doubleEqualsSentinel, "=="))
}
