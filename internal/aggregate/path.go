// SPDX-License-Identifier: MPL-2.0

package aggregate

import "strings"

const (
	// Separator joins path segments when a canonical path is rendered.
	Separator = " : "
	// ElementMarker is the synthetic segment appended for each element of a
	// sequence. Sequence elements are compared as an unordered set, so the
	// marker carries no index.
	ElementMarker = "ELEMENT"
)

type (
	// Source is the opaque identifier of one configuration source, as given
	// on the command line (typically a file path).
	Source string

	// Path is an immutable canonical path: the ordered segments produced by
	// descending through sorted mapping keys, sequence markers, and markup
	// composite labels. The zero value is the root path.
	Path struct {
		segments []string
	}
)

// Root returns the empty root path. It renders as the empty string.
func Root() Path { return Path{} }

// Append returns a new Path with segment added at the end. The receiver is
// never modified; walks down sibling subtrees can safely share a prefix.
func (p Path) Append(segment string) Path {
	segs := make([]string, len(p.segments)+1)
	copy(segs, p.segments)
	segs[len(p.segments)] = segment
	return Path{segments: segs}
}

// String renders the path by joining its segments with Separator.
func (p Path) String() string { return strings.Join(p.segments, Separator) }

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// CleanSegment prepares a mapping key for use as a path segment: leading and
// trailing whitespace is trimmed and any remaining tabs are removed, so keys
// that differ only in incidental padding compare equal across sources.
func CleanSegment(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "\t", "")
}
