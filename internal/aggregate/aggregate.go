// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// normalizedNewline is the two-character escape that replaces embedded
// newlines in recorded values, keeping every comparison row on one physical
// output line.
const normalizedNewline = `\n`

type (
	// SourceSet is an insertion-ordered set of sources. Only membership and
	// cardinality are observable through the report; the order is kept for
	// deterministic diagnostics.
	SourceSet struct {
		order []Source
		seen  map[Source]struct{}
	}

	// PathNode is the aggregate entry for one canonical path. Clusters holds
	// every source that has anything at the path (a value or a descendant);
	// Values maps each normalized value string to the sources that produced
	// exactly that value. For every node the clusters set is a superset of
	// the union of all value sets.
	PathNode struct {
		Clusters *SourceSet
		Values   map[string]*SourceSet
	}

	// Aggregate is the mutable comparison state threaded through all walks of
	// one run. It is created empty, grows monotonically while sources merge
	// in, and is read-only input to the reporter afterwards. It is not safe
	// for concurrent mutation; runs are single-threaded by design.
	Aggregate struct {
		sources *SourceSet
		nodes   map[string]*PathNode
	}
)

func newSourceSet() *SourceSet {
	return &SourceSet{seen: make(map[Source]struct{})}
}

// Add inserts source into the set. Re-adding an existing source is a no-op.
func (s *SourceSet) Add(source Source) {
	if _, ok := s.seen[source]; ok {
		return
	}
	s.seen[source] = struct{}{}
	s.order = append(s.order, source)
}

// Contains reports whether source is a member.
func (s *SourceSet) Contains(source Source) bool {
	_, ok := s.seen[source]
	return ok
}

// Len returns the set cardinality.
func (s *SourceSet) Len() int { return len(s.order) }

// Sources returns the members in insertion order. The slice is a copy.
func (s *SourceSet) Sources() []Source {
	out := make([]Source, len(s.order))
	copy(out, s.order)
	return out
}

// New creates an empty Aggregate for one comparison run.
func New() *Aggregate {
	return &Aggregate{
		sources: newSourceSet(),
		nodes:   make(map[string]*PathNode),
	}
}

// AddSource registers source as part of the run, preserving first-seen
// order. The reporter derives its presence columns from this ordering.
func (a *Aggregate) AddSource(source Source) {
	a.sources.Add(source)
}

// Sources returns the run's sources in first-seen order.
func (a *Aggregate) Sources() []Source { return a.sources.Sources() }

// SourceCount returns the number of distinct sources merged into the run.
func (a *Aggregate) SourceCount() int { return a.sources.Len() }

// RegisterPresence marks source as present at path without recording a
// value. Walks call this at every descent so that a source whose subtree
// holds only deeper leaves still appears in the path's presence row.
func (a *Aggregate) RegisterPresence(source Source, path Path) {
	a.node(path).Clusters.Add(source)
}

// Record stores a leaf value produced by source at path. Empty input is a
// no-op. The raw value is normalized first: tabs become single spaces,
// embedded newlines become the literal two-character `\n` escape, and the
// result is trimmed of leading and trailing whitespace. The source is
// inserted into both the path's clusters set and the normalized value's
// source set; recording the same triple twice changes nothing.
func (a *Aggregate) Record(source Source, path Path, raw string) {
	if raw == "" {
		return
	}
	value := normalizeValue(raw)
	node := a.node(path)
	node.Clusters.Add(source)
	set, ok := node.Values[value]
	if !ok {
		set = newSourceSet()
		node.Values[value] = set
	}
	set.Add(source)
}

// Node returns the PathNode stored under the rendered path, or nil when the
// path was never touched.
func (a *Aggregate) Node(path string) *PathNode { return a.nodes[path] }

// Paths returns every rendered canonical path in sorted order.
func (a *Aggregate) Paths() []string {
	paths := maps.Keys(a.nodes)
	slices.Sort(paths)
	return paths
}

// Len returns the number of distinct canonical paths recorded so far.
func (a *Aggregate) Len() int { return len(a.nodes) }

func (a *Aggregate) node(path Path) *PathNode {
	key := path.String()
	node, ok := a.nodes[key]
	if !ok {
		node = &PathNode{
			Clusters: newSourceSet(),
			Values:   make(map[string]*SourceSet),
		}
		a.nodes[key] = node
	}
	return node
}

func normalizeValue(raw string) string {
	value := strings.ReplaceAll(raw, "\t", " ")
	value = strings.ReplaceAll(value, "\n", normalizedNewline)
	return strings.TrimSpace(value)
}
