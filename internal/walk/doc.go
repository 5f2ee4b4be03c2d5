// SPDX-License-Identifier: MPL-2.0

// Package walk merges parsed configuration sources into the aggregate model.
//
// The walker descends a generic document building canonical paths: mapping
// keys in sorted order, one ELEMENT marker per sequence element, and for
// markup-origin mappings a composite label joining the element's attributes
// and simple children. String leaves pass through the scalar classifier,
// which detects embedded documents (markup first, then multi-line JSON) and
// otherwise hands multi-line text to the freeform mini-parser. The heuristic
// order is load-bearing: dual recording of freeform blocks depends on the
// serialized-object attempt running before freeform tokenization.
//
// Parse failures on sniffed scalars are never fatal; they fall down the
// classifier chain and surface as diagnostics on the walker, returned to the
// caller (rather than written to stderr) for consistent rendering policy.
// The one fatal walk condition is a sequence element that is itself a
// mapping, which has no defined comparison semantics.
//
// File organization:
//   - walker.go: Walker, per-source merge entry, mapping/sequence walks
//   - classify.go: the scalar classifier
//   - freeform.go: the freeform text mini-parser
//   - errors.go: the unsupported-shape failure
//   - diagnostic.go: non-fatal walk diagnostics
package walk
