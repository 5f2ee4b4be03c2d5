// SPDX-License-Identifier: MPL-2.0

// Package aggregate holds the canonical path -> value -> sources model that
// every configuration source is merged into before reporting.
//
// The model is deliberately flat: each canonical path (segments joined with
// " : ") maps to one PathNode tracking which sources touched the path at all
// (clusters) and which sources produced each exact normalized value. All
// mutation is additive set insertion; once a comparison run has merged every
// source, the Aggregate is treated as read-only by the reporting layer.
//
// File organization:
//   - path.go: Path construction and the shared path vocabulary (separator,
//     ELEMENT marker, segment cleaning)
//   - aggregate.go: SourceSet, PathNode, Aggregate and the recording
//     operations (RegisterPresence, Record)
package aggregate
