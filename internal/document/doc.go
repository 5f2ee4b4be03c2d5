// SPDX-License-Identifier: MPL-2.0

// Package document defines the generic parsed form shared by every source
// grammar, plus the parsers that produce it.
//
// A Document is a closed variant over three shapes: Mapping (unique keys,
// with a markup-origin tag), Sequence, and Scalar (string, number literal,
// or absent). The tree walker dispatches exhaustively on the shape; nothing
// downstream ever sees a grammar-specific parse tree.
//
// File organization:
//   - document.go: the Document variant and constructors
//   - decode.go: lowering of generically decoded Go values into Documents
//   - sniff.go: the tagged-markup prologue heuristic
//   - markup.go: XML parsing (mxj) and markup-specific lowering
//   - json.go, yaml.go, toml.go: the remaining grammar parsers
package document
